package client

import (
	"context"
)

// Profile is the public view of an account.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Client interface {
	Signup(ctx context.Context, name, email string, password []byte) (*Profile, error)
	Login(ctx context.Context, email string, password []byte) (*Token, error)
	Me(ctx context.Context, accessToken string) (*Profile, error)
	Ping(ctx context.Context) error
}
