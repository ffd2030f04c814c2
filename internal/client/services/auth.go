// Package services contains application services for the Brew Haven client.
// The auth service keeps the current session's access token in memory and
// forwards account calls to the API client.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/brewhaven/internal/client/client"
)

var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: create an account on the server.
//   - Login: authenticate and keep the access token for later calls.
//   - Me: fetch the profile for the current session.
//   - Logout: forget the access token (tokens are stateless server-side).
//   - Ping: check server liveness.
type AuthService interface {
	Signup(ctx context.Context, name, email string, password []byte) (*client.Profile, error)
	Login(ctx context.Context, email string, password []byte) error
	Me(ctx context.Context) (*client.Profile, error)
	Logout(ctx context.Context)
	Ping(ctx context.Context) error
	CurrentEmail() string
}

type authService struct {
	client client.Client

	mu          sync.RWMutex
	accessToken string
	email       string
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) Signup(ctx context.Context, name, email string, password []byte) (*client.Profile, error) {
	return a.client.Signup(ctx, name, email, password)
}

// Login replaces the current session only on success.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	tok, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.accessToken = tok.AccessToken
	a.email = email
	a.mu.Unlock()
	return nil
}

// Me returns ErrNotLoggedIn without a session. A rejected token ends the
// session.
func (a *authService) Me(ctx context.Context) (*client.Profile, error) {
	a.mu.RLock()
	token := a.accessToken
	a.mu.RUnlock()

	if token == "" {
		return nil, ErrNotLoggedIn
	}

	p, err := a.client.Me(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.Logout(ctx)
		}
		return nil, err
	}
	return p, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.mu.Lock()
	a.accessToken = ""
	a.email = ""
	a.mu.Unlock()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// CurrentEmail is empty when logged out.
func (a *authService) CurrentEmail() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.email
}
