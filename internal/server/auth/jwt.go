// Package auth holds the credential primitives: bcrypt password hashing and
// HS256 access tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the access token lifetime when none is configured.
const DefaultTokenValidity = 24 * time.Hour

// Claims are the identity facts carried by an access token. The standard
// subject holds the account email.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
	UID  string `json:"uid,omitempty"`
}

// Email returns the token subject.
func (c *Claims) Email() string {
	return c.Subject
}

// TokenCodec signs and verifies access tokens with a shared HMAC secret.
// Only HS256 is accepted on decode.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret, now: time.Now}
}

// Encode signs the claims with an absolute expiry of expiresAt.
func (c *TokenCodec) Encode(email, name, uid string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Name: name,
		UID:  uid,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Issue signs a token valid for the given duration from now.
func (c *TokenCodec) Issue(email, name, uid string, validity time.Duration) (string, error) {
	return c.Encode(email, name, uid, c.now().Add(validity))
}

// Decode verifies signature, algorithm and expiry. Every failure wraps
// common.ErrInvalidToken; expired tokens also match jwt.ErrTokenExpired.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
