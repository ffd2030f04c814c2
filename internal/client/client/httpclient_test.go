package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/brewhaven/internal/logging"
	"github.com/dmitrijs2005/brewhaven/internal/server/config"
	"github.com/dmitrijs2005/brewhaven/internal/server/httpserver"
	"github.com/dmitrijs2005/brewhaven/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/brewhaven/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  bcrypt.MinCost,
	}
	h := httpserver.NewRouter(&httpserver.RouterDeps{
		Accounts:    services.NewAccountService(accounts.NewInMemoryRepository(), cfg),
		Diagnostics: services.NewDiagnosticsService(nil, ""),
		Logger:      logging.New(io.Discard, "error"),
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_FullFlow(t *testing.T) {
	srv := newBackend(t)
	c := NewBrewHavenClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	p, err := c.Signup(ctx, "Ann", "ann@x.com", []byte("pw123"))
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.Name)
	assert.NotEmpty(t, p.ID)

	tok, err := c.Login(ctx, "ann@x.com", []byte("pw123"))
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)

	me, err := c.Me(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, p, me)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	srv := newBackend(t)
	c := NewBrewHavenClient(srv.URL, time.Second)
	ctx := context.Background()

	_, err := c.Signup(ctx, "Ann", "ann@x.com", []byte("pw123"))
	require.NoError(t, err)

	_, err = c.Signup(ctx, "Ann", "ann@x.com", []byte("pw123"))
	assert.ErrorIs(t, err, ErrEmailRegistered)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already registered", apiErr.Detail)

	_, err = c.Login(ctx, "ann@x.com", []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = c.Me(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Signup(ctx, "Bob", "not-an-email", []byte("pw"))
	assert.ErrorIs(t, err, ErrValidation)
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Detail, "email: ")
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewBrewHavenClient(url, 200*time.Millisecond)
	err := c.Ping(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
}

func TestReadDetail(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"detail":"Invalid email or password"}`, "Invalid email or password"},
		{`{"detail":[{"loc":["body","name"],"msg":"cannot be blank"}]}`, "name: cannot be blank"},
		{`plain text`, "plain text"},
		{``, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, readDetail(strings.NewReader(tt.body)), tt.body)
	}
}
