// Package services contains server-side business logic. AccountService
// implements signup, login and bearer-token identity resolution on top of
// the account store.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/dmitrijs2005/brewhaven/internal/server/auth"
	"github.com/dmitrijs2005/brewhaven/internal/server/config"
	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/dmitrijs2005/brewhaven/internal/server/repositories/accounts"
)

// AccountService provides account operations:
// - Signup: create accounts
// - Login: verify credentials and mint an access token
// - ResolveCurrentUser: map a bearer token back to a live account
type AccountService struct {
	repo                        accounts.Repository
	hasher                      *auth.Hasher
	tokens                      *auth.TokenCodec
	accessTokenValidityDuration time.Duration

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService constructs an AccountService from the account repository
// and server config.
func NewAccountService(repo accounts.Repository, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:                        repo,
		hasher:                      auth.NewHasher(cfg.BcryptCost),
		tokens:                      auth.NewTokenCodec([]byte(cfg.SecretKey)),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Signup creates an active account unless the email is already registered.
// The lookup and the insert are not atomic; two concurrent signups with the
// same email can both succeed.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) (*models.PublicProfile, error) {
	if len(password) > auth.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, auth.MaxPasswordBytes)
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrDuplicateEmail
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}

	id, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	account.ID = id

	return account.Profile(), nil
}

// Login verifies the password and returns a bearer token. Unknown emails and
// wrong passwords both yield common.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Token, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same bcrypt work as a real check
			s.hasher.Verify(password, s.getDummyHash())
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.Email, account.Name, account.ID, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &models.Token{AccessToken: token, TokenType: common.TokenTypeBearer}, nil
}

// ResolveCurrentUser decodes the token and re-reads the account from the
// store. The profile comes from the stored record, not from the claims.
func (s *AccountService) ResolveCurrentUser(ctx context.Context, token string) (*models.PublicProfile, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}
	if claims.Email() == "" || claims.UID == "" {
		return nil, common.ErrUnauthenticated
	}

	account, err := s.repo.FindByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	return account.Profile(), nil
}

// --- helpers below ---

func (s *AccountService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("brewhaven-timing-equalizer")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
