package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/dmitrijs2005/brewhaven/internal/server/auth"
	"github.com/dmitrijs2005/brewhaven/internal/server/config"
	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/dmitrijs2005/brewhaven/internal/server/repositories/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: 24 * time.Hour,
		BcryptCost:                  bcrypt.MinCost,
	}
}

func newAccountService(t *testing.T) (*AccountService, *accounts.InMemoryRepository) {
	t.Helper()
	repo := accounts.NewInMemoryRepository()
	return NewAccountService(repo, testConfig()), repo
}

type fakeRepo struct {
	findOut *models.Account
	findErr error

	createID  string
	createErr error
	created   []*models.Account
}

func (f *fakeRepo) Create(ctx context.Context, a *models.Account) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, a)
	return f.createID, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

// --- signup ---

func TestSignup_Success(t *testing.T) {
	s, repo := newAccountService(t)
	ctx := context.Background()

	profile, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, "ann@x.com", profile.Email)

	stored, err := repo.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "pw123", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s, repo := newAccountService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "Other Ann", "ann@x.com", "different")
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Len(), "duplicate signup must not create a second record")
}

func TestSignup_LookupError(t *testing.T) {
	repo := &fakeRepo{findErr: errors.New("db down")}
	s := NewAccountService(repo, testConfig())

	_, err := s.Signup(context.Background(), "Ann", "ann@x.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Empty(t, repo.created)
}

func TestSignup_CreateError(t *testing.T) {
	repo := &fakeRepo{findErr: common.ErrorNotFound, createErr: errors.New("insert failed")}
	s := NewAccountService(repo, testConfig())

	_, err := s.Signup(context.Background(), "Ann", "ann@x.com", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestSignup_ProfileUsesStoreID(t *testing.T) {
	repo := &fakeRepo{findErr: common.ErrorNotFound, createID: "64f0c0ffee"}
	s := NewAccountService(repo, testConfig())

	profile, err := s.Signup(context.Background(), "Ann", "ann@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "64f0c0ffee", profile.ID)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].IsActive)
}

// --- login ---

func TestSignupThenLogin_TokenSubjectIsEmail(t *testing.T) {
	s, _ := newAccountService(t)
	ctx := context.Background()

	profile, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)

	tok, err := s.Login(ctx, "ann@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)

	claims, err := auth.NewTokenCodec([]byte("k")).Decode(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", claims.Email())
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, profile.ID, claims.UID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_WrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	s, _ := newAccountService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)

	_, wrongPassword := s.Login(ctx, "ann@x.com", "wrong")
	_, unknownEmail := s.Login(ctx, "nobody@x.com", "pw123")

	assert.ErrorIs(t, wrongPassword, common.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_EmailIsCaseSensitive(t *testing.T) {
	s, _ := newAccountService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)

	_, err = s.Login(ctx, "ANN@x.com", "pw123")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_MalformedStoredHash(t *testing.T) {
	repo := &fakeRepo{findOut: &models.Account{ID: "1", Email: "ann@x.com", PasswordHash: "garbage"}}
	s := NewAccountService(repo, testConfig())

	_, err := s.Login(context.Background(), "ann@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_LookupError(t *testing.T) {
	s := NewAccountService(&fakeRepo{findErr: errors.New("db down")}, testConfig())

	_, err := s.Login(context.Background(), "ann@x.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

// --- resolve ---

func TestResolveCurrentUser_Success(t *testing.T) {
	s, _ := newAccountService(t)
	ctx := context.Background()

	profile, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)
	tok, err := s.Login(ctx, "ann@x.com", "pw123")
	require.NoError(t, err)

	me, err := s.ResolveCurrentUser(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile, me)
}

func TestResolveCurrentUser_UsesStoredRecord(t *testing.T) {
	repo := &fakeRepo{findOut: &models.Account{ID: "db-id", Name: "Stored Name", Email: "ann@x.com"}}
	s := NewAccountService(repo, testConfig())

	tok, err := s.tokens.Issue("ann@x.com", "Token Name", "token-id", time.Hour)
	require.NoError(t, err)

	me, err := s.ResolveCurrentUser(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, &models.PublicProfile{ID: "db-id", Name: "Stored Name", Email: "ann@x.com"}, me)
}

func TestResolveCurrentUser_DeletedAccount(t *testing.T) {
	s, repo := newAccountService(t)
	ctx := context.Background()

	profile, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)
	tok, err := s.Login(ctx, "ann@x.com", "pw123")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, profile.ID))

	_, err = s.ResolveCurrentUser(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestResolveCurrentUser_InvalidTokens(t *testing.T) {
	s, _ := newAccountService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "Ann", "ann@x.com", "pw123")
	require.NoError(t, err)

	expired, err := s.tokens.Issue("ann@x.com", "Ann", "id", -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.NewTokenCodec([]byte("other")).Issue("ann@x.com", "Ann", "id", time.Hour)
	require.NoError(t, err)
	noUID, err := s.tokens.Issue("ann@x.com", "Ann", "", time.Hour)
	require.NoError(t, err)
	noSubject, err := s.tokens.Issue("", "Ann", "id", time.Hour)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":    expired,
		"foreign":    foreign,
		"no uid":     noUID,
		"no subject": noSubject,
		"garbage":    "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.ResolveCurrentUser(ctx, tok)
			assert.ErrorIs(t, err, common.ErrUnauthenticated)
		})
	}
}

func TestResolveCurrentUser_ExpiredAlsoReportsInvalidToken(t *testing.T) {
	s, _ := newAccountService(t)

	expired, err := s.tokens.Issue("ann@x.com", "Ann", "id", -time.Minute)
	require.NoError(t, err)

	_, err = s.ResolveCurrentUser(context.Background(), expired)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestResolveCurrentUser_LookupError(t *testing.T) {
	s := NewAccountService(&fakeRepo{findErr: errors.New("db down")}, testConfig())

	tok, err := s.tokens.Issue("ann@x.com", "Ann", "id", time.Hour)
	require.NoError(t, err)

	_, err = s.ResolveCurrentUser(context.Background(), tok)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrUnauthenticated)
}

func TestSignup_PasswordOverBcryptLimit(t *testing.T) {
	s, repo := newAccountService(t)

	_, err := s.Signup(context.Background(), "Ann", "ann@x.com", strings.Repeat("p", 80))
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Equal(t, 0, repo.Len())

	_, err = s.Signup(context.Background(), "Ann", "ann@x.com", strings.Repeat("p", 72))
	require.NoError(t, err)
}
