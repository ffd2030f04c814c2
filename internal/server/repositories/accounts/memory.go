package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps accounts in process memory in insertion order.
// It is used when no DATABASE_URL is configured and in tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts []models.Account
	now      func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{now: time.Now}
}

func (r *InMemoryRepository) Create(ctx context.Context, account *models.Account) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored := *account
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}
	if account.AvatarURL != nil {
		avatar := *account.AvatarURL
		stored.AvatarURL = &avatar
	}

	r.mu.Lock()
	r.accounts = append(r.accounts, stored)
	r.mu.Unlock()

	return stored.ID, nil
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.accounts {
		if r.accounts[i].Email == email {
			found := r.accounts[i]
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Delete removes the account with the given id. No route exposes it; it
// exists for maintenance and tests.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// Len returns the number of stored accounts.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
