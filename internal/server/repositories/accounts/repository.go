// Package accounts is the account store adapter: lookup by email and insert
// over a single logical collection, with MongoDB, PostgreSQL and in-memory
// implementations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/brewhaven/internal/server/models"
)

// Repository is the account store. FindByEmail matches the email exactly
// (case-sensitive) and returns common.ErrorNotFound when nothing matches.
// Create returns the store-assigned id and does not enforce email uniqueness.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (string, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}
