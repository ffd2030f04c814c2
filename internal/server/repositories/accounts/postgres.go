package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/dmitrijs2005/brewhaven/internal/dbx"
	"github.com/dmitrijs2005/brewhaven/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (string, error) {

	query :=
		`INSERT INTO account (name, email, password_hash, avatar_url, is_active)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id::text
		 `

	var avatar sql.NullString
	if account.AvatarURL != nil {
		avatar = sql.NullString{String: *account.AvatarURL, Valid: true}
	}

	var id string
	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.PasswordHash, avatar, account.IsActive).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id::text, name, email, password_hash, avatar_url, is_active, created_at FROM account
		 WHERE email = $1
		 ORDER BY created_at
		 LIMIT 1
		 `

	account := &models.Account{}
	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&avatar, &account.IsActive, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if avatar.Valid {
		account.AvatarURL = &avatar.String
	}

	return account, nil
}
