package repomanager

import (
	"context"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/dmitrijs2005/brewhaven/internal/server/repositories/accounts"
)

type InMemoryRepositoryManager struct {
	accounts *accounts.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{accounts: accounts.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) Status(ctx context.Context) models.ConnectionStatus {
	return models.ConnectionStatus{
		Backend:      BackendMemory,
		DatabaseName: BackendMemory,
		Connected:    true,
		OK:           true,
		Collections:  []string{common.AccountCollection},
	}
}

func (m *InMemoryRepositoryManager) Close(ctx context.Context) error {
	return nil
}
