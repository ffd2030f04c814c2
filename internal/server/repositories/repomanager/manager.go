// Package repomanager opens the configured account store and vends its
// repositories. The backend is chosen from the DATABASE_URL scheme:
// mongodb:// and mongodb+srv:// use MongoDB, postgres:// and postgresql://
// use PostgreSQL, and an empty URL or memory:// keeps accounts in memory.
package repomanager

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/dmitrijs2005/brewhaven/internal/server/repositories/accounts"
)

// MaxListedCollections bounds the collection names reported by Status.
const MaxListedCollections = 10

const (
	BackendMemory   = "memory"
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
)

// RepositoryManager owns the store handle for the lifetime of the process.
type RepositoryManager interface {
	Accounts() accounts.Repository
	// Status probes the store. It never fails; problems are reported in the
	// returned ConnectionStatus.
	Status(ctx context.Context) models.ConnectionStatus
	Close(ctx context.Context) error
}

// BackendFor maps a database URL to a backend name.
func BackendFor(databaseURL string) (string, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return BackendMemory, nil
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "memory":
		return BackendMemory, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
}

// Open connects to the store named by databaseURL. databaseName selects the
// MongoDB database; it is ignored by the other backends.
func Open(ctx context.Context, databaseURL, databaseName string) (RepositoryManager, error) {
	backend, err := BackendFor(databaseURL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendMongo:
		return NewMongoRepositoryManager(ctx, databaseURL, databaseName)
	case BackendPostgres:
		return NewPostgresRepositoryManager(ctx, databaseURL)
	default:
		return NewInMemoryRepositoryManager(), nil
	}
}

func limitCollections(names []string) []string {
	if len(names) > MaxListedCollections {
		names = names[:MaxListedCollections]
	}
	if names == nil {
		names = []string{}
	}
	return names
}
