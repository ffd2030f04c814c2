package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"github.com/dmitrijs2005/brewhaven/internal/server/repositories/accounts"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoRepositoryManager vends repositories backed by one MongoDB database.
// The driver connects lazily, so an unreachable server surfaces through
// Status and individual operations rather than at startup.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoRepositoryManager(ctx context.Context, uri, databaseName string) (*MongoRepositoryManager, error) {
	if databaseName == "" {
		return nil, fmt.Errorf("database name is required for mongodb")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &MongoRepositoryManager{client: client, db: client.Database(databaseName)}, nil
}

func (m *MongoRepositoryManager) Accounts() accounts.Repository {
	return accounts.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Status(ctx context.Context) models.ConnectionStatus {
	status := models.ConnectionStatus{Backend: BackendMongo, Connected: m.db != nil}
	if m.db == nil {
		return status
	}
	status.DatabaseName = m.db.Name()

	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		status.Detail = err.Error()
		return status
	}

	status.OK = true
	status.Collections = limitCollections(names)
	return status
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
