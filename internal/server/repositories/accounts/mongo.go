package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"github.com/dmitrijs2005/brewhaven/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// accountDocument is the BSON shape of an account in the "account" collection.
type accountDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	AvatarURL    *string       `bson:"avatar_url"`
	IsActive     bool          `bson:"is_active"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

func toDocument(a *models.Account, now time.Time) accountDocument {
	created := a.CreatedAt
	if created.IsZero() {
		created = now
	}
	return accountDocument{
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		AvatarURL:    a.AvatarURL,
		IsActive:     a.IsActive,
		CreatedAt:    created,
		UpdatedAt:    now,
	}
}

func (d *accountDocument) toModel() *models.Account {
	return &models.Account{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		AvatarURL:    d.AvatarURL,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
	}
}

// collection is the part of *mongo.Collection used by MongoRepository.
type collection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

type MongoRepository struct {
	coll collection
	now  func() time.Time
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(common.AccountCollection), now: time.Now}
}

func (r *MongoRepository) Create(ctx context.Context, account *models.Account) (string, error) {
	res, err := r.coll.InsertOne(ctx, toDocument(account, r.now().UTC()))
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("db error: unexpected inserted id type %T", res.InsertedID)
	}

	return id.Hex(), nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var doc accountDocument

	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}
