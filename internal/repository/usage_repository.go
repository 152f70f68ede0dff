// internal/repository/usage_repository.go
package repository

import (
	"context"
	"time"

	"imgsafe-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsageRepository interface {
	Create(ctx context.Context, usage *models.UsageRecord) error
	GetByToken(ctx context.Context, token string) ([]models.UsageRecord, error)
	GetByEndpoint(ctx context.Context, endpoint string) ([]models.UsageRecord, error)
}

type usageRepository struct {
	collection *mongo.Collection
}

func NewUsageRepository(collection *mongo.Collection) UsageRepository {
	return &usageRepository{
		collection: collection,
	}
}

func (r *usageRepository) Create(ctx context.Context, usage *models.UsageRecord) error {
	usage.ID = primitive.NewObjectID()
	if usage.Timestamp.IsZero() {
		usage.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, usage)
	return err
}

func (r *usageRepository) GetByToken(ctx context.Context, token string) ([]models.UsageRecord, error) {
	return r.find(ctx, bson.M{"token": token})
}

func (r *usageRepository) GetByEndpoint(ctx context.Context, endpoint string) ([]models.UsageRecord, error) {
	return r.find(ctx, bson.M{"endpoint": endpoint})
}

func (r *usageRepository) find(ctx context.Context, filter bson.M) ([]models.UsageRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.UsageRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}
