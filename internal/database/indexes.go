// internal/database/indexes.go
package database

import (
	"context"

	"go.uber.org/zap"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) CreateIndexes(ctx context.Context) error {
	zap.L().Debug("Creating database indexes")

	if err := m.createTokenIndexes(ctx, m.GetCollection("tokens")); err != nil {
		return err
	}
	if err := m.createUsageIndexes(ctx, m.GetCollection("usages")); err != nil {
		return err
	}

	zap.L().Info("Database indexes created successfully")
	return nil
}

func (m *MongoDB) createTokenIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (m *MongoDB) createUsageIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "token", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "endpoint", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
