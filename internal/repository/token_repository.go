// internal/repository/token_repository.go
package repository

import (
	"context"
	"errors"

	"imgsafe-backend/internal/models"
	apperrors "imgsafe-backend/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	GetByToken(ctx context.Context, token string) (*models.AccessToken, error)
	GetAll(ctx context.Context) ([]*models.AccessToken, error)
	Delete(ctx context.Context, token string) error
}

type tokenRepository struct {
	collection *mongo.Collection
}

func NewTokenRepository(collection *mongo.Collection) TokenRepository {
	return &tokenRepository{
		collection: collection,
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	result, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return err
	}

	token.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *tokenRepository) GetByToken(ctx context.Context, token string) (*models.AccessToken, error) {
	var accessToken models.AccessToken
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&accessToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewTokenNotFoundError()
		}
		return nil, err
	}
	return &accessToken, nil
}

func (r *tokenRepository) GetAll(ctx context.Context) ([]*models.AccessToken, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tokens []*models.AccessToken
	if err = cursor.All(ctx, &tokens); err != nil {
		return nil, err
	}

	return tokens, nil
}

func (r *tokenRepository) Delete(ctx context.Context, token string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.NewTokenNotFoundError()
	}
	return nil
}
