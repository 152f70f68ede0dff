// internal/services/token_service.go
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"imgsafe-backend/internal/models"
	"imgsafe-backend/internal/repository"
)

type TokenService interface {
	IssueToken(ctx context.Context, isAdmin bool) (*models.AccessToken, error)
	GetToken(ctx context.Context, token string) (*models.AccessToken, error)
	ListTokens(ctx context.Context) ([]*models.AccessToken, error)
	DeleteToken(ctx context.Context, token string) error
}

type tokenService struct {
	tokenRepo repository.TokenRepository
	secret    string
}

func NewTokenService(tokenRepo repository.TokenRepository, secret string) TokenService {
	return &tokenService{
		tokenRepo: tokenRepo,
		secret:    secret,
	}
}

// IssueToken signs a new bearer token and persists its record. The record is
// what makes the token listable and revocable; the signature alone is not
// enough to pass auth.
func (s *tokenService) IssueToken(ctx context.Context, isAdmin bool) (*models.AccessToken, error) {
	jti, err := randomID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := time.Now()
	claims := &models.TokenClaims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       jti,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	signed, err := models.SignToken(claims, s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	token := &models.AccessToken{
		Token:     signed,
		IsAdmin:   isAdmin,
		CreatedAt: now,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

func (s *tokenService) GetToken(ctx context.Context, token string) (*models.AccessToken, error) {
	return s.tokenRepo.GetByToken(ctx, token)
}

func (s *tokenService) ListTokens(ctx context.Context) ([]*models.AccessToken, error) {
	return s.tokenRepo.GetAll(ctx)
}

func (s *tokenService) DeleteToken(ctx context.Context, token string) error {
	return s.tokenRepo.Delete(ctx, token)
}

func randomID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
