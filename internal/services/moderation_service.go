// internal/services/moderation_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"imgsafe-backend/internal/config"
	"imgsafe-backend/internal/models"
)

type ModerationAPIService interface {
	ModerateImage(ctx context.Context, filename string, image []byte) (*models.ModerationResult, error)
}

type moderationAPIService struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewModerationAPIService(cfg config.ModerationConfig) ModerationAPIService {
	return &moderationAPIService{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
	}
}

// ModerateImage uploads the image to the upstream moderation service and
// decodes its verdict. Shape problems in the response body yield a
// structured failure result rather than an error; only transport failures
// error out.
func (s *moderationAPIService) ModerateImage(ctx context.Context, filename string, image []byte) (*models.ModerationResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write image payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	zap.L().Debug("Calling moderation API",
		zap.String("url", s.apiURL),
		zap.String("filename", filename),
		zap.Int("size", len(image)))

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call moderation API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read moderation response: %w", err)
	}

	zap.L().Debug("Moderation API response",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_size", len(body)))

	var result models.ModerationResult
	if err := json.Unmarshal(body, &result); err != nil {
		// An unparseable body is still a settled verdict for the caller:
		// treat the image as not cleared rather than failing the request.
		zap.L().Warn("Failed to parse moderation response",
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return &models.ModerationResult{
			IsSafe:  false,
			Message: "Moderation service returned an unreadable response",
		}, nil
	}

	return &result, nil
}
