// internal/services/usage_service.go
package services

import (
	"context"
	"time"

	"imgsafe-backend/internal/models"
	"imgsafe-backend/internal/repository"
	"imgsafe-backend/internal/stats"
)

// UsageStatsView is the aggregated telemetry for one token: pie-chart
// endpoint buckets and chronological daily buckets.
type UsageStatsView struct {
	Endpoints []stats.EndpointBucket `json:"endpoints"`
	Daily     []stats.DayBucket      `json:"daily"`
	Total     int                    `json:"total"`
}

type UsageService interface {
	RecordUsage(ctx context.Context, token, endpoint string) error
	GetUsageByToken(ctx context.Context, token string) ([]models.UsageRecord, error)
	GetUsageByEndpoint(ctx context.Context, endpoint string) ([]models.UsageRecord, error)
	GetUsageStats(ctx context.Context, token string, loc *time.Location) (*UsageStatsView, error)
	GetTokenUsageCounts(ctx context.Context, tokenIDs []string) []stats.TokenCountResult
}

type usageService struct {
	usageRepo repository.UsageRepository
	prefixes  []string
	defaultTZ *time.Location
}

func NewUsageService(usageRepo repository.UsageRepository, prefixes []string, defaultTZ *time.Location) UsageService {
	if defaultTZ == nil {
		defaultTZ = time.Local
	}
	return &usageService{
		usageRepo: usageRepo,
		prefixes:  prefixes,
		defaultTZ: defaultTZ,
	}
}

func (s *usageService) RecordUsage(ctx context.Context, token, endpoint string) error {
	usage := &models.UsageRecord{
		Token:     token,
		Endpoint:  endpoint,
		Timestamp: time.Now(),
	}
	return s.usageRepo.Create(ctx, usage)
}

func (s *usageService) GetUsageByToken(ctx context.Context, token string) ([]models.UsageRecord, error) {
	return s.usageRepo.GetByToken(ctx, token)
}

func (s *usageService) GetUsageByEndpoint(ctx context.Context, endpoint string) ([]models.UsageRecord, error) {
	return s.usageRepo.GetByEndpoint(ctx, endpoint)
}

// GetUsageStats loads a token's raw records once and derives both chart
// views from the same snapshot. A nil location falls back to the configured
// default bucketing policy.
func (s *usageService) GetUsageStats(ctx context.Context, token string, loc *time.Location) (*UsageStatsView, error) {
	records, err := s.usageRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if loc == nil {
		loc = s.defaultTZ
	}

	return &UsageStatsView{
		Endpoints: stats.AggregateByEndpoint(records, s.prefixes),
		Daily:     stats.AggregateByDay(records, loc),
		Total:     len(records),
	}, nil
}

// GetTokenUsageCounts fans out one usage query per token. Failed lookups are
// reported per slot and never abort the rest.
func (s *usageService) GetTokenUsageCounts(ctx context.Context, tokenIDs []string) []stats.TokenCountResult {
	return stats.FetchTokenCounts(ctx, tokenIDs, s.usageRepo.GetByToken)
}
