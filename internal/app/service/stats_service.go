package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"ratehub/internal/domain/ratings"
	"ratehub/internal/domain/repository"
)

const statsCacheKey = "platform:stats"

// StatsService computes the platform-wide counters shown on the public
// landing page and the admin dashboard. The public path is cached in redis
// because it is hot and unauthenticated; the admin path always reads fresh.
type StatsService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	rdb        *redis.Client
	cacheTTL   time.Duration
}

func NewStatsService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *StatsService {
	return &StatsService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		rdb:        rdb,
		cacheTTL:   cacheTTL,
	}
}

type PlatformStats struct {
	TotalUsers    int     `json:"total_users"`
	TotalStores   int     `json:"total_stores"`
	TotalRatings  int     `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"`
}

// Global serves the cached snapshot when fresh, recomputing on a miss. Cache
// failures degrade to a direct computation, never to an error.
func (s *StatsService) Global(ctx context.Context) (*PlatformStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Result(); err == nil {
			stats := &PlatformStats{}
			if err := json.Unmarshal([]byte(cached), stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				log.Printf("stats cache write failed: %v", err)
			}
		}
	}
	return stats, nil
}

// Fresh bypasses the cache; the admin dashboard wants live numbers.
func (s *StatsService) Fresh(ctx context.Context) (*PlatformStats, error) {
	return s.compute(ctx)
}

func (s *StatsService) compute(ctx context.Context) (*PlatformStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalStores, err := s.storeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count stores: %w", err)
	}
	totalRatings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}
	avg, err := s.ratingRepo.AverageValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	return &PlatformStats{
		TotalUsers:    totalUsers,
		TotalStores:   totalStores,
		TotalRatings:  totalRatings,
		AverageRating: ratings.Round2(avg),
	}, nil
}
