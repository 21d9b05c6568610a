package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ratehub/internal/common"
	"ratehub/internal/domain/model"
	"ratehub/internal/domain/ratings"
	"ratehub/internal/domain/repository"
)

// StoreService serves the store listing, rating submission, and the owner's
// rating report.
type StoreService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewStoreService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, ratingRepo: ratingRepo}
}

// StoreReport is what a store owner sees: their store, its average, and the
// ratings after the search/sort pipeline has been applied.
type StoreReport struct {
	Store         *model.Store    `json:"store"`
	AverageRating float64         `json:"average_rating"`
	RatingCount   int             `json:"rating_count"`
	Ratings       []ratings.Entry `json:"ratings"`
}

// Report builds the owner's report. The average is always computed over the
// full rating set; the query and sort only shape the listed entries.
func (s *StoreService) Report(ctx context.Context, ownerID, query string, sortKey ratings.SortKey) (*StoreReport, error) {
	store, err := s.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("store not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}

	entries, err := s.ratingRepo.ListForStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	report := &StoreReport{
		Store:         store,
		AverageRating: ratings.Average(ratings.Values(entries)),
		RatingCount:   len(entries),
		Ratings:       ratings.SortBy(ratings.Search(entries, query), sortKey),
	}
	return report, nil
}

func (s *StoreService) ListStores(ctx context.Context, query, callerID string) ([]model.StoreWithStats, error) {
	stores, err := s.storeRepo.ListWithStats(ctx, query, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// SubmitRating records a 1-5 rating by the caller against a store. Rating the
// same store twice overwrites the previous value.
func (s *StoreService) SubmitRating(ctx context.Context, userID, storeID string, value int) (*model.Rating, error) {
	if value < model.RatingMin || value > model.RatingMax {
		return nil, fmt.Errorf("rating must be between %d and %d: %w", model.RatingMin, model.RatingMax, common.ErrValidation)
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("store not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}

	rating := &model.Rating{
		ID:      uuid.NewString(),
		Value:   value,
		UserID:  userID,
		StoreID: storeID,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}
	return rating, nil
}
