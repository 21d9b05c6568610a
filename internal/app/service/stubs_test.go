package service

import (
	"context"
	"fmt"

	"ratehub/internal/common"
	"ratehub/internal/domain/model"
	"ratehub/internal/domain/ratings"
)

// In-memory repositories for service tests. They honour the same contracts as
// the pg implementations: ErrNotFound on a miss, ErrConflict on duplicates.

type stubUserRepo struct {
	byID   map[string]*model.User
	listed []model.UserWithStore
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*model.User)}
}

func (r *stubUserRepo) add(user model.User) {
	r.byID[user.ID] = &user
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	stored := *user
	r.byID[user.ID] = &stored
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hashedPassword string) error {
	u, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (r *stubUserRepo) ListWithStores(_ context.Context) ([]model.UserWithStore, error) {
	return r.listed, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int, error) {
	return len(r.byID), nil
}

type stubStoreRepo struct {
	byID  map[string]*model.Store
	stats []model.StoreWithStats
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{byID: make(map[string]*model.Store)}
}

func (r *stubStoreRepo) add(store model.Store) {
	r.byID[store.ID] = &store
}

func (r *stubStoreRepo) Create(_ context.Context, store *model.Store) error {
	for _, existing := range r.byID {
		if existing.OwnerID == store.OwnerID {
			return fmt.Errorf("owner already has a store: %w", common.ErrConflict)
		}
	}
	stored := *store
	r.byID[store.ID] = &stored
	return nil
}

func (r *stubStoreRepo) FindByOwner(_ context.Context, ownerID string) (*model.Store, error) {
	for _, s := range r.byID {
		if s.OwnerID == ownerID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *stubStoreRepo) FindByID(_ context.Context, id string) (*model.Store, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *stubStoreRepo) ListWithStats(_ context.Context, _, _ string) ([]model.StoreWithStats, error) {
	return r.stats, nil
}

func (r *stubStoreRepo) Count(_ context.Context) (int, error) {
	return len(r.byID), nil
}

type stubRatingRepo struct {
	byPair  map[string]*model.Rating // user|store -> rating
	entries map[string][]ratings.Entry
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{
		byPair:  make(map[string]*model.Rating),
		entries: make(map[string][]ratings.Entry),
	}
}

func (r *stubRatingRepo) Upsert(_ context.Context, rating *model.Rating) error {
	key := rating.UserID + "|" + rating.StoreID
	if existing, ok := r.byPair[key]; ok {
		existing.Value = rating.Value
		return nil
	}
	stored := *rating
	r.byPair[key] = &stored
	return nil
}

func (r *stubRatingRepo) ListForStore(_ context.Context, storeID string) ([]ratings.Entry, error) {
	return r.entries[storeID], nil
}

func (r *stubRatingRepo) Count(_ context.Context) (int, error) {
	return len(r.byPair), nil
}

func (r *stubRatingRepo) AverageValue(_ context.Context) (float64, error) {
	if len(r.byPair) == 0 {
		return 0, nil
	}
	var sum int64
	for _, rating := range r.byPair {
		sum += int64(rating.Value)
	}
	return float64(sum) / float64(len(r.byPair)), nil
}
