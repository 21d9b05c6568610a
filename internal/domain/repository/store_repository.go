package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"ratehub/internal/common"
	"ratehub/internal/domain/model"
	"ratehub/internal/domain/ratings"
)

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByOwner(ctx context.Context, ownerID string) (*model.Store, error)
	FindByID(ctx context.Context, id string) (*model.Store, error)
	ListWithStats(ctx context.Context, query, callerID string) ([]model.StoreWithStats, error)
	Count(ctx context.Context) (int, error)
}

type pgStoreRepository struct {
	db *sql.DB
}

func NewPgStoreRepository(db *sql.DB) StoreRepository {
	return &pgStoreRepository{db: db}
}

func (r *pgStoreRepository) Create(ctx context.Context, store *model.Store) error {
	query := `INSERT INTO stores (id, name, slug, email, address, owner_id)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, store.ID, store.Name, store.Slug, store.Email, store.Address, store.OwnerID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // owner_id and slug are unique
			return fmt.Errorf("owner already has a store: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgStoreRepository.Create: %w", err)
	}
	return nil
}

func (r *pgStoreRepository) FindByOwner(ctx context.Context, ownerID string) (*model.Store, error) {
	query := `SELECT id, name, slug, email, address, owner_id, created_at
	          FROM stores WHERE owner_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID), "FindByOwner")
}

func (r *pgStoreRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	query := `SELECT id, name, slug, email, address, owner_id, created_at
	          FROM stores WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgStoreRepository) scanOne(row *sql.Row, op string) (*model.Store, error) {
	store := &model.Store{}
	err := row.Scan(
		&store.ID, &store.Name, &store.Slug, &store.Email, &store.Address, &store.OwnerID, &store.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgStoreRepository.%s: %w", op, err)
	}
	return store, nil
}

// ListWithStats returns stores with their aggregate rating and, when callerID
// is non-empty, the caller's own rating. The free-text query matches name or
// address, case-insensitively.
func (r *pgStoreRepository) ListWithStats(ctx context.Context, query, callerID string) ([]model.StoreWithStats, error) {
	q := `SELECT s.id, s.name, s.slug, s.email, s.address, s.owner_id, s.created_at,
	             COALESCE(AVG(rt.value), 0), COUNT(rt.id),
	             (SELECT value FROM ratings mine WHERE mine.store_id = s.id AND mine.user_id = $2)
	      FROM stores s
	      LEFT JOIN ratings rt ON rt.store_id = s.id
	      WHERE ($1 = '' OR s.name ILIKE '%' || $1 || '%' OR s.address ILIKE '%' || $1 || '%')
	      GROUP BY s.id
	      ORDER BY s.name ASC`
	rows, err := r.db.QueryContext(ctx, q, query, callerID)
	if err != nil {
		return nil, fmt.Errorf("pgStoreRepository.ListWithStats: %w", err)
	}
	defer rows.Close()

	var stores []model.StoreWithStats
	for rows.Next() {
		var s model.StoreWithStats
		var avg float64
		var mine sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Email, &s.Address, &s.OwnerID, &s.CreatedAt,
			&avg, &s.RatingCount, &mine); err != nil {
			return nil, fmt.Errorf("pgStoreRepository.ListWithStats scan: %w", err)
		}
		s.AverageRating = ratings.Round2(avg)
		if mine.Valid {
			v := int(mine.Int64)
			s.MyRating = &v
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStoreRepository.ListWithStats rows: %w", err)
	}
	return stores, nil
}

func (r *pgStoreRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgStoreRepository.Count: %w", err)
	}
	return count, nil
}
