package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ratehub/internal/domain/model"
	"ratehub/internal/domain/ratings"
)

type RatingRepository interface {
	// Upsert inserts the rating, or overwrites the value when the same user
	// has already rated the same store. One active rating per (user, store).
	Upsert(ctx context.Context, rating *model.Rating) error
	ListForStore(ctx context.Context, storeID string) ([]ratings.Entry, error)
	Count(ctx context.Context) (int, error)
	AverageValue(ctx context.Context) (float64, error)
}

type pgRatingRepository struct {
	db *sql.DB
}

func NewPgRatingRepository(db *sql.DB) RatingRepository {
	return &pgRatingRepository{db: db}
}

func (r *pgRatingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	query := `INSERT INTO ratings (id, value, user_id, store_id)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, store_id) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.db.ExecContext(ctx, query, rating.ID, rating.Value, rating.UserID, rating.StoreID)
	if err != nil {
		return fmt.Errorf("pgRatingRepository.Upsert: %w", err)
	}
	return nil
}

// ListForStore returns the store's ratings joined with the author fields the
// owner-report pipeline filters on, newest first.
func (r *pgRatingRepository) ListForStore(ctx context.Context, storeID string) ([]ratings.Entry, error) {
	query := `SELECT rt.id, rt.value, u.name, u.email, u.address, rt.created_at
	          FROM ratings rt
	          JOIN users u ON u.id = rt.user_id
	          WHERE rt.store_id = $1
	          ORDER BY rt.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("pgRatingRepository.ListForStore: %w", err)
	}
	defer rows.Close()

	var entries []ratings.Entry
	for rows.Next() {
		var e ratings.Entry
		if err := rows.Scan(&e.ID, &e.Value, &e.AuthorName, &e.AuthorEmail, &e.AuthorAddress, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgRatingRepository.ListForStore scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRatingRepository.ListForStore rows: %w", err)
	}
	return entries, nil
}

func (r *pgRatingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgRatingRepository.Count: %w", err)
	}
	return count, nil
}

func (r *pgRatingRepository) AverageValue(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, `SELECT AVG(value) FROM ratings`).Scan(&avg); err != nil {
		return 0, fmt.Errorf("pgRatingRepository.AverageValue: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
