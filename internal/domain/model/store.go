package model

import "time"

// Store is owned by exactly one STORE_OWNER user; one store per owner.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreWithStats is the public listing row: the store plus its aggregate
// rating and, when the caller is authenticated, the caller's own rating.
type StoreWithStats struct {
	Store
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
	MyRating      *int    `json:"my_rating,omitempty"`
}
