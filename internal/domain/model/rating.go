package model

import "time"

const (
	RatingMin = 1
	RatingMax = 5
)

type Rating struct {
	ID        string    `json:"id"`
	Value     int       `json:"value"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
}
