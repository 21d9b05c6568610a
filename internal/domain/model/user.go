package model

import (
	"time"
)

const (
	RoleNormalUser  = "NORMAL_USER"
	RoleStoreOwner  = "STORE_OWNER"
	RoleSystemAdmin = "SYSTEM_ADMIN"
)

// Roles lists every valid role tag, in the order they appear to clients.
var Roles = []string{RoleNormalUser, RoleStoreOwner, RoleSystemAdmin}

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Address        string    `json:"address"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CallerContext is the resolved identity for one request. It is derived from a
// verified token plus a live user lookup and never persisted.
type CallerContext struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// StoreSummary is the owned-store digest attached to admin user listings.
type StoreSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RatingCount int    `json:"rating_count"`
}

type UserWithStore struct {
	User
	Store *StoreSummary `json:"store,omitempty"`
}
