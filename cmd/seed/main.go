// Command seed wipes and repopulates the database with demo data: one admin,
// a set of store owners with their stores, a pool of normal users, and random
// ratings. The schema is created if missing.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"ratehub/internal/common/security"
	"ratehub/internal/domain/model"
	"ratehub/internal/platform/config"
	"ratehub/internal/platform/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stores (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		owner_id UUID NOT NULL UNIQUE REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id UUID PRIMARY KEY,
		value INT NOT NULL CHECK (value BETWEEN 1 AND 5),
		user_id UUID NOT NULL REFERENCES users(id),
		store_id UUID NOT NULL REFERENCES stores(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, store_id)
	)`,
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Lisa", "Daniel", "Nancy",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
}

var storeTypes = []string{
	"Electronics", "Grocery", "Fashion", "Home & Living", "Sports", "Books",
	"Toys", "Beauty", "Health", "Automotive", "Pet Supplies", "Garden",
}

var storeAdjectives = []string{
	"Premium", "Super", "Mega", "Express", "Quick", "Smart", "Golden", "Royal",
}

var cities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
	"Seattle", "Denver", "Boston", "Portland", "Miami", "Atlanta",
}

var streets = []string{
	"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane", "Pine Road",
	"Elm Boulevard", "Park Way", "Lake Street", "Hill Road", "River Drive",
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func randomName(rng *rand.Rand) string {
	// Padded so every generated name clears the 20-character minimum.
	return fmt.Sprintf("%s %s Demo Account User", pick(rng, firstNames), pick(rng, lastNames))
}

func randomAddress(rng *rand.Rand) string {
	return fmt.Sprintf("%d %s, %s, %d", 100+rng.Intn(9900), pick(rng, streets), pick(rng, cities), 10000+rng.Intn(90000))
}

func main() {
	owners := flag.Int("owners", 10, "number of store owners (and stores)")
	users := flag.Int("users", 40, "number of normal users")
	seed := flag.Int64("seed", 42, "rng seed")
	flag.Parse()

	cfg := config.Load()
	db := database.Connect(cfg.DBConnStr)
	defer db.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed))
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	// Clean up existing data (in reverse order of dependencies)
	for _, table := range []string{"ratings", "stores", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("cleanup %s: %v", table, err)
		}
	}

	password, err := hasher.Hash("Passw0rd!")
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	insertUser := func(name, email, role string) string {
		id := uuid.NewString()
		_, err := db.ExecContext(ctx,
			`INSERT INTO users (id, name, email, hashed_password, address, role) VALUES ($1, $2, $3, $4, $5, $6)`,
			id, name, email, password, randomAddress(rng), role)
		if err != nil {
			log.Fatalf("insert user %s: %v", email, err)
		}
		return id
	}

	insertUser("Platform Administrator Account", "admin@ratehub.test", model.RoleSystemAdmin)

	storeIDs := make([]string, 0, *owners)
	for i := 0; i < *owners; i++ {
		ownerID := insertUser(randomName(rng), fmt.Sprintf("owner%d@ratehub.test", i+1), model.RoleStoreOwner)

		name := fmt.Sprintf("%s %s Store %d", pick(rng, storeAdjectives), pick(rng, storeTypes), i+1)
		storeID := uuid.NewString()
		_, err := db.ExecContext(ctx,
			`INSERT INTO stores (id, name, slug, email, address, owner_id) VALUES ($1, $2, $3, $4, $5, $6)`,
			storeID, name, slug.Make(name), fmt.Sprintf("store%d@ratehub.test", i+1), randomAddress(rng), ownerID)
		if err != nil {
			log.Fatalf("insert store: %v", err)
		}
		storeIDs = append(storeIDs, storeID)
	}

	userIDs := make([]string, 0, *users)
	for i := 0; i < *users; i++ {
		userIDs = append(userIDs, insertUser(randomName(rng), fmt.Sprintf("user%d@ratehub.test", i+1), model.RoleNormalUser))
	}

	total := 0
	for _, userID := range userIDs {
		for _, storeID := range storeIDs {
			if rng.Intn(100) >= 40 { // each user rates roughly 40% of stores
				continue
			}
			if err := insertRating(ctx, db, userID, storeID, 1+rng.Intn(5)); err != nil {
				log.Fatalf("insert rating: %v", err)
			}
			total++
		}
	}

	log.Printf("Seeded 1 admin, %d owners/stores, %d users, %d ratings. Demo password: Passw0rd!", *owners, *users, total)
}

func insertRating(ctx context.Context, db *sql.DB, userID, storeID string, value int) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO ratings (id, value, user_id, store_id) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, store_id) DO UPDATE SET value = EXCLUDED.value`,
		uuid.NewString(), value, userID, storeID)
	return err
}
