package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratehub/internal/api"
	"ratehub/internal/app/service"
	"ratehub/internal/common/security"
	"ratehub/internal/domain/repository"
	"ratehub/internal/platform/cache"
	"ratehub/internal/platform/config"
	"ratehub/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Token codec and password hasher
	codec := security.NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL)
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	// 3. Initialize Database
	db := database.Connect(cfg.DBConnStr)
	defer db.Close()
	log.Println("Database connected.")

	// 4. Initialize Redis
	rdb := cache.Connect(cfg)
	defer rdb.Close()
	log.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	storeRepo := repository.NewPgStoreRepository(db)
	ratingRepo := repository.NewPgRatingRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, codec, hasher)
	adminService := service.NewAdminService(userRepo, storeRepo, hasher)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	statsService := service.NewStatsService(userRepo, storeRepo, ratingRepo, rdb, cfg.StatsCacheTTL)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(codec, authService, storeService, adminService, statsService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
