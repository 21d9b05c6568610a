package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"

	"ratehub/internal/api/handler"
	"ratehub/internal/api/middleware"
	"ratehub/internal/app/service"
	"ratehub/internal/common/security"
)

func NewRouter(
	codec *security.TokenCodec,
	authService *service.AuthService,
	storeService *service.StoreService,
	adminService *service.AdminService,
	statsService *service.StatsService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the Authorization: Bearer token and puts claims in context.
	// Routes that need a caller add the Authenticator on top.
	r.Use(jwtauth.Verifier(codec.JWTAuth()))

	auth := middleware.NewAuth(authService)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService, auth)
		v1.Route("/auth", authHandler.RegisterRoutes)

		statsHandler := handler.NewStatsHandler(statsService)
		v1.Route("/stats", statsHandler.RegisterRoutes)

		storeHandler := handler.NewStoreHandler(storeService, auth)
		v1.Group(storeHandler.RegisterRoutes)

		adminHandler := handler.NewAdminHandler(adminService, statsService, auth)
		v1.Route("/admin", adminHandler.RegisterRoutes)
	})

	return r
}
