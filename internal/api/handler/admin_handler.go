package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ratehub/internal/api/middleware"
	"ratehub/internal/app/service"
	"ratehub/internal/common"
	"ratehub/internal/domain/model"
)

type AdminHandler struct {
	adminService *service.AdminService
	statsService *service.StatsService
	auth         *middleware.Auth
}

func NewAdminHandler(adminService *service.AdminService, statsService *service.StatsService, auth *middleware.Auth) *AdminHandler {
	return &AdminHandler{adminService: adminService, statsService: statsService, auth: auth}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.auth.Authenticator)

	r.With(middleware.Authorize(model.OpManageUsers)).Get("/users", h.listUsers)
	r.With(middleware.Authorize(model.OpManageUsers)).Post("/users", h.createUser)
	r.With(middleware.Authorize(model.OpManageStores)).Post("/stores", h.createStore)
	r.With(middleware.Authorize(model.OpViewAdminStats)).Get("/stats", h.stats)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *AdminHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.adminService.CreateUser(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) createStore(w http.ResponseWriter, r *http.Request) {
	var req service.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	store, err := h.adminService.CreateStore(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, store)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Fresh(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
