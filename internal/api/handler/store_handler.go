package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ratehub/internal/api/middleware"
	"ratehub/internal/app/service"
	"ratehub/internal/common"
	"ratehub/internal/domain/model"
	"ratehub/internal/domain/ratings"
)

type StoreHandler struct {
	storeService *service.StoreService
	auth         *middleware.Auth
}

func NewStoreHandler(storeService *service.StoreService, auth *middleware.Auth) *StoreHandler {
	return &StoreHandler{storeService: storeService, auth: auth}
}

func (h *StoreHandler) RegisterRoutes(r chi.Router) {
	// Public listing, personalized when a valid token is present
	r.Group(func(public chi.Router) {
		public.Use(h.auth.SoftAuthenticator)
		public.Get("/stores", h.listStores)
	})

	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.Authenticator)
		authed.With(middleware.Authorize(model.OpSubmitRating)).
			Post("/stores/{storeID}/ratings", h.submitRating)
		authed.With(middleware.Authorize(model.OpViewStoreReport)).
			Get("/store/report", h.report)
	})
}

func (h *StoreHandler) listStores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	callerID := ""
	if caller, ok := middleware.CallerFromContext(r.Context()); ok {
		callerID = caller.UserID
	}

	stores, err := h.storeService.ListStores(r.Context(), query, callerID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"stores": stores})
}

func (h *StoreHandler) submitRating(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing caller context")
		return
	}
	storeID := chi.URLParam(r, "storeID")

	var req struct {
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	rating, err := h.storeService.SubmitRating(r.Context(), caller.UserID, storeID, req.Value)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, rating)
}

func (h *StoreHandler) report(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing caller context")
		return
	}

	query := r.URL.Query().Get("q")
	sortKey := ratings.ParseSortKey(r.URL.Query().Get("sort"))

	report, err := h.storeService.Report(r.Context(), caller.UserID, query, sortKey)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, report)
}
