package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ratehub/internal/app/service"
	"ratehub/internal/common"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.stats)
}

func (h *StatsHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Global(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
