package handlers

import (
	"net/http"

	"github.com/diewo77/cleanbiz/httpx"
	"github.com/diewo77/cleanbiz/internal/services"
)

type DashboardHandler struct {
	Svc *services.StatsService
}

func NewDashboardHandler(svc *services.StatsService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Stats: GET /dashboard — recomputed from the stored collections on each call.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	uid, ok := scope(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	stats, err := h.Svc.Dashboard(uid, now())
	if err != nil {
		writeServiceError(w, err, "failed_to_compute_stats")
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
