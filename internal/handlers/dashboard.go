package handlers

import (
	"net/http"

	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/services"
)

type DashboardHandler struct {
	Svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Stats: GET /dashboard – revenue, 6-month evolution, top clients and
// unconverted quotes in one payload.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
