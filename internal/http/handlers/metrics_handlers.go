package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/ges-stock/internal/auth"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard counters for the current user
// @Tags metrics
// @Produce json
// @Success 200 {object} inventory.Summary
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
// @Security BearerAuth
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := inventoryService.Summary(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		writeError(w, r, err, "fetch metrics")
		return
	}
	respond(w, http.StatusOK, m)
}
