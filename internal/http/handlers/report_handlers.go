package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/ges-stock/internal/auth"
	"github.com/rogerio-castellano/ges-stock/internal/report"
	"go.uber.org/zap"
)

// GetReportHandler godoc
// @Summary Stock report grouped by category
// @Tags report
// @Produce text/html, text/csv, application/json
// @Param format query string false "html (default), csv or json"
// @Success 200 {object} report.Report
// @Failure 400 {string} string "Invalid format"
// @Failure 500 {string} string "Internal error"
// @Router /report [get]
// @Security BearerAuth
func GetReportHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "csv" && format != "json" {
		http.Error(w, "format must be 'html', 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	rep, err := inventoryService.Report(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		writeError(w, r, err, "build report")
		return
	}

	switch format {
	case "json":
		respond(w, http.StatusOK, rep)
		return
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="stock_report.csv"`)
		err = report.WriteCSV(w, rep)
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = report.WriteHTML(w, rep)
	}
	if err != nil {
		log.Error("failed to render report", zap.String("format", format), zap.Error(err))
	}
}
