package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"

	"github.com/rogerio-castellano/ges-stock/internal/auth"
	"github.com/rogerio-castellano/ges-stock/internal/inventory"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"go.uber.org/zap"
)

// GetTransactionsHandler godoc
// @Summary Transaction history, newest first
// @Tags transactions
// @Produce json
// @Param type query string false "Only this transaction type"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {array} inventory.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /transactions [get]
// @Security BearerAuth
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	offset, limit, errs := pageParams(r)
	if len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	history, total, err := inventoryService.History(r.Context(), auth.OwnerID(r.Context()), inventory.HistoryFilter{
		Type:   models.TransactionType(r.URL.Query().Get("type")),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, r, err, "retrieve transactions")
		return
	}

	response := TransactionsSearchResult{
		Data: make([]TransactionResponse, len(history)),
		Meta: Meta{TotalCount: total},
	}
	for i, tx := range history {
		response.Data[i] = toTransactionResponse(tx)
	}
	respond(w, http.StatusOK, response)
}

// ExportTransactionsHandler godoc
// @Summary Export transaction history
// @Tags transactions
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param type query string false "Only this transaction type"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /transactions/export [get]
// @Security BearerAuth
func ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	history, _, err := inventoryService.History(r.Context(), auth.OwnerID(r.Context()), inventory.HistoryFilter{
		Type: models.TransactionType(r.URL.Query().Get("type")),
	})
	if err != nil {
		writeError(w, r, err, "retrieve transactions")
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)
		if err := json.NewEncoder(w).Encode(history); err != nil {
			log.Error("failed to export transactions", zap.Error(err))
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "type", "timestamp", "description"})
		for _, tx := range history {
			_ = csvWriter.Write([]string{tx.ID, string(tx.Type), tx.Timestamp, tx.Description()})
		}
		csvWriter.Flush()
	}
}
