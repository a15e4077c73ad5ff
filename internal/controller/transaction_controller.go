package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vzabara/nuvei-gateway/internal/domain/transaction"
)

// TransactionController exposes the settled transaction records.
type TransactionController struct {
	transactions transaction.Repository
}

// NewTransactionController creates a new TransactionController.
func NewTransactionController(repo transaction.Repository) *TransactionController {
	return &TransactionController{transactions: repo}
}

// ListByOrder handles GET /api/v1/orders/{orderID}/transactions
func (h *TransactionController) ListByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid order id", Code: "invalid_id"})
		return
	}

	txs, err := h.transactions.GetByOrderID(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, FromTransaction(tx))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetByUniqueRef handles GET /api/v1/transactions/{uniqueRef}
func (h *TransactionController) GetByUniqueRef(w http.ResponseWriter, r *http.Request) {
	uniqueRef := chi.URLParam(r, "uniqueRef")
	if len(uniqueRef) != transaction.UniqueRefLength {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid unique reference", Code: "invalid_id"})
		return
	}

	tx, err := h.transactions.GetByUniqueRef(r.Context(), uniqueRef)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromTransaction(tx))
}
