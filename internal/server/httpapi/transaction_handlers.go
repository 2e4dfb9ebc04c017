package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

type transactionRequest struct {
	Type     string `json:"type" validate:"required,oneof=income expense"`
	Amount   Number `json:"amount" validate:"gt=0"`
	Category string `json:"category" validate:"required"`
	Date     Date   `json:"date"`
	Note     string `json:"note"`
}

type transactionPatchRequest struct {
	Type     *string `json:"type" validate:"omitempty,oneof=income expense"`
	Amount   *Number `json:"amount" validate:"omitempty,gt=0"`
	Category *string `json:"category"`
	Date     *Date   `json:"date"`
	Note     *string `json:"note"`
}

type transactionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type categoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type summaryResponse struct {
	TotalIncome        float64                 `json:"totalIncome"`
	TotalExpenses      float64                 `json:"totalExpenses"`
	Balance            float64                 `json:"balance"`
	ExpensesByCategory []categoryTotalResponse `json:"expensesByCategory"`
}

type exportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toTransactionResponse(t *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		Category:  t.Category,
		Date:      t.Date.UTC(),
		Note:      t.Note,
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request, uid string) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	items, err := h.transactions.List(r.Context(), uid, q)
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	resp := make([]transactionResponse, 0, len(items))
	for _, t := range items {
		resp = append(resp, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request, uid string) {
	var req transactionRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	t, err := h.transactions.Create(r.Context(), uid, services.TransactionInput{
		Type:     models.TransactionType(req.Type),
		Amount:   float64(req.Amount),
		Category: req.Category,
		Date:     req.Date.Time,
		Note:     req.Note,
	})
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request, uid string) {
	var req transactionPatchRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	var patch models.TransactionPatch
	if req.Type != nil {
		tt := models.TransactionType(*req.Type)
		patch.Type = &tt
	}
	if req.Amount != nil {
		a := float64(*req.Amount)
		patch.Amount = &a
	}
	patch.Category = req.Category
	if req.Date != nil && !req.Date.IsZero() {
		d := req.Date.Time
		patch.Date = &d
	}
	patch.Note = req.Note

	t, err := h.transactions.Update(r.Context(), uid, chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request, uid string) {
	if err := h.transactions.Delete(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}
	writeMessage(w, http.StatusOK, "Transaction deleted")
}

func (h *Handler) TransactionSummary(w http.ResponseWriter, r *http.Request, uid string) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	s, err := h.transactions.Summary(r.Context(), uid, q)
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	resp := summaryResponse{
		TotalIncome:        s.TotalIncome,
		TotalExpenses:      s.TotalExpenses,
		Balance:            s.Balance,
		ExpensesByCategory: make([]categoryTotalResponse, 0, len(s.ExpensesByCategory)),
	}
	for _, c := range s.ExpensesByCategory {
		resp.ExpensesByCategory = append(resp.ExpensesByCategory, categoryTotalResponse{Category: c.Category, Total: c.Total})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request, uid string) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	res, err := h.exporter.Export(r.Context(), uid, q)
	if err != nil {
		h.writeError(w, r, err, "Transaction")
		return
	}

	h.log.Info(r.Context(), "transactions exported", "user_id", uid, "key", res.Key, "count", res.Count)
	writeJSON(w, http.StatusCreated, exportResponse{Key: res.Key, URL: res.URL, Count: res.Count, ExpiresAt: res.ExpiresAt.UTC()})
}
