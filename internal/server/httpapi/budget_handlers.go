package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

type budgetRequest struct {
	Category string  `json:"category" validate:"required"`
	Month    Integer `json:"month" validate:"gte=1,max=12"`
	Year     Integer `json:"year" validate:"gte=1,max=9999"`
	Amount   Number  `json:"amount" validate:"gt=0"`
}

type budgetAmountRequest struct {
	Amount Number `json:"amount" validate:"gt=0"`
}

type budgetResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Category  string    `json:"category"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toBudgetResponse(b *models.Budget) budgetResponse {
	return budgetResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Category:  b.Category,
		Month:     b.Month,
		Year:      b.Year,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request, uid string) {
	v := r.URL.Query()
	if v.Get("month") == "" || v.Get("year") == "" {
		h.writeError(w, r, fmt.Errorf("%w: month and year are required", errBadRequest), "Budget")
		return
	}
	month, err := queryInt(v, "month")
	if err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}
	year, err := queryInt(v, "year")
	if err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}

	items, err := h.budgets.List(r.Context(), uid, month, year)
	if err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}

	resp := make([]budgetResponse, 0, len(items))
	for _, b := range items {
		resp = append(resp, toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpsertBudget creates the budget for (category, month, year) or replaces
// the amount of the existing one.
func (h *Handler) UpsertBudget(w http.ResponseWriter, r *http.Request, uid string) {
	var req budgetRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}

	b, err := h.budgets.Upsert(r.Context(), uid, services.BudgetInput{
		Category: req.Category,
		Month:    int(req.Month),
		Year:     int(req.Year),
		Amount:   float64(req.Amount),
	})
	if err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(b))
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request, uid string) {
	var req budgetAmountRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}

	b, err := h.budgets.UpdateAmount(r.Context(), uid, chi.URLParam(r, "id"), float64(req.Amount))
	if err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request, uid string) {
	if err := h.budgets.Delete(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, "Budget")
		return
	}
	writeMessage(w, http.StatusOK, "Budget deleted")
}
