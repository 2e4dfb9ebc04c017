package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

type goalRequest struct {
	Title         string       `json:"title" validate:"required"`
	TargetAmount  Number       `json:"targetAmount" validate:"gt=0"`
	CurrentAmount Number       `json:"currentAmount" validate:"gte=0"`
	Deadline      OptionalDate `json:"deadline"`
}

type goalPatchRequest struct {
	Title         *string      `json:"title"`
	TargetAmount  *Number      `json:"targetAmount" validate:"omitempty,gt=0"`
	CurrentAmount *Number      `json:"currentAmount" validate:"omitempty,gte=0"`
	Deadline      OptionalDate `json:"deadline"`
}

type goalResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      *string   `json:"deadline"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toGoalResponse(g *models.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		UserID:        g.UserID,
		Title:         g.Title,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      formatDate(g.Deadline),
		CreatedAt:     g.CreatedAt.UTC(),
		UpdatedAt:     g.UpdatedAt.UTC(),
	}
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request, uid string) {
	items, err := h.goals.List(r.Context(), uid)
	if err != nil {
		h.writeError(w, r, err, "Goal")
		return
	}

	resp := make([]goalResponse, 0, len(items))
	for _, g := range items {
		resp = append(resp, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request, uid string) {
	var req goalRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err, "Goal")
		return
	}

	g, err := h.goals.Create(r.Context(), uid, services.GoalInput{
		Title:         req.Title,
		TargetAmount:  float64(req.TargetAmount),
		CurrentAmount: float64(req.CurrentAmount),
		Deadline:      req.Deadline.Ptr(),
	})
	if err != nil {
		h.writeError(w, r, err, "Goal")
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(g))
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request, uid string) {
	var req goalPatchRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err, "Goal")
		return
	}

	patch := models.GoalPatch{
		Title:    req.Title,
		Deadline: models.OptionalTime{Set: req.Deadline.Set, Time: req.Deadline.Ptr()},
	}
	if req.TargetAmount != nil {
		v := float64(*req.TargetAmount)
		patch.TargetAmount = &v
	}
	if req.CurrentAmount != nil {
		v := float64(*req.CurrentAmount)
		patch.CurrentAmount = &v
	}

	g, err := h.goals.Update(r.Context(), uid, chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err, "Goal")
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request, uid string) {
	if err := h.goals.Delete(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, "Goal")
		return
	}
	writeMessage(w, http.StatusOK, "Goal deleted")
}
