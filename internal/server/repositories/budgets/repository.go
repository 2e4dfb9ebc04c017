// Package budgets stores monthly per-category spending limits.
package budgets

import (
	"context"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

type Repository interface {
	// Upsert creates the budget or, if one already exists for the same
	// (user, category, month, year), overwrites its amount in place.
	Upsert(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	List(ctx context.Context, userID string, month, year int) ([]*models.Budget, error)
	UpdateAmount(ctx context.Context, userID, id string, amount float64) (*models.Budget, error)
	Delete(ctx context.Context, userID, id string) error
}
