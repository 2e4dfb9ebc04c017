// Package goals stores savings goals.
package goals

import (
	"context"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	// List returns the user's goals, most recently created first.
	List(ctx context.Context, userID string) ([]*models.Goal, error)
	Update(ctx context.Context, userID, id string, patch models.GoalPatch) (*models.Goal, error)
	Delete(ctx context.Context, userID, id string) error
}
