// Package transactions stores income and expense records. Every method is
// scoped to the owning user id; a record owned by someone else behaves as
// if it did not exist.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	// List returns the user's records matching filter, newest date first.
	List(ctx context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error)
	Update(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context, userID string, filter models.TransactionFilter) (*models.TransactionSummary, error)
}
