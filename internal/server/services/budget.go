package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/repomanager"
)

type BudgetInput struct {
	Category string
	Month    int
	Year     int
	Amount   float64
}

// BudgetService keeps at most one budget per (user, category, month, year).
// Setting a budget for an existing period overwrites its amount.
type BudgetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBudgetService(db *sql.DB, m repomanager.RepositoryManager) *BudgetService {
	return &BudgetService{db: db, repomanager: m}
}

func (s *BudgetService) Upsert(ctx context.Context, userID string, in BudgetInput) (*models.Budget, error) {
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return nil, validationError("category is required")
	}
	if err := checkPeriod(in.Month, in.Year); err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, validationError("amount must be greater than 0")
	}

	repo := s.repomanager.Budgets(s.db)

	// one budget per (user, category, month, year): an existing record for
	// the same key has its amount overwritten
	existing, err := repo.List(ctx, userID, in.Month, in.Year)
	if err != nil {
		return nil, fmt.Errorf("error loading budgets: %w", err)
	}
	for _, b := range existing {
		if budgetKey(b.Category) == budgetKey(in.Category) {
			updated, err := repo.UpdateAmount(ctx, userID, b.ID, in.Amount)
			if err != nil {
				return nil, fmt.Errorf("error saving budget: %w", err)
			}
			return updated, nil
		}
	}

	// the storage upsert still resolves concurrent first writes
	b, err := repo.Upsert(ctx, &models.Budget{
		UserID:   userID,
		Category: in.Category,
		Month:    in.Month,
		Year:     in.Year,
		Amount:   in.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("error saving budget: %w", err)
	}
	return b, nil
}

// budgetKey is the normalized category used for the uniqueness check.
func budgetKey(category string) string {
	return strings.TrimSpace(category)
}

func (s *BudgetService) List(ctx context.Context, userID string, month, year int) ([]*models.Budget, error) {
	if err := checkPeriod(month, year); err != nil {
		return nil, err
	}
	return s.repomanager.Budgets(s.db).List(ctx, userID, month, year)
}

// UpdateAmount changes only the amount; moving a budget to another period
// or category is done by deleting and setting again.
func (s *BudgetService) UpdateAmount(ctx context.Context, userID, id string, amount float64) (*models.Budget, error) {
	if amount <= 0 {
		return nil, validationError("amount must be greater than 0")
	}
	if !validID(id) {
		return nil, notFound("budget")
	}
	return s.repomanager.Budgets(s.db).UpdateAmount(ctx, userID, id, amount)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return notFound("budget")
	}
	return s.repomanager.Budgets(s.db).Delete(ctx, userID, id)
}
