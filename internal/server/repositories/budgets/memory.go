package budgets

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/google/uuid"
)

type periodKey struct {
	userID   string
	category string
	month    int
	year     int
}

// MemoryRepository mirrors the unique (user, category, month, year) index
// with a secondary map so Upsert stays a single locked step.
type MemoryRepository struct {
	mu       sync.RWMutex
	items    map[string]models.Budget
	byPeriod map[periodKey]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:    make(map[string]models.Budget),
		byPeriod: make(map[periodKey]string),
	}
}

func keyOf(b models.Budget) periodKey {
	return periodKey{userID: b.UserID, category: b.Category, month: b.Month, year: b.Year}
}

func (r *MemoryRepository) Upsert(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := keyOf(*budget)

	if id, ok := r.byPeriod[key]; ok {
		existing := r.items[id]
		existing.Amount = budget.Amount
		existing.UpdatedAt = now
		r.items[id] = existing
		return &existing, nil
	}

	budget.ID = uuid.NewString()
	budget.CreatedAt = now
	budget.UpdatedAt = now
	r.items[budget.ID] = *budget
	r.byPeriod[key] = budget.ID
	return budget, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string, month, year int) ([]*models.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Budget
	for _, b := range r.items {
		if b.UserID == userID && b.Month == month && b.Year == year {
			c := b
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

func (r *MemoryRepository) UpdateAmount(ctx context.Context, userID, id string, amount float64) (*models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok || b.UserID != userID {
		return nil, common.ErrorNotFound
	}
	b.Amount = amount
	b.UpdatedAt = time.Now().UTC()
	r.items[id] = b
	return &b, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok || b.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	delete(r.byPeriod, keyOf(b))
	return nil
}
