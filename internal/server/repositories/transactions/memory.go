package transactions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Transaction
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Transaction)}
}

func (r *MemoryRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = uuid.NewString()
	tx.CreatedAt = time.Now().UTC()
	r.items[tx.ID] = *tx
	return tx, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Transaction
	for _, item := range r.items {
		if matches(item, userID, filter) {
			c := item
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Amount != nil {
		item.Amount = *patch.Amount
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Date != nil {
		item.Date = *patch.Date
	}
	if patch.Note != nil {
		item.Note = *patch.Note
	}
	r.items[id] = item
	return &item, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) Summary(ctx context.Context, userID string, filter models.TransactionFilter) (*models.TransactionSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := &models.TransactionSummary{}
	byCategory := map[string]float64{}
	for _, item := range r.items {
		if !matches(item, userID, filter) {
			continue
		}
		switch item.Type {
		case models.TransactionIncome:
			s.TotalIncome += item.Amount
		case models.TransactionExpense:
			s.TotalExpenses += item.Amount
			byCategory[item.Category] += item.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses

	for c, total := range byCategory {
		s.ExpensesByCategory = append(s.ExpensesByCategory, models.CategoryTotal{Category: c, Total: total})
	}
	sort.Slice(s.ExpensesByCategory, func(i, j int) bool {
		a, b := s.ExpensesByCategory[i], s.ExpensesByCategory[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})
	return s, nil
}

func matches(item models.Transaction, userID string, f models.TransactionFilter) bool {
	if item.UserID != userID {
		return false
	}
	if !f.From.IsZero() && item.Date.Before(f.From) {
		return false
	}
	if !f.Until.IsZero() && !item.Date.Before(f.Until) {
		return false
	}
	return true
}
