package goals

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
	items map[string]models.Goal
	seq   int64
	order map[string]int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]models.Goal),
		order: make(map[string]int64),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	goal.ID = uuid.NewString()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	r.seq++
	r.order[goal.ID] = r.seq
	r.items[goal.ID] = *goal
	return goal, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string) ([]*models.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Goal
	for _, g := range r.items {
		if g.UserID == userID {
			c := g
			result = append(result, &c)
		}
	}
	// creation sequence breaks ties between equal timestamps
	sort.Slice(result, func(i, j int) bool { return r.order[result[i].ID] > r.order[result[j].ID] })
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, userID, id string, patch models.GoalPatch) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[id]
	if !ok || g.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if patch.Title != nil {
		g.Title = *patch.Title
	}
	if patch.TargetAmount != nil {
		g.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		g.CurrentAmount = *patch.CurrentAmount
	}
	if patch.Deadline.Set {
		g.Deadline = patch.Deadline.Time
	}
	g.UpdatedAt = time.Now().UTC()
	r.items[id] = g
	return &g, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[id]
	if !ok || g.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	delete(r.order, id)
	return nil
}
