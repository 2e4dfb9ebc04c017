package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/repomanager"
)

type GoalInput struct {
	Title         string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      *time.Time
}

type GoalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGoalService(db *sql.DB, m repomanager.RepositoryManager) *GoalService {
	return &GoalService{db: db, repomanager: m}
}

func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (*models.Goal, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, validationError("title is required")
	}
	if in.TargetAmount <= 0 {
		return nil, validationError("targetAmount must be greater than 0")
	}
	if in.CurrentAmount < 0 {
		return nil, validationError("currentAmount must not be negative")
	}

	g, err := s.repomanager.Goals(s.db).Create(ctx, &models.Goal{
		UserID:        userID,
		Title:         in.Title,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      utcPtr(in.Deadline),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]*models.Goal, error) {
	return s.repomanager.Goals(s.db).List(ctx, userID)
}

func (s *GoalService) Update(ctx context.Context, userID, id string, patch models.GoalPatch) (*models.Goal, error) {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, validationError("title must not be empty")
		}
		patch.Title = &t
	}
	if patch.TargetAmount != nil && *patch.TargetAmount <= 0 {
		return nil, validationError("targetAmount must be greater than 0")
	}
	if patch.CurrentAmount != nil && *patch.CurrentAmount < 0 {
		return nil, validationError("currentAmount must not be negative")
	}
	patch.Deadline.Time = utcPtr(patch.Deadline.Time)

	if !validID(id) {
		return nil, notFound("goal")
	}
	return s.repomanager.Goals(s.db).Update(ctx, userID, id, patch)
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return notFound("goal")
	}
	return s.repomanager.Goals(s.db).Delete(ctx, userID, id)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
