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

type TransactionInput struct {
	Type     models.TransactionType
	Amount   float64
	Category string
	Date     time.Time
	Note     string
}

type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m}
}

func (s *TransactionService) Create(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.Note = strings.TrimSpace(in.Note)

	if !in.Type.Valid() {
		return nil, validationError("type must be income or expense")
	}
	if in.Amount <= 0 {
		return nil, validationError("amount must be greater than 0")
	}
	if in.Category == "" {
		return nil, validationError("category is required")
	}
	if in.Date.IsZero() {
		return nil, validationError("date is required")
	}

	tx, err := s.repomanager.Transactions(s.db).Create(ctx, &models.Transaction{
		UserID:   userID,
		Type:     in.Type,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date.UTC(),
		Note:     in.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}
	return tx, nil
}

func (s *TransactionService) List(ctx context.Context, userID string, q ListQuery) ([]*models.Transaction, error) {
	f, err := q.Resolve()
	if err != nil {
		return nil, err
	}
	return s.repomanager.Transactions(s.db).List(ctx, userID, f)
}

func (s *TransactionService) Update(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, validationError("type must be income or expense")
	}
	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, validationError("amount must be greater than 0")
	}
	if patch.Category != nil {
		c := strings.TrimSpace(*patch.Category)
		if c == "" {
			return nil, validationError("category must not be empty")
		}
		patch.Category = &c
	}
	if patch.Date != nil {
		d := patch.Date.UTC()
		patch.Date = &d
	}

	if !validID(id) {
		return nil, notFound("transaction")
	}
	return s.repomanager.Transactions(s.db).Update(ctx, userID, id, patch)
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return notFound("transaction")
	}
	return s.repomanager.Transactions(s.db).Delete(ctx, userID, id)
}

// Summary totals income and expenses over the same filter List accepts.
func (s *TransactionService) Summary(ctx context.Context, userID string, q ListQuery) (*models.TransactionSummary, error) {
	f, err := q.Resolve()
	if err != nil {
		return nil, err
	}
	return s.repomanager.Transactions(s.db).Summary(ctx, userID, f)
}
