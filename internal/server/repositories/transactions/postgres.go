package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/dbx"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

const columns = `id, user_id, type, amount, category, date, note, created_at`

// Both bounds are optional; NULL disables the condition.
const filterClause = `user_id = $1
		   AND ($2::timestamptz IS NULL OR date >= $2)
		   AND ($3::timestamptz IS NULL OR date < $3)`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query :=
		`INSERT INTO transactions (user_id, type, amount, category, date, note)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		tx.UserID, string(tx.Type), tx.Amount, tx.Category, tx.Date, tx.Note).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tx, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT ` + columns + ` FROM transactions
		 WHERE ` + filterClause + `
		 ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, nullTime(filter.From), nullTime(filter.Until))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	query :=
		`UPDATE transactions SET
		   type     = COALESCE($3::text, type),
		   amount   = COALESCE($4::double precision, amount),
		   category = COALESCE($5::text, category),
		   date     = COALESCE($6::timestamptz, date),
		   note     = COALESCE($7::text, note)
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + columns

	var typ any
	if patch.Type != nil {
		typ = string(*patch.Type)
	}

	item, err := scan(r.db.QueryRowContext(ctx, query, id, userID,
		typ, optional(patch.Amount), optional(patch.Category), optional(patch.Date), optional(patch.Note)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Summary(ctx context.Context, userID string, filter models.TransactionFilter) (*models.TransactionSummary, error) {
	from, until := nullTime(filter.From), nullTime(filter.Until)

	totals :=
		`SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		        COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		 FROM transactions
		 WHERE ` + filterClause

	s := &models.TransactionSummary{}
	if err := r.db.QueryRowContext(ctx, totals, userID, from, until).Scan(&s.TotalIncome, &s.TotalExpenses); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.Balance = s.TotalIncome - s.TotalExpenses

	byCategory :=
		`SELECT category, SUM(amount) AS total
		 FROM transactions
		 WHERE ` + filterClause + ` AND type = 'expense'
		 GROUP BY category
		 ORDER BY total DESC, category`

	rows, err := r.db.QueryContext(ctx, byCategory, userID, from, until)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.ExpensesByCategory = append(s.ExpensesByCategory, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Transaction, error) {
	var item models.Transaction
	var typ string
	if err := row.Scan(&item.ID, &item.UserID, &typ, &item.Amount, &item.Category,
		&item.Date, &item.Note, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Type = models.TransactionType(typ)
	return &item, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
