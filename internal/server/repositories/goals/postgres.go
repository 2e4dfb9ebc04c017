package goals

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

const columns = `id, user_id, title, target_amount, current_amount, deadline, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	query :=
		`INSERT INTO goals (user_id, title, target_amount, current_amount, deadline)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		goal.UserID, goal.Title, goal.TargetAmount, goal.CurrentAmount, deadlineArg(goal.Deadline)).
		Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return goal, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Goal, error) {
	query := `SELECT ` + columns + ` FROM goals
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Goal
	for rows.Next() {
		g, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.GoalPatch) (*models.Goal, error) {
	query :=
		`UPDATE goals SET
		   title          = COALESCE($3::text, title),
		   target_amount  = COALESCE($4::double precision, target_amount),
		   current_amount = COALESCE($5::double precision, current_amount),
		   deadline       = CASE WHEN $6::boolean THEN $7::timestamptz ELSE deadline END,
		   updated_at     = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + columns

	g, err := scan(r.db.QueryRowContext(ctx, query, id, userID,
		optional(patch.Title), optional(patch.TargetAmount), optional(patch.CurrentAmount),
		patch.Deadline.Set, deadlineArg(patch.Deadline.Time)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
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

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Goal, error) {
	var g models.Goal
	var deadline sql.NullTime
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
		&deadline, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if deadline.Valid {
		d := deadline.Time
		g.Deadline = &d
	}
	return &g, nil
}

func deadlineArg(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
