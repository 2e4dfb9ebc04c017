// Package repomanager vends repository implementations for one storage
// backend and runs its schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fintrack/internal/dbx"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/budgets"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/goals"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Budgets(db dbx.DBTX) budgets.Repository
	Goals(db dbx.DBTX) goals.Repository
}
