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

// InMemoryRepositoryManager keeps one instance of each in-memory repository
// and hands it out regardless of the DBTX argument. Data lives as long as
// the manager does.
type InMemoryRepositoryManager struct {
	users        *users.MemoryRepository
	transactions *transactions.MemoryRepository
	budgets      *budgets.MemoryRepository
	goals        *goals.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:        users.NewMemoryRepository(),
		transactions: transactions.NewMemoryRepository(),
		budgets:      budgets.NewMemoryRepository(),
		goals:        goals.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Transactions(dbx.DBTX) transactions.Repository {
	return m.transactions
}

func (m *InMemoryRepositoryManager) Budgets(dbx.DBTX) budgets.Repository { return m.budgets }

func (m *InMemoryRepositoryManager) Goals(dbx.DBTX) goals.Repository { return m.goals }
