package transactions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var cols = []string{"id", "user_id", "type", "amount", "category", "date", "note", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	q := `(?s)^INSERT\s+INTO\s+transactions\s*\(user_id,\s*type,\s*amount,\s*category,\s*date,\s*note\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*created_at\s*$`
	mock.ExpectQuery(q).
		WithArgs("u1", "expense", 12.5, "Food", date, "lunch").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t1", time.Now()))

	got, err := repo.Create(context.Background(), &models.Transaction{
		UserID: "u1", Type: models.TransactionExpense, Amount: 12.5, Category: "Food", Date: date, Note: "lunch",
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScopedAndFiltered(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(cols).
		AddRow("t2", "u1", "income", 100.0, "Salary", d, "", time.Now()).
		AddRow("t1", "u1", "expense", 12.5, "Food", d, "lunch", time.Now())

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+transactions\s+WHERE\s+user_id\s*=\s*\$1.*ORDER\s+BY\s+date\s+DESC`).
		WithArgs("u1", from, until).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1", models.TransactionFilter{From: from, Until: until})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.TransactionIncome, got[0].Type)
	assert.Equal(t, "lunch", got[1].Note)
}

func TestList_OpenBoundsPassNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+transactions`).
		WithArgs("u1", nil, nil).
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background(), "u1", models.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdate_NotOwnedIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	amount := 5.0
	mock.ExpectQuery(`(?s)^UPDATE\s+transactions\s+SET.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("t1", "intruder", nil, amount, nil, nil, nil).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "intruder", "t1", models.TransactionPatch{Amount: &amount})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	typ := models.TransactionIncome
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^UPDATE\s+transactions`).
		WithArgs("t1", "u1", "income", nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("t1", "u1", "income", 12.5, "Food", d, "", time.Now()))

	got, err := repo.Update(context.Background(), "u1", "t1", models.TransactionPatch{Type: &typ})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionIncome, got.Type)
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `^DELETE\s+FROM\s+transactions\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`
	mock.ExpectExec(q).WithArgs("t1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("t1", "u2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("t1", "u3").WillReturnError(errors.New("boom"))

	require.NoError(t, repo.Delete(context.Background(), "u1", "t1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "u2", "t1"), common.ErrorNotFound)

	err := repo.Delete(context.Background(), "u3", "t1")
	if err == nil || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+COALESCE\(SUM\(amount\)\s+FILTER`).
		WithArgs("u1", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"income", "expense"}).AddRow(1000.0, 250.0))
	mock.ExpectQuery(`(?s)^SELECT\s+category,\s*SUM\(amount\).*GROUP\s+BY\s+category`).
		WithArgs("u1", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("Rent", 200.0).
			AddRow("Food", 50.0))

	got, err := repo.Summary(context.Background(), "u1", models.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.TotalIncome)
	assert.Equal(t, 250.0, got.TotalExpenses)
	assert.Equal(t, 750.0, got.Balance)
	assert.Equal(t, []models.CategoryTotal{{Category: "Rent", Total: 200}, {Category: "Food", Total: 50}}, got.ExpensesByCategory)
	require.NoError(t, mock.ExpectationsWereMet())
}
