package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	ID        string
	UserID    string
	Type      TransactionType
	Amount    float64
	Category  string
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

// TransactionFilter narrows a listing to From <= date < Until.
// A zero bound is open.
type TransactionFilter struct {
	From  time.Time
	Until time.Time
}

// TransactionPatch carries the fields an update should change; nil means keep.
type TransactionPatch struct {
	Type     *TransactionType
	Amount   *float64
	Category *string
	Date     *time.Time
	Note     *string
}

type CategoryTotal struct {
	Category string
	Total    float64
}

type TransactionSummary struct {
	TotalIncome        float64
	TotalExpenses      float64
	Balance            float64
	ExpensesByCategory []CategoryTotal
}
