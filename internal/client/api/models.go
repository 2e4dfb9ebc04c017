package api

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Transaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type TransactionInput struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Note     string  `json:"note,omitempty"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type Summary struct {
	TotalIncome        float64         `json:"totalIncome"`
	TotalExpenses      float64         `json:"totalExpenses"`
	Balance            float64         `json:"balance"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
}

type ExportLink struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Budget struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	Amount   float64 `json:"amount"`
}

type BudgetInput struct {
	Category string  `json:"category"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	Amount   float64 `json:"amount"`
}

type Goal struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type GoalInput struct {
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline,omitempty"`
}

// GoalPatch lists the fields to change. ClearDeadline removes the deadline
// and wins over Deadline.
type GoalPatch struct {
	Title         *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      string
	ClearDeadline bool
}

func (p GoalPatch) body() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.TargetAmount != nil {
		m["targetAmount"] = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		m["currentAmount"] = *p.CurrentAmount
	}
	switch {
	case p.ClearDeadline:
		m["deadline"] = nil
	case p.Deadline != "":
		m["deadline"] = p.Deadline
	}
	return m
}

// Filter narrows transaction listings. Dates are YYYY-MM-DD; Month and
// Year go together and win over From/To on the server.
type Filter struct {
	From  string
	To    string
	Month int
	Year  int
}
