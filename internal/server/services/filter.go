package services

import (
	"time"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// ListQuery is the caller-facing transaction filter: an inclusive From/To
// date range and/or a calendar month. Month and Year must be given together
// and take precedence over From/To.
type ListQuery struct {
	From  *time.Time
	To    *time.Time
	Month int
	Year  int
}

// Resolve turns q into a half-open storage filter.
func (q ListQuery) Resolve() (models.TransactionFilter, error) {
	var f models.TransactionFilter

	if q.Month != 0 || q.Year != 0 {
		if err := checkPeriod(q.Month, q.Year); err != nil {
			return f, err
		}
		f.From, f.Until = timex.MonthRange(q.Year, time.Month(q.Month))
		return f, nil
	}

	if q.From != nil {
		f.From = timex.StartOfDay(*q.From)
	}
	if q.To != nil {
		f.Until = timex.StartOfDay(*q.To).AddDate(0, 0, 1)
	}
	if !f.From.IsZero() && !f.Until.IsZero() && !f.From.Before(f.Until) {
		return f, validationError("from must not be after to")
	}
	return f, nil
}

func checkPeriod(month, year int) error {
	if month < 1 || month > 12 {
		return validationError("month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return validationError("year must be between 1 and 9999")
	}
	return nil
}
