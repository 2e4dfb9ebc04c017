package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
)

// now is a test seam.
var now = time.Now

// parsePeriod turns command arguments into a transaction filter:
//
//	(none)              everything
//	this-month          current calendar month
//	last-month          previous calendar month
//	<month> <year>      that month
//	<from> <to>         inclusive date range, YYYY-MM-DD
func parsePeriod(args []string) (api.Filter, error) {
	switch len(args) {
	case 0:
		return api.Filter{}, nil
	case 1:
		t := now()
		switch args[0] {
		case "this-month":
			return api.Filter{Month: int(t.Month()), Year: t.Year()}, nil
		case "last-month":
			prev := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
			return api.Filter{Month: int(prev.Month()), Year: prev.Year()}, nil
		}
	case 2:
		if m, y, err := parseMonthYear(args[0], args[1]); err == nil {
			return api.Filter{Month: m, Year: y}, nil
		}
		for _, d := range args {
			if _, err := time.Parse(time.DateOnly, d); err != nil {
				return api.Filter{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", d)
			}
		}
		return api.Filter{From: args[0], To: args[1]}, nil
	}
	return api.Filter{}, fmt.Errorf("usage: [this-month | last-month | <month> <year> | <from> <to>]")
}

func parseMonthYear(ms, ys string) (int, int, error) {
	m, err := strconv.Atoi(ms)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", ms)
	}
	y, err := strconv.Atoi(ys)
	if err != nil || y < 1 || y > 9999 {
		return 0, 0, fmt.Errorf("invalid year %q", ys)
	}
	return m, y, nil
}
