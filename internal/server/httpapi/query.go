package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

// parseListQuery reads from, to, month and year from a query string.
func parseListQuery(v url.Values) (services.ListQuery, error) {
	var q services.ListQuery

	for _, name := range []string{"from", "to"} {
		t, err := ParseDate(v.Get(name))
		if err != nil {
			return q, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
		}
		if t.IsZero() {
			continue
		}
		if name == "from" {
			q.From = &t
		} else {
			q.To = &t
		}
	}

	var err error
	if q.Month, err = queryInt(v, "month"); err != nil {
		return q, err
	}
	if q.Year, err = queryInt(v, "year"); err != nil {
		return q, err
	}
	return q, nil
}

func queryInt(v url.Values, name string) (int, error) {
	s := strings.TrimSpace(v.Get(name))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", errBadRequest, name)
	}
	return n, nil
}
