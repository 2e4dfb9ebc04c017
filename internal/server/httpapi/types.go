package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number is a float64 that also accepts numeric strings, since browser
// forms post every value as a string.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	f, err := parseNumeric(b)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Integer is Number restricted to whole values.
type Integer int

func (i *Integer) UnmarshalJSON(b []byte) error {
	f, err := parseNumeric(b)
	if err != nil {
		return err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%v is not a whole number", f)
	}
	*i = Integer(f)
	return nil
}

func parseNumeric(b []byte) (float64, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return 0, nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%q is not a finite number", s)
		}
		return f, nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return 0, err
	}
	return f, nil
}

// Date accepts "2006-01-02" or an RFC 3339 timestamp. An empty string or
// null leaves it zero.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	t, _, err := parseDateJSON(b)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// OptionalDate remembers whether the key was present at all, so that a
// patch can tell "clear" (null or "") from "leave alone" (absent).
type OptionalDate struct {
	Set   bool
	Valid bool
	Time  time.Time
}

func (d *OptionalDate) UnmarshalJSON(b []byte) error {
	t, valid, err := parseDateJSON(b)
	if err != nil {
		return err
	}
	d.Set, d.Valid, d.Time = true, valid, t
	return nil
}

func (d OptionalDate) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func parseDateJSON(b []byte) (time.Time, bool, error) {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return time.Time{}, false, nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return time.Time{}, false, fmt.Errorf("date must be a string")
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, !t.IsZero(), nil
}

// ParseDate parses a query or body date. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
