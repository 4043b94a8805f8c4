package domain

import (
	"fmt"
	"time"
)

// periodLayout is the wire format for a Period, e.g. "2026-01".
const periodLayout = "2006-01"

// Period identifies the calendar year+month that scopes one import batch.
// All jobs and transaction records are keyed by (workspace, Period).
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ParsePeriod parses a period in "YYYY-MM" format.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q (expected YYYY-MM): %w", s, err)
	}
	return Period{Year: t.Year(), Month: int(t.Month())}, nil
}

// PeriodOf returns the period containing the given date.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// String formats the period as "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Contains reports whether the given date falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// MarshalJSON encodes the period as a "YYYY-MM" string.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM" string into the period.
func (p *Period) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid period JSON value: %s", string(data))
	}
	parsed, err := ParsePeriod(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
