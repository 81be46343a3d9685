package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthToken identifies a calendar month. It serializes as "YYYY-MM" and is
// safe to use as a JSON map key.
type MonthToken struct {
	Year  int
	Month int // 1..12
}

// NewMonthToken builds a token, normalizing out-of-range months by carrying
// into the year (month 13 of 2026 becomes January 2027).
func NewMonthToken(year, month int) MonthToken {
	return MonthToken{Year: year, Month: 1}.Add(month - 1)
}

// MonthOf truncates a point in time to its calendar month.
func MonthOf(t time.Time) MonthToken {
	return MonthToken{Year: t.Year(), Month: int(t.Month())}
}

// ParseMonth parses a "YYYY-MM" token. Malformed input yields the zero
// token rather than an error; callers check IsZero when it matters.
func ParseMonth(token string) MonthToken {
	parts := strings.SplitN(strings.TrimSpace(token), "-", 2)
	if len(parts) != 2 {
		return MonthToken{}
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return MonthToken{}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return MonthToken{}
	}
	return MonthToken{Year: year, Month: month}
}

// IsZero reports whether the token is unset.
func (m MonthToken) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m MonthToken) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Add returns the token delta months later (earlier when negative),
// carrying across year boundaries.
func (m MonthToken) Add(delta int) MonthToken {
	total := m.Year*12 + (m.Month - 1) + delta
	year := total / 12
	month := total % 12
	if month < 0 {
		year--
		month += 12
	}
	return MonthToken{Year: year, Month: month + 1}
}

// MonthDiff returns the signed distance in months from a to b; positive
// means b is chronologically after a.
func MonthDiff(a, b MonthToken) int {
	return (b.Year-a.Year)*12 + (b.Month - a.Month)
}

// MonthOptions enumerates January through December of one calendar year, in
// order. Only a single year is enumerated; arbitrary tokens are still
// accepted everywhere via ParseMonth.
func MonthOptions(year int) []MonthToken {
	options := make([]MonthToken, 12)
	for i := range options {
		options[i] = MonthToken{Year: year, Month: i + 1}
	}
	return options
}

// MarshalText implements encoding.TextMarshaler so tokens work as JSON map
// keys and plain fields alike.
func (m MonthToken) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return []byte(""), nil
	}
	return []byte(m.String()), nil
}

// UnmarshalText parses persisted tokens, tolerating malformed or empty
// input the same way ParseMonth does.
func (m *MonthToken) UnmarshalText(text []byte) error {
	*m = ParseMonth(string(text))
	return nil
}
