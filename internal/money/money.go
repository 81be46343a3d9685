// Package money normalizes user-entered amounts and percentages.
//
// Every parser in this package degrades to a safe default instead of
// returning an error: amounts people type into a budget tool arrive with
// commas, currency symbols, and typos, and none of that should stop a
// recompute.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Normalize parses free-form amount text into a float64. Thousands
// separators, currency symbols, and anything else outside digits and a
// decimal point are stripped; a leading minus is honored. Unparsable or
// non-finite input yields 0.
func Normalize(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ClampPercent parses percentage text and clamps the result to [0,100].
// Unparsable input clamps to 0.
func ClampPercent(raw string) float64 {
	return ClampPercentValue(Normalize(raw))
}

// ClampPercentValue clamps an already-numeric rate to [0,100].
func ClampPercentValue(n float64) float64 {
	switch {
	case math.IsNaN(n), n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}

// FormatCurrency renders a whole-dollar amount like "$1,234" or "-$1,234".
// Non-finite input is treated as 0. Normalize(FormatCurrency(n)) round-trips
// to the rounded value.
func FormatCurrency(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	rounded := math.Round(n)
	if rounded < 0 {
		return "-$" + humanize.Commaf(-rounded)
	}
	return "$" + humanize.Commaf(rounded)
}
