// Package money parses human-entered financial text into numbers.
//
// Inputs come from free-text boxes, so the parser tolerates the notations
// people actually type: currency symbols, thousands separators, percent
// suffixes, and accounting-style parenthesized negatives. It never fails;
// anything unreadable degrades to the caller's fallback value.
package money

import (
	"math"
	"strconv"
	"strings"
)

// symbolStripper removes currency symbols, thousands commas, and interior
// spaces before numeric parsing.
var symbolStripper = strings.NewReplacer("฿", "", "$", "", "€", "", "£", "", ",", "", " ", "")

// ParseAmount converts text like "75", "฿75,000", "40%", or "(500)" into a
// float64. A value fully wrapped in parentheses is negative. A trailing "%"
// divides the numeric prefix by 100. Empty input or any parse failure returns
// fallback; the result is always a finite number.
func ParseAmount(text string, fallback float64) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return fallback
	}

	neg := false
	if len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = symbolStripper.Replace(s)

	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		v /= 100
		if neg {
			return -v
		}
		return v
	}

	// Keep digits, a single leading minus, and the decimal point; drop the
	// rest (stray currency text, unit suffixes, and so on).
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9' || r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if neg {
		return -v
	}
	return v
}

// ParseFraction parses a percent-style field. Values at or below 1 are taken
// as already being fractions ("0.4" means 40%); larger values are read as
// whole-number percents ("40" also means 40%). Both interpretations are
// intentional so users can type either form into the same box.
func ParseFraction(text string, fallback float64) float64 {
	v := ParseAmount(text, fallback)
	if v <= 1 {
		return v
	}
	return v / 100
}
