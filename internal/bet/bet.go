// Package bet parses user-supplied wager strings into integer amounts.
package bet

import (
	"math"
	"strconv"
	"strings"
)

// suffixMultipliers maps a trailing shorthand letter to its multiplier.
// The prefix is parsed as a decimal number, so "2.5k" is a valid 2500.
var suffixMultipliers = map[byte]float64{
	'k': 1e3,
	'm': 1e6,
	'g': 1e9,
	't': 1e12,
}

// Parse turns a raw bet string into a wager amount.
//
// "max", "m", "allin", "a" and "all" resolve to availableCash. A trailing
// k/m/g/t suffix multiplies the decimal prefix. Plain numbers are parsed as
// decimals and truncated toward zero. Anything unparseable yields 0; the
// caller is responsible for rejecting bets <= 0 and bets above the player's
// cash. Parse never panics and never returns an error.
func Parse(raw string, availableCash int64) int64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}

	// Keywords take precedence over suffix parsing: "m" alone means max,
	// "5m" means five million.
	switch s {
	case "max", "m", "allin", "a", "all":
		return availableCash
	}

	if mult, ok := suffixMultipliers[s[len(s)-1]]; ok {
		n, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0
		}
		return truncate(n * mult)
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return truncate(n)
}

// truncate converts to int64, mapping NaN and infinities to 0. ParseFloat
// accepts "nan" and "inf", and int64(NaN) is platform-defined.
func truncate(n float64) int64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int64(n)
}
