package bet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		cash     int64
		expected int64
	}{
		{"plain number", "100", 5000, 100},
		{"trims whitespace", "  250 ", 5000, 250},
		{"uppercase", "1K", 5000, 1000},
		{"max keyword", "max", 500, 500},
		{"m keyword is max", "m", 500, 500},
		{"allin keyword", "allin", 500, 500},
		{"a keyword", "a", 500, 500},
		{"all keyword", "all", 500, 500},
		{"k suffix", "5k", 100000, 5000},
		{"fractional k suffix", "2.5k", 100000, 2500},
		{"m suffix", "5m", 0, 5000000},
		{"g suffix", "1g", 0, 1000000000},
		{"t suffix", "1t", 0, 1000000000000},
		{"fractional plain", "99.9", 5000, 99},
		{"unparseable", "banana", 100, 0},
		{"empty", "", 100, 0},
		{"suffix without prefix", "k", 100, 0},
		{"negative number passes through", "-50", 100, -50},
		{"nan", "nan", 100, 0},
		{"inf", "inf", 100, 0},
		{"negative inf", "-inf", 100, 0},
		{"inf with suffix", "infk", 100, 0},
		{"nan with suffix", "nank", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.raw, tt.cash))
		})
	}
}

// Integer strings must round-trip exactly.
func TestParseIntegerRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(0, 1<<40).Draw(t, "n")
		got := Parse(fmt.Sprintf("%d", n), 0)
		if got != n {
			t.Fatalf("Parse(%d) = %d", n, got)
		}
	})
}

// A k suffix on an integer prefix scales it by exactly 1000.
func TestParseSuffixScalingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(0, 1_000_000).Draw(t, "n")
		got := Parse(fmt.Sprintf("%dk", n), 0)
		if got != n*1000 {
			t.Fatalf("Parse(%dk) = %d, want %d", n, got, n*1000)
		}
	})
}

// Keywords always resolve to the available cash, whatever it is.
func TestParseKeywordProperty(t *testing.T) {
	keywords := []string{"max", "m", "allin", "a", "all"}
	rapid.Check(t, func(t *rapid.T) {
		cash := rapid.Int64Range(0, 1<<50).Draw(t, "cash")
		kw := rapid.SampledFrom(keywords).Draw(t, "kw")
		if got := Parse(kw, cash); got != cash {
			t.Fatalf("Parse(%q, %d) = %d", kw, cash, got)
		}
	})
}
