package coinflip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// stubRNG returns a fixed sequence of draws.
type stubRNG struct {
	ints []int
	i    int
}

func (s *stubRNG) IntN(n int) int {
	v := s.ints[s.i%len(s.ints)]
	s.i++
	return v % n
}

func (s *stubRNG) Shuffle(n int, swap func(i, j int)) {}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		prediction Side
		draw       int
		outcome    model.Outcome
		cashDelta  int64
	}{
		{"heads called, heads lands", Heads, 0, model.OutcomeWin, 100},
		{"tails called, tails lands", Tails, 1, model.OutcomeWin, 100},
		{"heads called, tails lands", Heads, 1, model.OutcomeLoss, -100},
		{"tails called, heads lands", Tails, 0, model.OutcomeLoss, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(100, Params{Prediction: tt.prediction}, &stubRNG{ints: []int{tt.draw}})
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, s.Outcome)
			assert.Equal(t, tt.cashDelta, s.CashDelta)
			assert.Equal(t, int64(100), s.TotalBetDelta)
			if tt.outcome == model.OutcomeWin {
				assert.Equal(t, int64(game.WinXP), s.XPAward)
				assert.Equal(t, int64(100), s.TotalWonDelta)
			} else {
				assert.Zero(t, s.XPAward)
				assert.Zero(t, s.TotalWonDelta)
			}
		})
	}
}

func TestResolveInvalidPrediction(t *testing.T) {
	_, err := Resolve(100, Params{Prediction: "edge"}, &stubRNG{ints: []int{0}})
	assert.ErrorIs(t, err, game.ErrInvalidPrediction)
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("heads")
	require.NoError(t, err)
	assert.Equal(t, Heads, side)

	_, err = ParseSide("coin")
	assert.ErrorIs(t, err, game.ErrInvalidPrediction)
}

// The loss is never more than the wager and the win pays exactly 1:1.
func TestResolveMaxLossProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bet := rapid.Int64Range(1, 1_000_000).Draw(t, "bet")
		draw := rapid.IntRange(0, 1).Draw(t, "draw")
		s, err := Resolve(bet, Params{Prediction: Heads}, &stubRNG{ints: []int{draw}})
		if err != nil {
			t.Fatal(err)
		}
		if s.CashDelta != bet && s.CashDelta != -bet {
			t.Fatalf("cash delta %d for bet %d", s.CashDelta, bet)
		}
	})
}
