package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

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

func TestResolveWin(t *testing.T) {
	// Force the d6 to land on 4.
	s, err := Resolve(100, Params{Sides: 6, Prediction: 4}, &stubRNG{ints: []int{3}})
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeWin, s.Outcome)
	assert.Equal(t, int64(600), s.CashDelta)
	assert.Equal(t, int64(600), s.TotalWonDelta)
	assert.Equal(t, int64(100), s.TotalBetDelta)
	assert.Equal(t, int64(game.WinXP), s.XPAward)

	detail := s.Detail.(Detail)
	assert.Equal(t, 4, detail.Rolled)
}

func TestResolveLoss(t *testing.T) {
	s, err := Resolve(100, Params{Sides: 6, Prediction: 4}, &stubRNG{ints: []int{0}})
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeLoss, s.Outcome)
	assert.Equal(t, int64(-100), s.CashDelta)
	assert.Zero(t, s.XPAward)
	assert.Zero(t, s.TotalWonDelta)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"d4", Params{Sides: 4, Prediction: 1}, false},
		{"d20", Params{Sides: 20, Prediction: 20}, false},
		{"d100", Params{Sides: 100, Prediction: 73}, false},
		{"unsupported die", Params{Sides: 7, Prediction: 3}, true},
		{"prediction too low", Params{Sides: 6, Prediction: 0}, true},
		{"prediction too high", Params{Sides: 6, Prediction: 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, game.ErrInvalidPrediction)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// A win always pays sides:1 and a loss always costs exactly the wager.
func TestResolvePayoutProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sides := rapid.SampledFrom(Sides).Draw(t, "sides")
		prediction := rapid.IntRange(1, sides).Draw(t, "prediction")
		rolled := rapid.IntRange(0, sides-1).Draw(t, "rolled")
		bet := rapid.Int64Range(1, 100_000).Draw(t, "bet")

		s, err := Resolve(bet, Params{Sides: sides, Prediction: prediction}, &stubRNG{ints: []int{rolled}})
		if err != nil {
			t.Fatal(err)
		}
		if rolled+1 == prediction {
			if s.CashDelta != bet*int64(sides) {
				t.Fatalf("win on d%d paid %d, want %d", sides, s.CashDelta, bet*int64(sides))
			}
		} else if s.CashDelta != -bet {
			t.Fatalf("loss cost %d, want %d", s.CashDelta, -bet)
		}
	})
}
