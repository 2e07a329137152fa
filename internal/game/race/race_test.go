package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		racers int
		odds   int64
	}{
		{"turtle", Turtle, 3, 3},
		{"dog", Dog, 5, 5},
		{"horse", Horse, 8, 8},
		{"dinosaur", Dinosaur, 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Force racer 2 to win.
			s, err := Resolve(100, Params{Kind: tt.kind, Prediction: 2}, &stubRNG{ints: []int{1}})
			require.NoError(t, err)
			assert.Equal(t, model.OutcomeWin, s.Outcome)
			assert.Equal(t, 100*tt.odds, s.CashDelta)
			assert.Equal(t, int64(game.WinXP), s.XPAward)

			detail := s.Detail.(Detail)
			assert.Equal(t, tt.racers, detail.Racers)
			assert.Equal(t, 2, detail.Winner)

			// Same race, wrong pick.
			s, err = Resolve(100, Params{Kind: tt.kind, Prediction: 1}, &stubRNG{ints: []int{1}})
			require.NoError(t, err)
			assert.Equal(t, model.OutcomeLoss, s.Outcome)
			assert.Equal(t, int64(-100), s.CashDelta)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Params{Kind: Turtle, Prediction: 3}))
	assert.ErrorIs(t, Validate(Params{Kind: Turtle, Prediction: 4}), game.ErrInvalidPrediction)
	assert.ErrorIs(t, Validate(Params{Kind: Turtle, Prediction: 0}), game.ErrInvalidPrediction)
	assert.ErrorIs(t, Validate(Params{Kind: "snail", Prediction: 1}), game.ErrInvalidPrediction)
}
