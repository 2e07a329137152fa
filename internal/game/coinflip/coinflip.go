// Package coinflip implements the coin flip game: call heads or tails, win
// pays 1:1.
package coinflip

import (
	"fmt"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// Side is one face of the coin.
type Side string

const (
	Heads Side = "heads"
	Tails Side = "tails"
)

// ParseSide normalizes a user-supplied side name.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Heads, Tails:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: %q is not heads or tails", game.ErrInvalidPrediction, s)
}

// Params holds the player's call.
type Params struct {
	Prediction Side
}

// Detail is the presentation payload for a resolved flip.
type Detail struct {
	Prediction Side `json:"prediction"`
	Result     Side `json:"result"`
}

// Resolve flips the coin and settles the bet.
func Resolve(bet int64, p Params, rng game.RNG) (*model.Settlement, error) {
	if _, err := ParseSide(string(p.Prediction)); err != nil {
		return nil, err
	}

	result := Heads
	if rng.IntN(2) == 1 {
		result = Tails
	}

	s := &model.Settlement{
		Outcome:       model.OutcomeLoss,
		CashDelta:     -bet,
		TotalBetDelta: bet,
		Detail:        Detail{Prediction: p.Prediction, Result: result},
	}
	if result == p.Prediction {
		s.Outcome = model.OutcomeWin
		s.CashDelta = bet
		s.TotalWonDelta = bet
		s.XPAward = game.WinXP
	}
	return s, nil
}
