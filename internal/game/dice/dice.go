// Package dice implements the dice prediction game: pick a face on a
// d4/d6/d8/d10/d12/d20/d100 and win sides:1 if it lands.
package dice

import (
	"fmt"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// Sides lists the supported die sizes.
var Sides = []int{4, 6, 8, 10, 12, 20, 100}

// Params selects the die and the predicted face.
type Params struct {
	Sides      int
	Prediction int
}

// Detail is the presentation payload for a resolved roll.
type Detail struct {
	Sides      int `json:"sides"`
	Prediction int `json:"prediction"`
	Rolled     int `json:"rolled"`
}

// Validate rejects unsupported dice and out-of-range predictions.
func Validate(p Params) error {
	supported := false
	for _, s := range Sides {
		if p.Sides == s {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: d%d is not a supported die", game.ErrInvalidPrediction, p.Sides)
	}
	if p.Prediction < 1 || p.Prediction > p.Sides {
		return fmt.Errorf("%w: prediction must be between 1 and %d", game.ErrInvalidPrediction, p.Sides)
	}
	return nil
}

// Resolve rolls the die and settles the bet. A correct prediction pays
// sides:1.
func Resolve(bet int64, p Params, rng game.RNG) (*model.Settlement, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	rolled := rng.IntN(p.Sides) + 1

	s := &model.Settlement{
		Outcome:       model.OutcomeLoss,
		CashDelta:     -bet,
		TotalBetDelta: bet,
		Detail:        Detail{Sides: p.Sides, Prediction: p.Prediction, Rolled: rolled},
	}
	if rolled == p.Prediction {
		winnings := bet * int64(p.Sides)
		s.Outcome = model.OutcomeWin
		s.CashDelta = winnings
		s.TotalWonDelta = winnings
		s.XPAward = game.WinXP
	}
	return s, nil
}
