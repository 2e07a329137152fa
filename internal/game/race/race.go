// Package race implements animal race betting: pick the winner out of a
// fixed field, win at the race type's odds.
package race

import (
	"fmt"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// Kind selects the race type, which fixes the racer count and the odds.
type Kind string

const (
	Turtle   Kind = "turtle"
	Dog      Kind = "dog"
	Horse    Kind = "horse"
	Dinosaur Kind = "dinosaur"
)

type raceSpec struct {
	racers int
	odds   int64
}

var specs = map[Kind]raceSpec{
	Turtle:   {racers: 3, odds: 3},
	Dog:      {racers: 5, odds: 5},
	Horse:    {racers: 8, odds: 8},
	Dinosaur: {racers: 12, odds: 12},
}

// Params selects the race type and the backed racer (1-based).
type Params struct {
	Kind       Kind
	Prediction int
}

// Detail is the presentation payload for a finished race.
type Detail struct {
	Kind       Kind  `json:"kind"`
	Racers     int   `json:"racers"`
	Prediction int   `json:"prediction"`
	Winner     int   `json:"winner"`
	Odds       int64 `json:"odds"`
}

// Validate rejects unknown race types and out-of-field predictions.
func Validate(p Params) error {
	spec, ok := specs[p.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown race type %q", game.ErrInvalidPrediction, p.Kind)
	}
	if p.Prediction < 1 || p.Prediction > spec.racers {
		return fmt.Errorf("%w: racer must be between 1 and %d", game.ErrInvalidPrediction, spec.racers)
	}
	return nil
}

// Resolve runs the race and settles the bet.
func Resolve(bet int64, p Params, rng game.RNG) (*model.Settlement, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	spec := specs[p.Kind]

	winner := rng.IntN(spec.racers) + 1

	s := &model.Settlement{
		Outcome:       model.OutcomeLoss,
		CashDelta:     -bet,
		TotalBetDelta: bet,
		Detail: Detail{
			Kind:       p.Kind,
			Racers:     spec.racers,
			Prediction: p.Prediction,
			Winner:     winner,
			Odds:       spec.odds,
		},
	}
	if winner == p.Prediction {
		winnings := bet * spec.odds
		s.Outcome = model.OutcomeWin
		s.CashDelta = winnings
		s.TotalWonDelta = winnings
		s.XPAward = game.WinXP
	}
	return s, nil
}
