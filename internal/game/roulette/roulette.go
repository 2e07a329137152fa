// Package roulette implements an American-style roulette wheel: pockets 0-36
// plus 00, with exact-number, color, half, dozen and green bet types.
package roulette

import (
	"fmt"
	"strconv"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// PocketCount covers 0-36 plus the 00 pocket.
const PocketCount = 38

// doubleZero is the internal index of the 00 pocket.
const doubleZero = 37

// Color of a pocket.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// redNumbers is the standard layout's red partition of 1-36; the remaining
// eighteen numbers are black.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Pocket is one slot on the wheel.
type Pocket struct {
	// Label is "0".."36" or "00".
	Label string `json:"label"`
	// Number is the numeric value; 0 for both zero pockets.
	Number int `json:"number"`
	// DoubleZero distinguishes 00 from 0.
	DoubleZero bool `json:"double_zero"`
}

// Color returns the pocket's color; both zero pockets are green.
func (p Pocket) Color() Color {
	if p.Number == 0 {
		return Green
	}
	if redNumbers[p.Number] {
		return Red
	}
	return Black
}

func pocketAt(i int) Pocket {
	if i == doubleZero {
		return Pocket{Label: "00", DoubleZero: true}
	}
	return Pocket{Label: strconv.Itoa(i), Number: i}
}

// BetKind is the category a prediction string falls into.
type BetKind int

const (
	BetNumber BetKind = iota
	BetRed
	BetBlack
	BetGreen
	BetFirstHalf
	BetSecondHalf
	BetFirstDozen
	BetSecondDozen
	BetThirdDozen
)

// payoutRatios gives the X in an X:1 payout per bet kind.
var payoutRatios = map[BetKind]int64{
	BetNumber:      35,
	BetRed:         1,
	BetBlack:       1,
	BetGreen:       17,
	BetFirstHalf:   1,
	BetSecondHalf:  1,
	BetFirstDozen:  2,
	BetSecondDozen: 2,
	BetThirdDozen:  2,
}

// Bet is a validated prediction.
type Bet struct {
	Kind BetKind
	// Number is set only for BetNumber; -1 encodes the 00 pocket.
	Number int
}

// ParseBet validates a prediction string. Unknown predictions are rejected up
// front rather than silently treated as sure losses.
func ParseBet(prediction string) (Bet, error) {
	switch prediction {
	case "red":
		return Bet{Kind: BetRed}, nil
	case "black":
		return Bet{Kind: BetBlack}, nil
	case "green":
		return Bet{Kind: BetGreen}, nil
	case "1st", "1sthalf":
		return Bet{Kind: BetFirstHalf}, nil
	case "2nd", "2ndhalf":
		return Bet{Kind: BetSecondHalf}, nil
	case "1st12":
		return Bet{Kind: BetFirstDozen}, nil
	case "2nd12":
		return Bet{Kind: BetSecondDozen}, nil
	case "3rd12":
		return Bet{Kind: BetThirdDozen}, nil
	case "00":
		return Bet{Kind: BetNumber, Number: -1}, nil
	}
	n, err := strconv.Atoi(prediction)
	if err != nil || n < 0 || n > 36 {
		return Bet{}, fmt.Errorf("%w: %q is not a roulette bet", game.ErrInvalidPrediction, prediction)
	}
	return Bet{Kind: BetNumber, Number: n}, nil
}

// Matches reports whether the bet covers the pocket. Range and color bets
// never cover the zero pockets; only the exact "00" bet covers 00.
func (b Bet) Matches(p Pocket) bool {
	switch b.Kind {
	case BetNumber:
		if b.Number == -1 {
			return p.DoubleZero
		}
		return !p.DoubleZero && p.Number == b.Number
	case BetRed:
		return p.Color() == Red
	case BetBlack:
		return p.Color() == Black
	case BetGreen:
		return p.Color() == Green
	case BetFirstHalf:
		return !p.DoubleZero && p.Number >= 1 && p.Number <= 18
	case BetSecondHalf:
		return !p.DoubleZero && p.Number >= 19 && p.Number <= 36
	case BetFirstDozen:
		return !p.DoubleZero && p.Number >= 1 && p.Number <= 12
	case BetSecondDozen:
		return !p.DoubleZero && p.Number >= 13 && p.Number <= 24
	case BetThirdDozen:
		return !p.DoubleZero && p.Number >= 25 && p.Number <= 36
	}
	return false
}

// Params holds the raw prediction string.
type Params struct {
	Prediction string
}

// Detail is the presentation payload for a finished spin.
type Detail struct {
	Pocket      Pocket `json:"pocket"`
	Color       Color  `json:"color"`
	Prediction  string `json:"prediction"`
	PayoutRatio int64  `json:"payout_ratio"`
}

// Resolve spins the wheel and settles the bet.
func Resolve(betAmount int64, p Params, rng game.RNG) (*model.Settlement, error) {
	b, err := ParseBet(p.Prediction)
	if err != nil {
		return nil, err
	}

	pocket := pocketAt(rng.IntN(PocketCount))

	s := &model.Settlement{
		Outcome:       model.OutcomeLoss,
		CashDelta:     -betAmount,
		TotalBetDelta: betAmount,
		Detail: Detail{
			Pocket:     pocket,
			Color:      pocket.Color(),
			Prediction: p.Prediction,
		},
	}
	if b.Matches(pocket) {
		ratio := payoutRatios[b.Kind]
		winnings := betAmount * ratio
		s.Outcome = model.OutcomeWin
		s.CashDelta = winnings
		s.TotalWonDelta = winnings
		s.XPAward = game.WinXP
		s.Detail = Detail{
			Pocket:      pocket,
			Color:       pocket.Color(),
			Prediction:  p.Prediction,
			PayoutRatio: ratio,
		}
	}
	return s, nil
}
