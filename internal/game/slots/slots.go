// Package slots implements a weighted three-reel slot machine.
package slots

import (
	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// Symbol is one reel face with its selection weight and payout ratios for
// three and two of a kind.
type Symbol struct {
	Face    string
	Weight  int
	Payout3 int64
	Payout2 int64
}

// Reel is the fixed symbol table. Rarer symbols pay more; weights sum to the
// sampling denominator.
var Reel = []Symbol{
	{Face: "💎", Weight: 1, Payout3: 500, Payout2: 25},
	{Face: "🍒", Weight: 2, Payout3: 25, Payout2: 10},
	{Face: "🍊", Weight: 3, Payout3: 5, Payout2: 3},
	{Face: "🍇", Weight: 4, Payout3: 3, Payout2: 2},
	{Face: "🔔", Weight: 5, Payout3: 2, Payout2: 1},
	{Face: "⭐", Weight: 6, Payout3: 1, Payout2: 1},
}

var totalWeight int

func init() {
	for _, s := range Reel {
		totalWeight += s.Weight
	}
}

// Detail is the presentation payload for a finished spin.
type Detail struct {
	Faces       [3]string `json:"faces"`
	Matched     string    `json:"matched,omitempty"`
	MatchCount  int       `json:"match_count"`
	PayoutRatio int64     `json:"payout_ratio"`
}

// spin draws one weighted symbol index.
func spin(rng game.RNG) int {
	n := rng.IntN(totalWeight)
	for i, s := range Reel {
		n -= s.Weight
		if n < 0 {
			return i
		}
	}
	return len(Reel) - 1
}

// Resolve spins three independent reels and settles the bet. Three of a kind
// pays Payout3:1 on the gross, any pair pays Payout2:1; positions are checked
// in the order (0,1), (1,2), (0,2). A winning spin credits the net
// (gross payout minus the stake); a losing spin debits the stake.
func Resolve(bet int64, rng game.RNG) (*model.Settlement, error) {
	reels := [3]int{spin(rng), spin(rng), spin(rng)}

	detail := Detail{}
	for i, r := range reels {
		detail.Faces[i] = Reel[r].Face
	}

	var matched = -1
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		matched = reels[0]
		detail.MatchCount = 3
		detail.PayoutRatio = Reel[matched].Payout3
	case reels[0] == reels[1]:
		matched = reels[0]
	case reels[1] == reels[2]:
		matched = reels[1]
	case reels[0] == reels[2]:
		matched = reels[0]
	}
	if matched >= 0 && detail.MatchCount == 0 {
		detail.MatchCount = 2
		detail.PayoutRatio = Reel[matched].Payout2
	}

	s := &model.Settlement{
		Outcome:       model.OutcomeLoss,
		CashDelta:     -bet,
		TotalBetDelta: bet,
	}
	if matched >= 0 {
		detail.Matched = Reel[matched].Face
		gross := bet * detail.PayoutRatio
		s.Outcome = model.OutcomeWin
		s.CashDelta = gross - bet
		s.TotalWonDelta = gross
		s.XPAward = game.WinXP
	}
	s.Detail = detail
	return s, nil
}
