package blackjack

import (
	"errors"
	"fmt"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// Mode selects the payout multiplier and whether the presentation layer
// should show hand totals.
type Mode string

const (
	// ModeEasy pays 3:2 on a player win.
	ModeEasy Mode = "easy"
	// ModeHard pays 2:1 on a player win.
	ModeHard Mode = "hard"
)

// ParseMode normalizes a user-supplied mode name; the empty string defaults
// to easy.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeEasy, nil
	case ModeEasy, ModeHard:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q is not a blackjack mode", game.ErrInvalidPrediction, s)
}

// State of the table's state machine.
type State string

const (
	// StatePlayerTurn awaits a Hit or Stand.
	StatePlayerTurn State = "player_turn"
	// StateResolved is terminal; the settlement is available.
	StateResolved State = "resolved"
)

// Result names how a resolved hand ended.
type Result string

const (
	ResultDealerBlackjack Result = "dealer_blackjack"
	ResultBlackjack       Result = "blackjack"
	ResultBust            Result = "bust"
	ResultDealerBust      Result = "dealer_bust"
	ResultPlayerWins      Result = "player_wins"
	ResultDealerWins      Result = "dealer_wins"
	ResultPush            Result = "push"
	ResultForfeit         Result = "forfeit"
)

// ErrHandResolved is returned for actions against a finished hand.
var ErrHandResolved = errors.New("hand already resolved")

// Table is one blackjack hand in progress. It owns its shoe exclusively:
// drawn cards are removed and the shoe is never reshuffled mid-hand.
type Table struct {
	Bet    int64  `json:"bet"`
	Mode   Mode   `json:"mode"`
	State  State  `json:"state"`
	Shoe   []Card `json:"shoe"`
	Player []Card `json:"player"`
	Dealer []Card `json:"dealer"`
	Result Result `json:"result,omitempty"`

	settlement *model.Settlement
}

// Detail is the presentation payload for a resolved hand.
type Detail struct {
	Player      []Card `json:"player"`
	Dealer      []Card `json:"dealer"`
	PlayerTotal int    `json:"player_total"`
	DealerTotal int    `json:"dealer_total"`
	Mode        Mode   `json:"mode"`
	Result      Result `json:"result"`
}

// Deal starts a hand: shuffles a fresh shoe, deals two cards each, and checks
// naturals. A dealer natural beats everything, including a player natural.
// If either side has a natural the table comes back already resolved.
func Deal(bet int64, mode Mode, rng game.RNG) (*Table, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeEasy
	}
	return dealFrom(NewShoe(rng), bet, mode), nil
}

// dealFrom runs the opening deal against an already-shuffled shoe.
func dealFrom(shoe []Card, bet int64, mode Mode) *Table {
	t := &Table{
		Bet:   bet,
		Mode:  mode,
		State: StatePlayerTurn,
		Shoe:  shoe,
	}
	t.Player = append(t.Player, t.draw(), t.draw())
	t.Dealer = append(t.Dealer, t.draw(), t.draw())

	switch {
	case IsNatural(t.Dealer):
		t.resolve(ResultDealerBlackjack)
	case IsNatural(t.Player):
		t.resolve(ResultBlackjack)
	}
	return t
}

func (t *Table) draw() Card {
	c := t.Shoe[len(t.Shoe)-1]
	t.Shoe = t.Shoe[:len(t.Shoe)-1]
	return c
}

// Resolved reports whether the hand has reached its terminal state.
func (t *Table) Resolved() bool {
	return t.State == StateResolved
}

// Hit draws one card for the player. Going over 21 busts immediately;
// landing exactly on 21 forces a stand and plays out the dealer.
func (t *Table) Hit() error {
	if t.Resolved() {
		return ErrHandResolved
	}
	t.Player = append(t.Player, t.draw())

	switch total := HandTotal(t.Player); {
	case total > 21:
		t.resolve(ResultBust)
	case total == 21:
		t.playDealer()
	}
	return nil
}

// Stand ends the player's turn and plays out the dealer.
func (t *Table) Stand() error {
	if t.Resolved() {
		return ErrHandResolved
	}
	t.playDealer()
	return nil
}

// Forfeit resolves an abandoned hand as a loss of the wager. Used by the
// session layer when a hand times out, so no wager is left uncommitted.
func (t *Table) Forfeit() {
	if !t.Resolved() {
		t.resolve(ResultForfeit)
	}
}

// playDealer draws the dealer to a total of 17 or higher and compares hands.
// The dealer has no choices; given the shoe this is deterministic.
func (t *Table) playDealer() {
	for HandTotal(t.Dealer) < 17 {
		t.Dealer = append(t.Dealer, t.draw())
	}

	dealer := HandTotal(t.Dealer)
	player := HandTotal(t.Player)
	switch {
	case dealer > 21:
		t.resolve(ResultDealerBust)
	case player > dealer:
		t.resolve(ResultPlayerWins)
	case player == dealer:
		t.resolve(ResultPush)
	default:
		t.resolve(ResultDealerWins)
	}
}

// winnings applies the mode multiplier to the wager: 3:2 in easy mode, 2:1 in
// hard mode, truncated toward zero.
func (t *Table) winnings() int64 {
	if t.Mode == ModeHard {
		return t.Bet * 2
	}
	return t.Bet * 3 / 2
}

func (t *Table) resolve(result Result) {
	t.State = StateResolved
	t.Result = result

	s := &model.Settlement{
		Detail: Detail{
			Player:      t.Player,
			Dealer:      t.Dealer,
			PlayerTotal: HandTotal(t.Player),
			DealerTotal: HandTotal(t.Dealer),
			Mode:        t.Mode,
			Result:      result,
		},
	}
	switch result {
	case ResultBlackjack, ResultDealerBust, ResultPlayerWins:
		s.Outcome = model.OutcomeWin
		s.CashDelta = t.winnings()
		s.TotalWonDelta = t.winnings()
		s.TotalBetDelta = t.Bet
		s.XPAward = game.WinXP
	case ResultPush:
		s.Outcome = model.OutcomePush
	default:
		s.Outcome = model.OutcomeLoss
		s.CashDelta = -t.Bet
		s.TotalBetDelta = t.Bet
	}
	t.settlement = s
}

// Settlement returns the hand's settlement once resolved.
func (t *Table) Settlement() (*model.Settlement, bool) {
	if !t.Resolved() {
		return nil, false
	}
	return t.settlement, true
}
