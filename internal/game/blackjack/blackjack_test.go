package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamble-bot/internal/game"
	"gamble-bot/internal/model"
)

// shoeOf builds a shoe that deals the given cards in order. Cards are drawn
// from the back of the shoe, so the draw order is reversed here. The opening
// deal consumes player, player, dealer, dealer.
func shoeOf(ranks ...string) []Card {
	shoe := make([]Card, 0, len(ranks))
	for i := len(ranks) - 1; i >= 0; i-- {
		shoe = append(shoe, card(ranks[i]))
	}
	return shoe
}

func TestDealPlayerNatural(t *testing.T) {
	tbl := dealFrom(shoeOf("A", "K", "9", "7"), 100, ModeEasy)

	require.True(t, tbl.Resolved())
	assert.Equal(t, ResultBlackjack, tbl.Result)

	s, ok := tbl.Settlement()
	require.True(t, ok)
	assert.Equal(t, model.OutcomeWin, s.Outcome)
	assert.Equal(t, int64(150), s.CashDelta) // 3:2 in easy mode
	assert.Equal(t, int64(game.WinXP), s.XPAward)
}

func TestDealPlayerNaturalHardMode(t *testing.T) {
	tbl := dealFrom(shoeOf("A", "K", "9", "7"), 100, ModeHard)

	s, ok := tbl.Settlement()
	require.True(t, ok)
	assert.Equal(t, int64(200), s.CashDelta) // 2:1 in hard mode
}

func TestDealDealerNaturalBeatsPlayerNatural(t *testing.T) {
	tbl := dealFrom(shoeOf("A", "K", "A", "Q"), 100, ModeEasy)

	require.True(t, tbl.Resolved())
	assert.Equal(t, ResultDealerBlackjack, tbl.Result)

	s, ok := tbl.Settlement()
	require.True(t, ok)
	assert.Equal(t, model.OutcomeLoss, s.Outcome)
	assert.Equal(t, int64(-100), s.CashDelta)
}

func TestDealContinuesWithoutNaturals(t *testing.T) {
	tbl := dealFrom(shoeOf("10", "9", "10", "8"), 100, ModeEasy)

	assert.False(t, tbl.Resolved())
	assert.Equal(t, StatePlayerTurn, tbl.State)
	_, ok := tbl.Settlement()
	assert.False(t, ok)
}

func TestHitBust(t *testing.T) {
	tbl := dealFrom(shoeOf("10", "9", "10", "8", "5"), 100, ModeEasy)

	require.NoError(t, tbl.Hit())
	require.True(t, tbl.Resolved())
	assert.Equal(t, ResultBust, tbl.Result)

	s, _ := tbl.Settlement()
	assert.Equal(t, model.OutcomeLoss, s.Outcome)
	assert.Equal(t, int64(-100), s.CashDelta)
	assert.Equal(t, int64(100), s.TotalBetDelta)
}

func TestHitToTwentyOneForcesStand(t *testing.T) {
	// Player 10+9 hits a 2 for 21; dealer 10+8 stands on 18 and loses.
	tbl := dealFrom(shoeOf("10", "9", "10", "8", "2"), 100, ModeEasy)

	require.NoError(t, tbl.Hit())
	require.True(t, tbl.Resolved())
	assert.Equal(t, ResultPlayerWins, tbl.Result)

	s, _ := tbl.Settlement()
	assert.Equal(t, model.OutcomeWin, s.Outcome)
	assert.Equal(t, int64(150), s.CashDelta)
}

func TestStandDealerDrawsToSeventeen(t *testing.T) {
	// Dealer starts at 10+2 and must draw the 5 (17), then stop and lose
	// to the player's 19.
	tbl := dealFrom(shoeOf("10", "9", "10", "2", "5"), 100, ModeEasy)

	require.NoError(t, tbl.Stand())
	require.True(t, tbl.Resolved())
	assert.Equal(t, ResultPlayerWins, tbl.Result)
	assert.Len(t, tbl.Dealer, 3)
	assert.Equal(t, 17, HandTotal(tbl.Dealer))
}

func TestStandDealerStandsOnSoftSeventeen(t *testing.T) {
	// Dealer A+6 is a soft 17 and takes no card.
	tbl := dealFrom(shoeOf("10", "9", "A", "6", "K"), 100, ModeEasy)

	require.NoError(t, tbl.Stand())
	assert.Len(t, tbl.Dealer, 2)
	assert.Equal(t, ResultPlayerWins, tbl.Result)
}

func TestStandDealerBust(t *testing.T) {
	// Dealer 10+6 draws the K and busts; the win pays the mode multiplier.
	tbl := dealFrom(shoeOf("10", "9", "10", "6", "K"), 100, ModeHard)

	require.NoError(t, tbl.Stand())
	assert.Equal(t, ResultDealerBust, tbl.Result)

	s, _ := tbl.Settlement()
	assert.Equal(t, model.OutcomeWin, s.Outcome)
	assert.Equal(t, int64(200), s.CashDelta)
}

func TestStandPush(t *testing.T) {
	tbl := dealFrom(shoeOf("10", "9", "10", "9"), 100, ModeEasy)

	require.NoError(t, tbl.Stand())
	assert.Equal(t, ResultPush, tbl.Result)

	s, _ := tbl.Settlement()
	assert.Equal(t, model.OutcomePush, s.Outcome)
	assert.Zero(t, s.CashDelta)
	assert.Zero(t, s.XPAward)
	assert.Zero(t, s.TotalBetDelta)
}

func TestStandDealerWins(t *testing.T) {
	tbl := dealFrom(shoeOf("10", "8", "10", "9"), 100, ModeEasy)

	require.NoError(t, tbl.Stand())
	assert.Equal(t, ResultDealerWins, tbl.Result)

	s, _ := tbl.Settlement()
	assert.Equal(t, model.OutcomeLoss, s.Outcome)
	assert.Equal(t, int64(-100), s.CashDelta)
}

func TestForfeit(t *testing.T) {
	tbl := dealFrom(shoeOf("10", "9", "10", "8"), 100, ModeEasy)

	tbl.Forfeit()
	require.True(t, tbl.Resolved())
	assert.Equal(t, ResultForfeit, tbl.Result)

	s, _ := tbl.Settlement()
	assert.Equal(t, model.OutcomeLoss, s.Outcome)
	assert.Equal(t, int64(-100), s.CashDelta)

	// Forfeiting twice is a no-op.
	tbl.Forfeit()
	assert.Equal(t, ResultForfeit, tbl.Result)
}

func TestActionsAfterResolution(t *testing.T) {
	tbl := dealFrom(shoeOf("A", "K", "9", "7"), 100, ModeEasy)

	assert.ErrorIs(t, tbl.Hit(), ErrHandResolved)
	assert.ErrorIs(t, tbl.Stand(), ErrHandResolved)
}

func TestDealDrawsFromExclusiveShoe(t *testing.T) {
	tbl, err := Deal(100, ModeEasy, game.NewRNG(7))
	require.NoError(t, err)
	assert.Len(t, tbl.Shoe, ShoeDecks*52-4)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeEasy, m)

	_, err = ParseMode("nightmare")
	assert.ErrorIs(t, err, game.ErrInvalidPrediction)
}
