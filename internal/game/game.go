// Package game holds the pieces shared by every settlement resolver: the
// injected randomness source, the common error taxonomy, and the descriptor
// registry the presentation layer uses to enumerate games.
//
// Each resolver lives in its own subpackage and is a pure function of
// (bet, params, rng) -> *model.Settlement. Resolvers never touch the ledger;
// the caller applies the returned settlement.
package game

import "errors"

// WinXP is the experience awarded for winning any game.
const WinXP = 100

// Validation errors shared by the resolvers. Both are rejected before any
// randomness is drawn, so a failed call has no partial effects.
var (
	ErrInvalidBet        = errors.New("bet must be positive and within available cash")
	ErrInvalidPrediction = errors.New("prediction is outside the game's domain")
)

// ValidateBet enforces the one rule common to every game: the wager must be
// positive and must not exceed the player's current cash, so the maximum
// possible loss is exactly the wager.
func ValidateBet(bet, availableCash int64) error {
	if bet <= 0 || bet > availableCash {
		return ErrInvalidBet
	}
	return nil
}
