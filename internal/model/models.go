// Package model defines the data models shared across the gambling engine.
package model

import "time"

// DefaultStartingCash is the balance a player record is created with.
const DefaultStartingCash = 1000

// XPPerLevel is the amount of XP that makes up one level.
// Level is always derived as xp / XPPerLevel, never stored independently.
const XPPerLevel = 1000

// PlayerRecord is one user's economy state, keyed by the platform-assigned
// user id in string form. JSON field names match the flat document layout
// the storage layer persists.
type PlayerRecord struct {
	UserID    string     `json:"-" db:"user_id"`
	Cash      int64      `json:"cash" db:"cash"`
	Level     int64      `json:"level" db:"level"`
	XP        int64      `json:"xp" db:"xp"`
	Wins      int64      `json:"wins" db:"wins"`
	Losses    int64      `json:"losses" db:"losses"`
	TotalBet  int64      `json:"total_bet" db:"total_bet"`
	TotalWon  int64      `json:"total_won" db:"total_won"`
	LastDaily *time.Time `json:"last_daily" db:"last_daily"`
	LastWork  *time.Time `json:"last_work" db:"last_work"`
}

// NewPlayerRecord creates a fresh record with default starting values.
func NewPlayerRecord(userID string) *PlayerRecord {
	return &PlayerRecord{
		UserID: userID,
		Cash:   DefaultStartingCash,
	}
}

// Clone returns a deep copy so callers can mutate without aliasing the
// store's in-memory state.
func (r *PlayerRecord) Clone() *PlayerRecord {
	cp := *r
	if r.LastDaily != nil {
		t := *r.LastDaily
		cp.LastDaily = &t
	}
	if r.LastWork != nil {
		t := *r.LastWork
		cp.LastWork = &t
	}
	return &cp
}

// Outcome classifies a resolved game.
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeWin
	OutcomePush
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomePush:
		return "push"
	default:
		return "loss"
	}
}

// Settlement is the computed result of one resolved game. It is transient:
// the ledger applies it to a PlayerRecord and discards it.
type Settlement struct {
	// CashDelta is the signed change to the player's cash. A loss is always
	// exactly -bet; a push is 0.
	CashDelta int64   `json:"cash_delta"`
	Outcome   Outcome `json:"outcome"`
	// XPAward is granted only on a win.
	XPAward int64 `json:"xp_award"`
	// TotalBetDelta and TotalWonDelta accumulate into the lifetime counters.
	TotalBetDelta int64 `json:"total_bet_delta"`
	TotalWonDelta int64 `json:"total_won_delta"`
	// Detail carries a game-specific payload (dice faces, reel symbols,
	// hands) for the presentation layer. Opaque to the ledger.
	Detail any `json:"detail,omitempty"`
}
