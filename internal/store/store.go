// Package store provides keyed persistence for player records behind a
// backend-agnostic interface, so the ledger never knows whether it is writing
// to a flat JSON file or a database.
package store

import (
	"context"
	"errors"

	"gamble-bot/internal/model"
)

// ErrNotFound is returned when no record exists for a user id.
var ErrNotFound = errors.New("player record not found")

// Store is the contract the ledger writes through. Implementations must
// round-trip every PlayerRecord field exactly; the nullable timestamps
// deserialize as nil when absent.
type Store interface {
	// Get returns the record for a user id, or ErrNotFound.
	Get(ctx context.Context, userID string) (*model.PlayerRecord, error)
	// Upsert inserts or replaces the record keyed by its UserID.
	Upsert(ctx context.Context, rec *model.PlayerRecord) error
	// All returns every stored record in unspecified order.
	All(ctx context.Context) ([]*model.PlayerRecord, error)
	// Close releases any underlying resources.
	Close() error
}
