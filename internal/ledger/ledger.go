// Package ledger is the single authority over player balances. Every cash
// movement goes through it: game settlements, daily and work rewards, and
// lazily created starting balances. Mutations for one user are serialized by
// a per-user lock so concurrent settlements cannot lose updates.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gamble-bot/internal/model"
	"gamble-bot/internal/pkg/lock"
	"gamble-bot/internal/store"
)

// Ledger owns player records. Reads return copies; all writes funnel through
// Update so the per-user lock is always held.
type Ledger struct {
	store        store.Store
	locks        *lock.UserLock
	startingCash int64
}

// New creates a ledger over the given store.
func New(s store.Store) *Ledger {
	return &Ledger{
		store:        s,
		locks:        lock.NewUserLock(),
		startingCash: model.DefaultStartingCash,
	}
}

// GetOrCreate returns the player's record, lazily creating it with the
// starting balance on first touch. The created record is persisted so the
// user exists in leaderboards immediately.
func (l *Ledger) GetOrCreate(ctx context.Context, userID string) (*model.PlayerRecord, error) {
	rec, err := l.store.Get(ctx, userID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to load player %s: %w", userID, err)
	}

	err = l.locks.WithLock(userID, func() error {
		// Re-check under the lock; another goroutine may have created it.
		if existing, err := l.store.Get(ctx, userID); err == nil {
			rec = existing
			return nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		rec = model.NewPlayerRecord(userID)
		rec.Cash = l.startingCash
		if err := l.store.Upsert(ctx, rec); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to persist new player record")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player %s: %w", userID, err)
	}
	return rec, nil
}

// Update applies fn to the player's record under the per-user lock and
// persists the result. fn sees the current state and mutates it in place;
// returning an error aborts the write. A failed persist is logged and
// swallowed: availability over durability for a virtual-points economy.
func (l *Ledger) Update(ctx context.Context, userID string, fn func(rec *model.PlayerRecord) error) (*model.PlayerRecord, error) {
	var out *model.PlayerRecord
	err := l.locks.WithLock(userID, func() error {
		rec, err := l.store.Get(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			rec = model.NewPlayerRecord(userID)
			rec.Cash = l.startingCash
		} else if err != nil {
			return fmt.Errorf("failed to load player %s: %w", userID, err)
		}

		if err := fn(rec); err != nil {
			return err
		}

		if err := l.store.Upsert(ctx, rec); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to persist player record")
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Apply folds a settlement into the player's record: cash, win/loss counters,
// lifetime bet/won totals, and any XP award. It returns the updated record
// and whether the player leveled up.
func (l *Ledger) Apply(ctx context.Context, userID string, s *model.Settlement) (*model.PlayerRecord, bool, error) {
	leveled := false
	rec, err := l.Update(ctx, userID, func(rec *model.PlayerRecord) error {
		rec.Cash += s.CashDelta
		switch s.Outcome {
		case model.OutcomeWin:
			rec.Wins++
		case model.OutcomeLoss:
			rec.Losses++
		case model.OutcomePush:
			// Neither counter moves on a push.
		}
		rec.TotalBet += s.TotalBetDelta
		rec.TotalWon += s.TotalWonDelta
		if s.XPAward > 0 {
			leveled = AwardXP(rec, s.XPAward)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	log.Debug().
		Str("user_id", userID).
		Str("outcome", s.Outcome.String()).
		Int64("cash_delta", s.CashDelta).
		Int64("cash", rec.Cash).
		Bool("leveled_up", leveled).
		Msg("Settlement applied")

	return rec, leveled, nil
}

// All returns every player record.
func (l *Ledger) All(ctx context.Context) ([]*model.PlayerRecord, error) {
	return l.store.All(ctx)
}

// AwardXP adds XP to the record and recomputes the level. It reports whether
// the level increased.
func AwardXP(rec *model.PlayerRecord, amount int64) bool {
	rec.XP += amount
	newLevel := rec.XP / model.XPPerLevel
	if newLevel > rec.Level {
		rec.Level = newLevel
		return true
	}
	return false
}
