// Package reward hands out the non-gambling income streams: the once-per-day
// claim and the cooldown-gated work payout. Both scale with the player's
// level and both go through the ledger so the per-user lock covers the
// read-check-write.
package reward

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"gamble-bot/internal/config"
	"gamble-bot/internal/game"
	"gamble-bot/internal/ledger"
	"gamble-bot/internal/model"
)

var (
	// ErrDailyClaimed is returned when the daily was already claimed today.
	ErrDailyClaimed = errors.New("daily reward already claimed today")
	// ErrWorkCooldown is returned while the work cooldown is still running.
	ErrWorkCooldown = errors.New("work cooldown has not elapsed")
)

// Claim is a granted reward.
type Claim struct {
	Amount int64               `json:"amount"`
	Record *model.PlayerRecord `json:"record"`
}

// Service grants daily and work rewards.
type Service struct {
	ledger *ledger.Ledger
	cfg    config.EconomyConfig
	rng    game.RNG
	now    func() time.Time
}

// New creates a reward service. The clock is injectable for tests.
func New(l *ledger.Ledger, cfg config.EconomyConfig, rng game.RNG) *Service {
	return &Service{ledger: l, cfg: cfg, rng: rng, now: time.Now}
}

// Daily grants the daily reward: base plus a per-level bonus. The gate is the
// calendar date, not a 24-hour window, so a claim at 23:59 unlocks again at
// midnight.
func (s *Service) Daily(ctx context.Context, userID string) (*Claim, error) {
	now := s.now()
	var amount int64

	rec, err := s.ledger.Update(ctx, userID, func(rec *model.PlayerRecord) error {
		if rec.LastDaily != nil && sameDate(*rec.LastDaily, now) {
			return ErrDailyClaimed
		}
		amount = s.cfg.DailyBaseReward + s.cfg.DailyLevelBonus*rec.Level
		rec.Cash += amount
		t := now
		rec.LastDaily = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID).Int64("amount", amount).Msg("Daily reward claimed")
	return &Claim{Amount: amount, Record: rec}, nil
}

// Work grants a random payout in [min, max] plus a per-level bonus, gated by
// the work cooldown.
func (s *Service) Work(ctx context.Context, userID string) (*Claim, error) {
	now := s.now()
	var amount int64

	rec, err := s.ledger.Update(ctx, userID, func(rec *model.PlayerRecord) error {
		if rec.LastWork != nil && now.Sub(*rec.LastWork) < s.cfg.WorkCooldown {
			return ErrWorkCooldown
		}
		span := s.cfg.WorkMaxReward - s.cfg.WorkMinReward
		amount = s.cfg.WorkMinReward + s.cfg.WorkLevelBonus*rec.Level
		if span > 0 {
			amount += int64(s.rng.IntN(int(span) + 1))
		}
		rec.Cash += amount
		t := now
		rec.LastWork = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID).Int64("amount", amount).Msg("Work reward granted")
	return &Claim{Amount: amount, Record: rec}, nil
}

// WorkRemaining returns how long until the user can work again. Zero means
// work is available now.
func (s *Service) WorkRemaining(rec *model.PlayerRecord) time.Duration {
	if rec.LastWork == nil {
		return 0
	}
	remaining := s.cfg.WorkCooldown - s.now().Sub(*rec.LastWork)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// sameDate reports whether two instants fall on the same calendar day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
