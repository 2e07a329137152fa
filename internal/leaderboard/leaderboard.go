// Package leaderboard ranks players by cash, level, or wins over the full
// set of ledger records. Rankings are computed on demand rather than
// maintained incrementally; a settlement that changes a player's standing is
// visible on the next call.
package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"gamble-bot/internal/ledger"
	"gamble-bot/internal/model"
)

// Metric selects the field players are ranked by.
type Metric string

const (
	MetricCash  Metric = "cash"
	MetricLevel Metric = "level"
	MetricWins  Metric = "wins"
)

// ParseMetric validates a user-supplied metric name. Empty defaults to cash.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCash, MetricLevel, MetricWins:
		return Metric(s), nil
	case "":
		return MetricCash, nil
	}
	return "", fmt.Errorf("unknown leaderboard metric %q", s)
}

// Scope filters which players are eligible for a ranking. A nil scope
// includes everyone; a guild-membership check is the typical non-nil case.
type Scope func(userID string) bool

// Entry is one ranked row.
type Entry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Value  int64  `json:"value"`
}

// Board computes rankings from ledger state.
type Board struct {
	ledger *ledger.Ledger
}

// New creates a Board over the given ledger.
func New(l *ledger.Ledger) *Board {
	return &Board{ledger: l}
}

// Rank returns up to limit entries ordered by the metric descending. Players
// with equal values are ordered by ascending user id so rankings are stable
// across calls. A limit of 0 or less returns all eligible players.
func (b *Board) Rank(ctx context.Context, metric Metric, scope Scope, limit int) ([]Entry, error) {
	records, err := b.ledger.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	eligible := records[:0]
	for _, rec := range records {
		if scope == nil || scope(rec.UserID) {
			eligible = append(eligible, rec)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		vi, vj := value(eligible[i], metric), value(eligible[j], metric)
		if vi != vj {
			return vi > vj
		}
		return eligible[i].UserID < eligible[j].UserID
	})

	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}

	entries := make([]Entry, len(eligible))
	for i, rec := range eligible {
		entries[i] = Entry{Rank: i + 1, UserID: rec.UserID, Value: value(rec, metric)}
	}
	return entries, nil
}

func value(rec *model.PlayerRecord, metric Metric) int64 {
	switch metric {
	case MetricLevel:
		return rec.Level
	case MetricWins:
		return rec.Wins
	default:
		return rec.Cash
	}
}
