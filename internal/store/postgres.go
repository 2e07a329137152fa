package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamble-bot/internal/model"
)

// Postgres stores one row per player in the players table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store over an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the players table if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			user_id VARCHAR(32) PRIMARY KEY,
			cash BIGINT NOT NULL DEFAULT 1000,
			level BIGINT NOT NULL DEFAULT 0,
			xp BIGINT NOT NULL DEFAULT 0,
			wins BIGINT NOT NULL DEFAULT 0,
			losses BIGINT NOT NULL DEFAULT 0,
			total_bet BIGINT NOT NULL DEFAULT 0,
			total_won BIGINT NOT NULL DEFAULT 0,
			last_daily TIMESTAMPTZ,
			last_work TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_players_cash ON players(cash DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create players table: %w", err)
	}
	return nil
}

const playerColumns = `user_id, cash, level, xp, wins, losses, total_bet, total_won, last_daily, last_work`

func scanPlayer(row pgx.Row) (*model.PlayerRecord, error) {
	var rec model.PlayerRecord
	err := row.Scan(
		&rec.UserID,
		&rec.Cash,
		&rec.Level,
		&rec.XP,
		&rec.Wins,
		&rec.Losses,
		&rec.TotalBet,
		&rec.TotalWon,
		&rec.LastDaily,
		&rec.LastWork,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns the record for a user id, or ErrNotFound.
func (s *Postgres) Get(ctx context.Context, userID string) (*model.PlayerRecord, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE user_id = $1`

	rec, err := scanPlayer(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return rec, nil
}

// Upsert inserts or replaces the record keyed by user id.
func (s *Postgres) Upsert(ctx context.Context, rec *model.PlayerRecord) error {
	const query = `
		INSERT INTO players (user_id, cash, level, xp, wins, losses, total_bet, total_won, last_daily, last_work, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			cash = EXCLUDED.cash,
			level = EXCLUDED.level,
			xp = EXCLUDED.xp,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			total_bet = EXCLUDED.total_bet,
			total_won = EXCLUDED.total_won,
			last_daily = EXCLUDED.last_daily,
			last_work = EXCLUDED.last_work,
			updated_at = NOW()
	`

	_, err := s.pool.Exec(ctx, query,
		rec.UserID, rec.Cash, rec.Level, rec.XP, rec.Wins, rec.Losses,
		rec.TotalBet, rec.TotalWon, rec.LastDaily, rec.LastWork,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

// All returns every stored record.
func (s *Postgres) All(ctx context.Context) ([]*model.PlayerRecord, error) {
	query := `SELECT ` + playerColumns + ` FROM players`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var out []*model.PlayerRecord
	for rows.Next() {
		rec, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return out, nil
}

// Close is a no-op; the pool is owned by the caller.
func (s *Postgres) Close() error { return nil }
