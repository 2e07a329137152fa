// Package main is the entry point for the gambling engine HTTP service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gamble-bot/internal/api"
	"gamble-bot/internal/config"
	"gamble-bot/internal/game"
	"gamble-bot/internal/leaderboard"
	"gamble-bot/internal/ledger"
	"gamble-bot/internal/model"
	"gamble-bot/internal/pkg/db"
	"gamble-bot/internal/reward"
	"gamble-bot/internal/session"
	"gamble-bot/internal/store"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the ledger's backing store
	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer cleanup()

	ledg := ledger.New(st)
	board := leaderboard.New(ledg)

	rng := game.NewLockedRNG(time.Now().UnixNano())
	rewards := reward.New(ledg, cfg.Economy, rng)

	// Timed-out blackjack hands forfeit their wager through the ledger
	sessions := session.NewManager(cfg.Session.TTL, func(userID string, s *model.Settlement) {
		if _, _, err := ledg.Apply(context.Background(), userID, s); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to settle forfeited hand")
		}
	})
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	registry := registerGames()
	log.Info().Int("game_count", registry.Count()).Msg("Games registered")

	// Optional Redis-backed rate limiting
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	}
	limiter := api.NewRateLimiter(redisClient)

	server := api.NewServer(ledg, board, rewards, sessions, registry, rng, limiter)
	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.Handler(),
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.Server.ListenAddr).Msg("HTTP server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}

// openStore opens the configured storage backend and returns it with its
// cleanup function.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "postgres":
		pool, err := db.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(ctx, pool.Pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store.NewPostgres(pool.Pool), pool.Close, nil
	case "json", "":
		s, err := store.NewJSONFile(cfg.Storage.JSONPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Storage.JSONPath).Msg("Using JSON file store")
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, errors.New("unknown storage backend: " + cfg.Storage.Backend)
	}
}

// registerGames catalogs every playable game for the /games endpoint.
func registerGames() *game.Registry {
	registry := game.NewRegistry()
	for _, d := range []game.Descriptor{
		{Kind: "coinflip", Name: "Coin Flip", Description: "Call heads or tails, win 1:1."},
		{Kind: "dice", Name: "Dice", Description: "Predict the face on a d4 through d100, win sides:1."},
		{Kind: "slots", Name: "Slots", Description: "Three weighted reels; pairs and triples pay by symbol."},
		{Kind: "roulette", Name: "Roulette", Description: "American wheel with 0 and 00; numbers, colors, halves, dozens."},
		{Kind: "race", Name: "Animal Race", Description: "Back a racer in a turtle, dog, horse or dinosaur race."},
		{Kind: "blackjack", Name: "Blackjack", Description: "Six-deck blackjack; easy mode pays 3:2, hard mode 2:1."},
	} {
		if err := registry.Register(d); err != nil {
			log.Fatal().Err(err).Str("kind", d.Kind).Msg("Failed to register game")
		}
	}
	return registry
}
