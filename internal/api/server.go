// Package api exposes the gambling engine over HTTP. Handlers translate
// requests into game resolutions and ledger settlements; all economy rules
// live below this layer.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamble-bot/internal/game"
	"gamble-bot/internal/leaderboard"
	"gamble-bot/internal/ledger"
	"gamble-bot/internal/reward"
	"gamble-bot/internal/session"
)

// ctxUserID is the gin context key the identity middleware sets.
const ctxUserID = "user_id"

// headerUserID carries the caller's platform user id. The gateway in front
// of this service authenticates the user and injects the header.
const headerUserID = "X-User-ID"

// Server wires the HTTP surface to the engine.
type Server struct {
	ledger   *ledger.Ledger
	board    *leaderboard.Board
	rewards  *reward.Service
	sessions *session.Manager
	registry *game.Registry
	rng      game.RNG
	limiter  *RateLimiter
	router   *gin.Engine
}

// NewServer builds the router. The limiter may be backed by a nil Redis
// client, which disables throttling.
func NewServer(
	l *ledger.Ledger,
	board *leaderboard.Board,
	rewards *reward.Service,
	sessions *session.Manager,
	registry *game.Registry,
	rng game.RNG,
	limiter *RateLimiter,
) *Server {
	s := &Server{
		ledger:   l,
		board:    board,
		rewards:  rewards,
		sessions: sessions,
		registry: registry,
		rng:      rng,
		limiter:  limiter,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	v1.GET("/games", s.handleListGames)
	v1.GET("/games/:kind", s.handleGetGame)
	v1.GET("/leaderboard", s.handleLeaderboard)

	user := v1.Group("")
	user.Use(requireUser())

	user.GET("/profile", s.handleProfile)
	user.POST("/rewards/daily", s.handleDaily)
	user.POST("/rewards/work", s.handleWork)

	play := user.Group("/play")
	play.Use(s.limiter.Middleware("play", 30, time.Minute))
	play.POST("/coinflip", s.handleCoinflip)
	play.POST("/dice", s.handleDice)
	play.POST("/slots", s.handleSlots)
	play.POST("/roulette", s.handleRoulette)
	play.POST("/race", s.handleRace)

	bj := user.Group("/blackjack")
	bj.Use(s.limiter.Middleware("blackjack", 60, time.Minute))
	bj.POST("", s.handleBlackjackDeal)
	bj.GET("/:id", s.handleBlackjackGet)
	bj.POST("/:id", s.handleBlackjackAct)

	return r
}

// requireUser rejects requests without a user identity.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(headerUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + headerUserID + " header"})
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}
