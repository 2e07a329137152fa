package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gamble-bot/internal/bet"
	"gamble-bot/internal/game"
	"gamble-bot/internal/game/blackjack"
	"gamble-bot/internal/game/coinflip"
	"gamble-bot/internal/game/dice"
	"gamble-bot/internal/game/race"
	"gamble-bot/internal/game/roulette"
	"gamble-bot/internal/game/slots"
	"gamble-bot/internal/leaderboard"
	"gamble-bot/internal/model"
	"gamble-bot/internal/reward"
	"gamble-bot/internal/session"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": s.registry.List()})
}

func (s *Server) handleGetGame(c *gin.Context) {
	d, ok := s.registry.Get(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game kind"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleProfile(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	rec, err := s.ledger.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, playerView(rec))
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	metric, err := leaderboard.ParseMetric(c.Query("metric"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	entries, err := s.board.Rank(c.Request.Context(), metric, nil, limit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metric": metric, "entries": entries})
}

func (s *Server) handleDaily(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	claim, err := s.rewards.Daily(c.Request.Context(), userID)
	if errors.Is(err, reward.ErrDailyClaimed) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": claim.Amount, "player": playerView(claim.Record)})
}

func (s *Server) handleWork(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	claim, err := s.rewards.Work(c.Request.Context(), userID)
	if errors.Is(err, reward.ErrWorkCooldown) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": claim.Amount, "player": playerView(claim.Record)})
}

type coinflipRequest struct {
	Bet        string `json:"bet" binding:"required"`
	Prediction string `json:"prediction" binding:"required"`
}

func (s *Server) handleCoinflip(c *gin.Context) {
	var req coinflipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.play(c, req.Bet, func(wager int64) (*model.Settlement, error) {
		return coinflip.Resolve(wager, coinflip.Params{Prediction: coinflip.Side(req.Prediction)}, s.rng)
	})
}

type diceRequest struct {
	Bet        string `json:"bet" binding:"required"`
	Sides      int    `json:"sides" binding:"required"`
	Prediction int    `json:"prediction" binding:"required"`
}

func (s *Server) handleDice(c *gin.Context) {
	var req diceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.play(c, req.Bet, func(wager int64) (*model.Settlement, error) {
		return dice.Resolve(wager, dice.Params{Sides: req.Sides, Prediction: req.Prediction}, s.rng)
	})
}

type slotsRequest struct {
	Bet string `json:"bet" binding:"required"`
}

func (s *Server) handleSlots(c *gin.Context) {
	var req slotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.play(c, req.Bet, func(wager int64) (*model.Settlement, error) {
		return slots.Resolve(wager, s.rng)
	})
}

type rouletteRequest struct {
	Bet        string `json:"bet" binding:"required"`
	Prediction string `json:"prediction" binding:"required"`
}

func (s *Server) handleRoulette(c *gin.Context) {
	var req rouletteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.play(c, req.Bet, func(wager int64) (*model.Settlement, error) {
		return roulette.Resolve(wager, roulette.Params{Prediction: req.Prediction}, s.rng)
	})
}

type raceRequest struct {
	Bet        string `json:"bet" binding:"required"`
	Kind       string `json:"kind" binding:"required"`
	Prediction int    `json:"prediction" binding:"required"`
}

func (s *Server) handleRace(c *gin.Context) {
	var req raceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.play(c, req.Bet, func(wager int64) (*model.Settlement, error) {
		return race.Resolve(wager, race.Params{Kind: race.Kind(req.Kind), Prediction: req.Prediction}, s.rng)
	})
}

// play runs the shared settle-and-respond flow for the single-shot games:
// parse the wager against current cash, resolve, apply, respond.
func (s *Server) play(c *gin.Context, rawBet string, resolve func(wager int64) (*model.Settlement, error)) {
	userID := c.GetString(ctxUserID)
	ctx := c.Request.Context()

	rec, err := s.ledger.GetOrCreate(ctx, userID)
	if err != nil {
		internalError(c, err)
		return
	}

	wager := bet.Parse(rawBet, rec.Cash)
	if err := game.ValidateBet(wager, rec.Cash); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement, err := resolve(wager)
	if err != nil {
		if errors.Is(err, game.ErrInvalidPrediction) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err)
		return
	}

	rec, leveled, err := s.ledger.Apply(ctx, userID, settlement)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome":    settlement.Outcome.String(),
		"cash_delta": settlement.CashDelta,
		"detail":     settlement.Detail,
		"leveled_up": leveled,
		"player":     playerView(rec),
	})
}

type blackjackDealRequest struct {
	Bet  string `json:"bet" binding:"required"`
	Mode string `json:"mode"`
}

func (s *Server) handleBlackjackDeal(c *gin.Context) {
	var req blackjackDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := c.GetString(ctxUserID)
	ctx := c.Request.Context()

	mode, err := blackjack.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := s.ledger.GetOrCreate(ctx, userID)
	if err != nil {
		internalError(c, err)
		return
	}

	wager := bet.Parse(req.Bet, rec.Cash)
	if err := game.ValidateBet(wager, rec.Cash); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := s.sessions.Start(userID, wager, mode, s.rng)
	if errors.Is(err, session.ErrSessionActive) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	s.respondBlackjack(c, userID, sess)
}

// handleBlackjackGet lets a client re-fetch an open hand, e.g. after losing
// the deal response. Resolved hands are gone; they settle on the final action.
func (s *Server) handleBlackjackGet(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	sess, err := s.sessions.Get(c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, session.ErrNotYourSession):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			internalError(c, err)
		}
		return
	}

	s.respondBlackjack(c, userID, sess)
}

type blackjackActRequest struct {
	Action string `json:"action" binding:"required"`
}

func (s *Server) handleBlackjackAct(c *gin.Context) {
	var req blackjackActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := c.GetString(ctxUserID)

	action, err := session.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := s.sessions.Act(c.Param("id"), userID, action)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, session.ErrNotYourSession):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	s.respondBlackjack(c, userID, sess)
}

// respondBlackjack renders an open or resolved hand. A resolved hand is
// settled against the ledger first; an open hand hides the dealer's hole
// card.
func (s *Server) respondBlackjack(c *gin.Context, userID string, sess *session.Session) {
	table := sess.Table

	if !table.Resolved() {
		c.JSON(http.StatusOK, gin.H{
			"session_id":   sess.ID,
			"state":        table.State,
			"bet":          table.Bet,
			"mode":         table.Mode,
			"player":       table.Player,
			"player_total": blackjack.HandTotal(table.Player),
			"dealer_up":    table.Dealer[0],
		})
		return
	}

	settlement, _ := table.Settlement()
	rec, leveled, err := s.ledger.Apply(c.Request.Context(), userID, settlement)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"state":      table.State,
		"result":     table.Result,
		"outcome":    settlement.Outcome.String(),
		"cash_delta": settlement.CashDelta,
		"detail":     settlement.Detail,
		"leveled_up": leveled,
		"player":     playerView(rec),
	})
}

// playerView is the profile payload; the id is explicit because the record
// hides it from its own JSON form.
func playerView(rec *model.PlayerRecord) gin.H {
	return gin.H{
		"user_id":    rec.UserID,
		"cash":       rec.Cash,
		"level":      rec.Level,
		"xp":         rec.XP,
		"wins":       rec.Wins,
		"losses":     rec.Losses,
		"total_bet":  rec.TotalBet,
		"total_won":  rec.TotalWon,
		"last_daily": rec.LastDaily,
		"last_work":  rec.LastWork,
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
}

func internalError(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
