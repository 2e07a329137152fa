// Package session manages interactive blackjack hands between HTTP requests.
// Sessions live in process memory only: a table holds a shuffled shoe and no
// wager has been committed to the ledger until the hand resolves, so nothing
// is lost on restart beyond the hand in progress.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gamble-bot/internal/game"
	"gamble-bot/internal/game/blackjack"
	"gamble-bot/internal/model"
)

var (
	// ErrSessionNotFound is returned for unknown or already-resolved sessions.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotYourSession is returned when a user acts on another user's hand.
	ErrNotYourSession = errors.New("session belongs to another user")
	// ErrSessionActive is returned when a user already has a hand in progress.
	ErrSessionActive = errors.New("a hand is already in progress")
	// ErrInvalidAction is returned for unknown action names.
	ErrInvalidAction = errors.New("invalid action")
)

// Action is a player move against an open hand.
type Action string

const (
	ActionHit   Action = "hit"
	ActionStand Action = "stand"
)

// ParseAction validates a user-supplied action name.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionHit, ActionStand:
		return Action(s), nil
	}
	return "", ErrInvalidAction
}

// Session is one open blackjack hand.
type Session struct {
	ID        string
	UserID    string
	Table     *blackjack.Table
	CreatedAt time.Time
	deadline  time.Time
}

// ExpireFunc receives the forfeit settlement of a timed-out session so the
// caller can commit the lost wager to the ledger.
type ExpireFunc func(userID string, s *model.Settlement)

// Manager tracks open sessions, at most one per user, and forfeits hands
// that outlive the TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	byUser   map[string]string
	ttl      time.Duration
	onExpire ExpireFunc
}

// NewManager creates a Manager. onExpire may be nil if timed-out wagers
// should simply vanish, but in practice it is always the ledger apply.
func NewManager(ttl time.Duration, onExpire ExpireFunc) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		byUser:   make(map[string]string),
		ttl:      ttl,
		onExpire: onExpire,
	}
}

// Start deals a new hand for the user. If the opening deal resolves the hand
// on the spot (a natural either side), the session is returned but never
// stored; the caller settles it immediately.
func (m *Manager) Start(userID string, bet int64, mode blackjack.Mode, rng game.RNG) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byUser[userID]; ok {
		return nil, ErrSessionActive
	}

	table, err := blackjack.Deal(bet, mode, rng)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Table:     table,
		CreatedAt: time.Now(),
		deadline:  time.Now().Add(m.ttl),
	}
	if !table.Resolved() {
		m.sessions[sess.ID] = sess
		m.byUser[userID] = sess.ID
	}
	return sess, nil
}

// Act applies a player action to an open session. When the action resolves
// the hand the session is removed; the returned session carries the resolved
// table and its settlement.
func (m *Manager) Act(sessionID, userID string, action Action) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.UserID != userID {
		return nil, ErrNotYourSession
	}

	var err error
	switch action {
	case ActionHit:
		err = sess.Table.Hit()
	case ActionStand:
		err = sess.Table.Stand()
	default:
		return nil, ErrInvalidAction
	}
	if err != nil {
		return nil, err
	}

	sess.deadline = time.Now().Add(m.ttl)
	if sess.Table.Resolved() {
		m.remove(sess)
	}
	return sess, nil
}

// Get returns an open session by id, enforcing ownership.
func (m *Manager) Get(sessionID, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.UserID != userID {
		return nil, ErrNotYourSession
	}
	return sess, nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// remove deletes a session. Caller holds the lock.
func (m *Manager) remove(sess *Session) {
	delete(m.sessions, sess.ID)
	delete(m.byUser, sess.UserID)
}

// Sweep forfeits every session whose deadline passed, committing each lost
// wager through the expire hook. An abandoned hand is a loss, not a refund.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var expired []*Session
	for _, sess := range m.sessions {
		if now.After(sess.deadline) {
			expired = append(expired, sess)
		}
	}
	for _, sess := range expired {
		sess.Table.Forfeit()
		m.remove(sess)
	}
	m.mu.Unlock()

	for _, sess := range expired {
		log.Info().
			Str("session_id", sess.ID).
			Str("user_id", sess.UserID).
			Int64("bet", sess.Table.Bet).
			Msg("Blackjack session timed out, wager forfeited")
		if m.onExpire != nil {
			if s, ok := sess.Table.Settlement(); ok {
				m.onExpire(sess.UserID, s)
			}
		}
	}
	return len(expired)
}

// Run sweeps on the given interval until the context is canceled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
