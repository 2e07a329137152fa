// Package lock provides per-user mutual exclusion so that every mutating
// ledger operation for a given user id is serialized. Two concurrent
// settlements for the same user can otherwise race between the fetch and the
// write-back and lose an update.
package lock

import "sync"

// userMutex carries a reference count so entries can be removed from the map
// once the last holder releases them.
type userMutex struct {
	mu   sync.Mutex
	refs int
}

// UserLock is a keyed mutex over string user ids.
type UserLock struct {
	mu    sync.Mutex
	locks map[string]*userMutex
}

// NewUserLock creates an empty UserLock.
func NewUserLock() *UserLock {
	return &UserLock{locks: make(map[string]*userMutex)}
}

func (ul *UserLock) acquireRef(userID string) *userMutex {
	ul.mu.Lock()
	defer ul.mu.Unlock()
	m, ok := ul.locks[userID]
	if !ok {
		m = &userMutex{}
		ul.locks[userID] = m
	}
	m.refs++
	return m
}

func (ul *UserLock) releaseRef(userID string, m *userMutex) {
	ul.mu.Lock()
	defer ul.mu.Unlock()
	m.refs--
	if m.refs == 0 {
		delete(ul.locks, userID)
	}
}

// Lock acquires the mutex for a user, blocking until it is available.
func (ul *UserLock) Lock(userID string) {
	ul.acquireRef(userID).mu.Lock()
}

// Unlock releases the mutex for a user.
func (ul *UserLock) Unlock(userID string) {
	ul.mu.Lock()
	m, ok := ul.locks[userID]
	ul.mu.Unlock()
	if !ok {
		return
	}
	m.mu.Unlock()
	ul.releaseRef(userID, m)
}

// TryLock attempts to acquire the mutex without blocking.
func (ul *UserLock) TryLock(userID string) bool {
	m := ul.acquireRef(userID)
	if m.mu.TryLock() {
		return true
	}
	ul.releaseRef(userID, m)
	return false
}

// WithLock runs fn while holding the user's mutex.
func (ul *UserLock) WithLock(userID string, fn func() error) error {
	ul.Lock(userID)
	defer ul.Unlock(userID)
	return fn()
}
