// Package session holds the single authenticated-identity slot for the
// process. The manager is passed explicitly into services; subscriptions
// exist only so UI-boundary consumers can observe replacement.
package session

import (
	"sync"

	"barangayconnect/internal/client/models"
)

// Manager guards the current SessionUser. Replacement is wholesale and
// last-writer-wins; the mutex protects against torn reads only, matching the
// documented concurrency model.
type Manager struct {
	mu        sync.RWMutex
	current   *models.SessionUser
	nextSubID int
	subs      map[int]func(*models.SessionUser)
}

func NewManager() *Manager {
	return &Manager{subs: make(map[int]func(*models.SessionUser))}
}

// Current returns the live SessionUser, or nil when unauthenticated.
func (m *Manager) Current() *models.SessionUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set replaces the session wholesale and notifies subscribers.
func (m *Manager) Set(u *models.SessionUser) {
	m.mu.Lock()
	m.current = u
	subs := make([]func(*models.SessionUser), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

// Clear drops the session (logout).
func (m *Manager) Clear() {
	m.Set(nil)
}

// Subscribe registers fn to run on every session change and returns an
// unsubscribe function. Callbacks run synchronously on the mutating
// goroutine; keep them short.
func (m *Manager) Subscribe(fn func(*models.SessionUser)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}
