package memory

// Package memory provides process-local adapters for single-replica deployments and tests.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	"github.com/itec-institute/portal/internal/ports"
)

// SessionStore keeps sessions in a map guarded by a RWMutex.
// Sessions are copied on the way in and out so callers never share Flash or User storage.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
	now      func() time.Time
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domainauth.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if sess.Expired(s.now()) {
		return errors.New("session is expired")
	}

	s.mu.Lock()
	s.sessions[sess.ID] = clone(sess)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	if sess.Expired(s.now()) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Save may have refreshed it.
		if cur, still := s.sessions[id]; still && cur.Expired(s.now()) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	return clone(sess), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Sweep removes every session expired at now and returns how many were removed.
func (s *SessionStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func clone(sess domainauth.Session) domainauth.Session {
	out := sess
	if sess.User != nil {
		u := *sess.User
		out.User = &u
	}
	if sess.Flash != nil {
		out.Flash = append([]domainauth.Notification(nil), sess.Flash...)
	}
	return out
}
