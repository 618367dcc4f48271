package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	"github.com/itec-institute/portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialLookup = (*StubLookup)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
)

// StubLookup resolves credentials against a fixed map keyed by "email:password".
// AuthenticateFunc, when set, overrides the map entirely.
type StubLookup struct {
	AuthenticateFunc func(ctx context.Context, identifier, secret string) (domainauth.UserRecord, bool, error)

	Users map[string]domainauth.UserRecord

	mu    sync.Mutex
	calls int
}

// NewStubLookup returns a lookup seeded with one user per enumerated role.
// Every seeded password is "secret123".
func NewStubLookup() *StubLookup {
	users := make(map[string]domainauth.UserRecord)
	for _, r := range domainauth.Roles() {
		email := string(r) + "@itec.com"
		users[email+":secret123"] = domainauth.UserRecord{
			Email:        email,
			Role:         r,
			Name:         strings.ToUpper(string(r[:1])) + string(r[1:]),
			RouteSegment: string(r),
		}
	}
	return &StubLookup{Users: users}
}

func (s *StubLookup) Authenticate(ctx context.Context, identifier, secret string) (domainauth.UserRecord, bool, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.AuthenticateFunc != nil {
		return s.AuthenticateFunc(ctx, identifier, secret)
	}
	rec, ok := s.Users[identifier+":"+secret]
	return rec, ok, nil
}

// Calls returns how many times Authenticate ran.
func (s *StubLookup) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MemorySessionStore is an in-memory session store for unit tests.
// It performs no expiry handling so tests can observe expired sessions directly.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
