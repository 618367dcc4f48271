package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

// CredentialLookup resolves an identifier/secret pair to a user record.
// Matching semantics (case, trimming) are owned by the implementation.
type CredentialLookup interface {
	// Authenticate returns the matched record and true, or a zero record and false when nothing matches.
	// A non-nil error is a lookup fault, distinct from a non-match.
	Authenticate(ctx context.Context, identifier, secret string) (domainauth.UserRecord, bool, error)
}

// ErrSessionNotFound is returned (possibly wrapped) by SessionStore.Get for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves user sessions.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionSweeper is implemented by stores that need explicit eviction of expired sessions.
type SessionSweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}
