package testutil

import (
	"time"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

// SessionBuilder assembles sessions for tests with sensible defaults.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession starts a builder for an idle, anonymous session expiring in one hour.
func NewSession(id string) *SessionBuilder {
	return &SessionBuilder{sess: domainauth.NewSession(id, time.Now().Add(time.Hour))}
}

// WithUser marks the session as authenticated for the given role.
func (b *SessionBuilder) WithUser(role domainauth.Role, email, name string) *SessionBuilder {
	b.sess.Authenticate(domainauth.UserIdentity{Role: role, Email: email, Name: name})
	b.sess.State = domainauth.StateAuthenticated
	return b
}

// Submitting puts the session in flight.
func (b *SessionBuilder) Submitting() *SessionBuilder {
	b.sess.State = domainauth.StateSubmitting
	b.sess.Loading = true
	return b
}

// ExpiresAt overrides the expiry.
func (b *SessionBuilder) ExpiresAt(t time.Time) *SessionBuilder {
	b.sess.ExpiresAt = t
	return b
}

// WithFlash queues notifications.
func (b *SessionBuilder) WithFlash(n ...domainauth.Notification) *SessionBuilder {
	b.sess.Flash = append(b.sess.Flash, n...)
	return b
}

// Build returns the assembled session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}
