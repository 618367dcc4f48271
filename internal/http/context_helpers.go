package httpx

import (
	"context"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session stored by the auth middleware and whether one was present.
func GetSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// IsAuthenticated reports whether the request context carries an authenticated session with a user.
func IsAuthenticated(ctx context.Context) bool {
	s, ok := GetSessionFromContext(ctx)
	return ok && s.IsAuthenticated && s.HasUser()
}

// requestIDKey stores the request ID assigned by Logging.
type requestIDKey struct{}

// RequestID returns the request ID assigned by the Logging middleware, if any.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
