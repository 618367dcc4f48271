package service

import (
	"log/slog"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

// SessionRouter decides where a user lands based on their role or current session.
type SessionRouter struct {
	logger *slog.Logger
}

// NewSessionRouter constructs a SessionRouter. A nil logger disables fallback warnings.
func NewSessionRouter(logger *slog.Logger) *SessionRouter {
	if logger != nil {
		logger = logger.With("component", "session_router")
	}
	return &SessionRouter{logger: logger}
}

// RouteForRole returns the dashboard path for role.
// Roles outside the route map land on the admin dashboard and a warning is logged;
// the dashboard itself still checks the exact role.
func (r *SessionRouter) RouteForRole(role domainauth.Role) string {
	seg, ok := domainauth.RouteSegment(role)
	if !ok && r != nil && r.logger != nil {
		r.logger.Warn("unknown role routed to default dashboard",
			"role", string(role),
			"segment", seg,
		)
	}
	return domainauth.DashboardPath(seg)
}

// OnMount returns a history-replacing navigation away from the login surface
// when sess already carries an authenticated user, and nil otherwise.
func (r *SessionRouter) OnMount(sess domainauth.Session) *domainauth.NavigationCommand {
	if !sess.HasUser() {
		return nil
	}
	return &domainauth.NavigationCommand{
		Path: r.RouteForRole(sess.User.Role),
		Mode: domainauth.NavigateReplace,
	}
}
