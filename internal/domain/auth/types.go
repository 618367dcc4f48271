package auth

// Package auth contains domain-level types for authentication, sessions and post-login routing.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents the classification of a user that determines their landing route.
// Keep string form for easy persistence and cookies; any string may reach the router.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleContractor Role = "contractor"
)

// Roles returns the enumerated roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleContractor}
}

// ParseRole normalizes s and reports whether it names one of the enumerated roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleUser, RoleContractor:
		return r, true
	default:
		return r, false
	}
}

// UserIdentity is the authenticated principal stored in a session.
// It is treated as immutable once created.
type UserIdentity struct {
	Role  Role   `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserRecord is what the credential lookup returns for a matched identifier/secret pair.
// RouteSegment is part of the lookup contract but navigation never reads it; see RouteForRole.
type UserRecord struct {
	Email        string
	Role         Role
	Name         string
	RouteSegment string
}

// Identity projects the record onto the identity kept in the session.
func (r UserRecord) Identity() UserIdentity {
	return UserIdentity{Role: r.Role, Email: r.Email, Name: r.Name}
}

// Session is the server-side record kept for one browser.
// ID is an opaque identifier carried in the session cookie.
// Loading mirrors State == StateSubmitting and is kept in sync by Apply.
// SubmittedAt records when the current attempt started so an abandoned attempt can be recovered.
type Session struct {
	ID              string         `json:"id"`
	IsAuthenticated bool           `json:"is_authenticated"`
	User            *UserIdentity  `json:"user,omitempty"`
	Loading         bool           `json:"loading"`
	State           AuthState      `json:"state"`
	Flash           []Notification `json:"flash,omitempty"`
	SubmittedAt     time.Time      `json:"submitted_at,omitempty"`
	ExpiresAt       time.Time      `json:"expires_at"`
}

// NewSession returns an unauthenticated, idle session.
func NewSession(id string, expiresAt time.Time) Session {
	return Session{ID: id, State: StateIdle, ExpiresAt: expiresAt}
}

// Apply moves the session through the auth state machine and keeps Loading in sync.
func (s *Session) Apply(ev Event) error {
	next, err := s.state().Next(ev)
	if err != nil {
		return err
	}
	s.State = next
	s.Loading = next == StateSubmitting
	if !s.Loading {
		s.SubmittedAt = time.Time{}
	}
	return nil
}

// Authenticate records a successful login for identity.
func (s *Session) Authenticate(identity UserIdentity) {
	id := identity
	s.IsAuthenticated = true
	s.User = &id
}

// HasUser reports whether the session carries an authenticated identity.
func (s Session) HasUser() bool { return s.IsAuthenticated && s.User != nil }

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s Session) state() AuthState {
	if s.State == "" {
		return StateIdle
	}
	return s.State
}
