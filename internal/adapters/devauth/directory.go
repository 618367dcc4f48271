package devauth

// Package devauth provides a simple, config-driven credential directory for local and demo deployments.

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

// User is one entry of the directory. Secrets are held in plain text; hashing is out of scope here.
type User struct {
	Email    string
	Password string
	Role     domainauth.Role
	Name     string
	Route    string
}

// DefaultUsers returns the built-in demo accounts.
func DefaultUsers() []User {
	return []User{
		{Email: "admin@itec.com", Password: "admin123", Role: domainauth.RoleAdmin, Name: "Admin User", Route: "admin"},
		{Email: "user@itec.com", Password: "user123", Role: domainauth.RoleUser, Name: "Regular User", Route: "user"},
		{
			Email:    "contractor@itec.com",
			Password: "contractor123",
			Role:     domainauth.RoleContractor,
			Name:     "Contractor User",
			Route:    "contractor",
		},
	}
}

// Directory implements ports.CredentialLookup over a fixed in-memory user list.
// It is read-only after construction and safe for concurrent use.
type Directory struct {
	byEmail map[string]User
}

// NewDirectory builds a directory from users.
// Emails are matched case-insensitively after trimming, so duplicates are detected on the normalized form.
func NewDirectory(users []User) (*Directory, error) {
	if len(users) == 0 {
		return nil, errors.New("dev auth: at least one user is required")
	}
	byEmail := make(map[string]User, len(users))
	for i, u := range users {
		key := normalizeEmail(u.Email)
		if key == "" {
			return nil, fmt.Errorf("dev auth: user %d: Email is required", i)
		}
		if u.Password == "" {
			return nil, fmt.Errorf("dev auth: user %q: Password is required", u.Email)
		}
		if _, dup := byEmail[key]; dup {
			return nil, fmt.Errorf("dev auth: duplicate user %q", u.Email)
		}
		if u.Route == "" {
			u.Route = string(u.Role)
		}
		byEmail[key] = u
	}
	return &Directory{byEmail: byEmail}, nil
}

// Len returns the number of users in the directory.
func (d *Directory) Len() int { return len(d.byEmail) }

// Authenticate returns the user whose email and password both match.
// A canceled or expired context is reported as a fault, never as a non-match.
func (d *Directory) Authenticate(ctx context.Context, identifier, secret string) (domainauth.UserRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.UserRecord{}, false, fmt.Errorf("dev auth lookup: %w", err)
	}
	u, ok := d.byEmail[normalizeEmail(identifier)]
	if !ok {
		return domainauth.UserRecord{}, false, nil
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(secret)) != 1 {
		return domainauth.UserRecord{}, false, nil
	}
	return domainauth.UserRecord{
		Email:        u.Email,
		Role:         u.Role,
		Name:         u.Name,
		RouteSegment: u.Route,
	}, true, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
