package devauth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

func TestDirectory_DefaultUsers(t *testing.T) {
	dir, err := NewDirectory(DefaultUsers())
	require.NoError(t, err)
	assert.Equal(t, 3, dir.Len())

	tests := []struct {
		email, password string
		role            domainauth.Role
		name            string
	}{
		{"admin@itec.com", "admin123", domainauth.RoleAdmin, "Admin User"},
		{"user@itec.com", "user123", domainauth.RoleUser, "Regular User"},
		{"contractor@itec.com", "contractor123", domainauth.RoleContractor, "Contractor User"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			rec, ok, err := dir.Authenticate(context.Background(), tt.email, tt.password)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.role, rec.Role)
			assert.Equal(t, tt.name, rec.Name)
			assert.Equal(t, tt.email, rec.Email)
			assert.Equal(t, string(tt.role), rec.RouteSegment)
		})
	}
}

func TestDirectory_EmailMatchingIsCaseInsensitive(t *testing.T) {
	dir, err := NewDirectory(DefaultUsers())
	require.NoError(t, err)

	rec, ok, err := dir.Authenticate(context.Background(), "  Admin@ITEC.com ", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "admin@itec.com", rec.Email)
}

func TestDirectory_NoMatch(t *testing.T) {
	dir, err := NewDirectory(DefaultUsers())
	require.NoError(t, err)

	for _, tc := range []struct{ email, password string }{
		{"admin@itec.com", "wrong-password"},
		{"admin@itec.com", "ADMIN123"},
		{"nobody@itec.com", "admin123"},
		{"", ""},
	} {
		rec, ok, err := dir.Authenticate(context.Background(), tc.email, tc.password)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, domainauth.UserRecord{}, rec)
	}
}

func TestDirectory_CanceledContextIsFault(t *testing.T) {
	dir, err := NewDirectory(DefaultUsers())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := dir.Authenticate(ctx, "admin@itec.com", "admin123")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestNewDirectory_Validation(t *testing.T) {
	_, err := NewDirectory(nil)
	require.Error(t, err)

	_, err = NewDirectory([]User{{Email: " ", Password: "x"}})
	require.ErrorContains(t, err, "Email is required")

	_, err = NewDirectory([]User{{Email: "a@b.co"}})
	require.ErrorContains(t, err, "Password is required")

	_, err = NewDirectory([]User{
		{Email: "a@b.co", Password: "secret1"},
		{Email: "A@B.CO", Password: "secret2"},
	})
	require.ErrorContains(t, err, "duplicate user")
}

func TestNewDirectory_RouteDefaultsToRole(t *testing.T) {
	dir, err := NewDirectory([]User{{Email: "c@itec.com", Password: "secret1", Role: domainauth.RoleContractor}})
	require.NoError(t, err)

	rec, ok, err := dir.Authenticate(context.Background(), "c@itec.com", "secret1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "contractor", rec.RouteSegment)
}

func TestLoadUsersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := `users:
  - email: staff@itec.com
    password: staff123
    role: User
    name: Staff Member
  - email: auditor@itec.com
    password: audit123
    role: auditor
    name: Auditor
    route: audit
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	users, err := LoadUsersFile(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domainauth.RoleUser, users[0].Role)
	assert.Equal(t, domainauth.Role("auditor"), users[1].Role)
	assert.Equal(t, "audit", users[1].Route)

	dir, err := NewDirectory(users)
	require.NoError(t, err)
	rec, ok, err := dir.Authenticate(context.Background(), "staff@itec.com", "staff123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Staff Member", rec.Name)
}

func TestLoadUsersFile_Errors(t *testing.T) {
	_, err := LoadUsersFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read users file")

	_, err = ParseUsers([]byte("users: [::"))
	require.ErrorContains(t, err, "parse users file")
}
