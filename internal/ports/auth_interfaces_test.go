package ports_test

import (
	"testing"

	"github.com/itec-institute/portal/internal/adapters/devauth"
	"github.com/itec-institute/portal/internal/adapters/memory"
	redisadapter "github.com/itec-institute/portal/internal/adapters/redis"
	"github.com/itec-institute/portal/internal/mocks"
	authmocks "github.com/itec-institute/portal/internal/mocks/auth"
	"github.com/itec-institute/portal/internal/ports"
)

// This test only verifies that adapters and mocks conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.CredentialLookup = (*devauth.Directory)(nil)
	var _ ports.CredentialLookup = (*authmocks.StubLookup)(nil)
	var _ ports.CredentialLookup = (*mocks.MockCredentialLookup)(nil)
	var _ ports.SessionStore = (*memory.SessionStore)(nil)
	var _ ports.SessionStore = (*redisadapter.SessionStore)(nil)
	var _ ports.SessionStore = (*authmocks.MemorySessionStore)(nil)
	var _ ports.SessionStore = (*mocks.MockSessionStore)(nil)
	var _ ports.SessionSweeper = (*memory.SessionStore)(nil)
}
