package bootstrap

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itec-institute/portal/config"
	"github.com/itec-institute/portal/internal/service"
	"github.com/itec-institute/portal/internal/testutil"
)

func memoryConfig() *config.AppConfig {
	return &config.AppConfig{
		Auth: config.AuthConfig{DemoUsers: true, LookupTimeout: time.Second},
		Session: config.SessionConfig{
			Store:         config.SessionStoreMemory,
			TTL:           time.Hour,
			SweepInterval: time.Minute,
		},
	}
}

func TestBuildLoginService_Memory(t *testing.T) {
	components, err := BuildLoginService(context.Background(), AuthOptions{
		Config: memoryConfig(),
		Logger: testLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = components.Close() })

	require.NotNil(t, components.Login)
	assert.NotNil(t, components.Reaper, "memory store needs a reaper")
	assert.Nil(t, components.Redis)

	res, err := components.Login.OnCredentialsSubmitted(context.Background(), service.SubmitInput{
		Email:    "admin@itec.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
	assert.Equal(t, "/admin/dashboard", res.Navigation.Path)
}

func TestBuildLoginService_UsersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - email: staff@itec.com
    password: staffpass
    role: user
    name: Staff Member
`), 0o600))

	cfg := memoryConfig()
	cfg.Auth.UsersFile = path

	components, err := BuildLoginService(context.Background(), AuthOptions{Config: cfg, Logger: testLogger()})
	require.NoError(t, err)

	res, err := components.Login.OnCredentialsSubmitted(context.Background(), service.SubmitInput{
		Email:    "staff@itec.com",
		Password: "staffpass",
	})
	require.NoError(t, err)
	require.True(t, res.Succeeded())
	assert.Equal(t, "/user/dashboard", res.Navigation.Path)

	// Demo accounts are not merged in when a file is configured.
	res, err = components.Login.OnCredentialsSubmitted(context.Background(), service.SubmitInput{
		Email:    "admin@itec.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.False(t, res.Succeeded())
}

func TestBuildLoginService_MissingUsersFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.Auth.UsersFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := BuildLoginService(context.Background(), AuthOptions{Config: cfg, Logger: testLogger()})
	assert.Error(t, err)
}

func TestBuildLoginService_RedisConnectFailure(t *testing.T) {
	cfg := memoryConfig()
	cfg.Session.Store = config.SessionStoreRedis

	boom := errors.New("connection refused")
	_, err := BuildLoginService(context.Background(), AuthOptions{
		Config: cfg,
		Logger: testLogger(),
		ConnectRedis: func(context.Context, RedisConnectOptions) (redis.UniversalClient, error) {
			return nil, boom
		},
	})
	require.ErrorIs(t, err, boom)
}

func TestBuildLoginService_Redis(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	cfg := memoryConfig()
	cfg.Session.Store = config.SessionStoreRedis
	cfg.Session.KeyPrefix = "test-session:"

	components, err := BuildLoginService(context.Background(), AuthOptions{
		Config: cfg,
		Logger: testLogger(),
		ConnectRedis: func(context.Context, RedisConnectOptions) (redis.UniversalClient, error) {
			return client, nil
		},
	})
	require.NoError(t, err)

	assert.Nil(t, components.Reaper, "redis expires keys itself")
	assert.Same(t, client, components.Redis)

	res, err := components.Login.OnCredentialsSubmitted(context.Background(), service.SubmitInput{
		Email:    "contractor@itec.com",
		Password: "contractor123",
	})
	require.NoError(t, err)
	require.True(t, res.Succeeded())

	sess, err := components.Login.GetSession(context.Background(), res.Session.ID)
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated)
}

func TestBuildLoginService_RequiresConfig(t *testing.T) {
	_, err := BuildLoginService(context.Background(), AuthOptions{})
	assert.Error(t, err)
}

func TestBuildLoginService_MetricsEnabled(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	cfg := memoryConfig()
	cfg.Observability.Metrics = config.ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: pc.LocalAddr().String(),
		Prefix:        "portal",
	}

	components, err := BuildLoginService(context.Background(), AuthOptions{Config: cfg, Logger: testLogger()})
	require.NoError(t, err)
	require.NotNil(t, components.Metrics)
	t.Cleanup(func() { _ = components.Close() })

	_, err = components.Login.OnCredentialsSubmitted(context.Background(), service.SubmitInput{
		Email:    "admin@itec.com",
		Password: "wrong",
	})
	require.NoError(t, err)

	buf := make([]byte, 512)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "portal.login.attempt:1|c|#outcome:rejected,service:portal", string(buf[:n]))
}

func TestBuildMetricsClient_Disabled(t *testing.T) {
	assert.Nil(t, buildMetricsClient(config.ObservabilityMetricsConfig{StatsdAddress: "127.0.0.1:8125"}, testLogger()))
	assert.Nil(t, buildMetricsClient(config.ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "no-port"}, testLogger()),
		"dial errors are logged and metrics stay off")
}
