package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itec-institute/portal/config"
)

func TestNewHTTPServer(t *testing.T) {
	components, err := BuildLoginService(context.Background(), AuthOptions{Config: memoryConfig(), Logger: testLogger()})
	require.NoError(t, err)

	server, err := NewHTTPServer(&HTTPServerConfig{
		Config: &config.AppConfig{HTTP: config.HTTPConfig{Addr: "127.0.0.1:0"}},
		Login:  components.Login,
		Logger: testLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", server.Addr)
	assert.Equal(t, 30*time.Second, server.ReadTimeout)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-1")
	server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"), "logging middleware should wrap the router")
}

func TestNewHTTPServer_RequiresLogin(t *testing.T) {
	_, err := NewHTTPServer(&HTTPServerConfig{Logger: testLogger()})
	assert.Error(t, err)

	_, err = NewHTTPServer(nil)
	assert.Error(t, err)
}

func TestRunHTTPServer_StopsOnCancel(t *testing.T) {
	components, err := BuildLoginService(context.Background(), AuthOptions{Config: memoryConfig(), Logger: testLogger()})
	require.NoError(t, err)
	server, err := NewHTTPServer(&HTTPServerConfig{
		Config: &config.AppConfig{HTTP: config.HTTPConfig{Addr: "127.0.0.1:0"}},
		Login:  components.Login,
		Logger: testLogger(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunHTTPServer(ctx, server, testLogger()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestShutdownHTTPServer_NilServer(t *testing.T) {
	assert.NoError(t, ShutdownHTTPServer(ShutdownConfig{}))
}
