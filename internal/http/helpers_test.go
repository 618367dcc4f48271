package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/itec-institute/portal/internal/adapters/memory"
	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	apperrors "github.com/itec-institute/portal/internal/errors"
	mockauth "github.com/itec-institute/portal/internal/mocks/auth"
	"github.com/itec-institute/portal/internal/service"
)

const testPassword = "secret123"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// requireTemplates skips the test when the template directory is not reachable from the package dir.
func requireTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("templates not available, skipping")
	}
}

// newTestRenderer parses the real templates.
func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	requireTemplates(t)
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     discardLogger(),
	})
	require.NoError(t, err)
	return tr
}

type testEnv struct {
	handler http.Handler
	svc     *service.LoginService
	store   *memory.SessionStore
	lookup  *mockauth.StubLookup
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	requireTemplates(t)

	store := memory.NewSessionStore()
	lookup := mockauth.NewStubLookup()
	svc, err := service.NewLoginService(service.LoginServiceOptions{
		Lookup:   lookup,
		Sessions: store,
		Logger:   discardLogger(),
	})
	require.NoError(t, err)

	h, err := NewRouter(RouterServices{
		Login:      svc,
		Logger:     discardLogger(),
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS: fstest.MapFS{
			"js/portal.js": &fstest.MapFile{Data: []byte("console.log('portal');")},
		},
	})
	require.NoError(t, err)

	return &testEnv{handler: h, svc: svc, store: store, lookup: lookup}
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// csrfToken fetches the login page once to obtain a CSRF cookie.
func (e *testEnv) csrfToken(t *testing.T) string {
	t.Helper()
	rec := e.serve(httptest.NewRequest(http.MethodGet, PathLogin, nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c.Value
		}
	}
	t.Fatal("login page did not set a CSRF cookie")
	return ""
}

// seed stores a session directly.
func (e *testEnv) seed(t *testing.T, sess domainauth.Session) {
	t.Helper()
	require.NoError(t, e.store.Save(context.Background(), sess))
}

type loginRequest struct {
	email, password string
	csrf            string
	sessionID       string
	htmx            bool
}

func newLoginRequest(in loginRequest) *http.Request {
	form := url.Values{"email": {in.email}, "password": {in.password}}
	req := httptest.NewRequest(http.MethodPost, PathLogin, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if in.csrf != "" {
		req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: in.csrf})
		req.Header.Set(DefaultCSRFHeaderName, in.csrf)
	}
	if in.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: in.sessionID})
	}
	if in.htmx {
		req.Header.Set("Hx-Request", "true")
	}
	return req
}

func withSessionCookie(req *http.Request, id string) *http.Request {
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// fakeSessions is a SessionReader backed by a map.
type fakeSessions map[string]domainauth.Session

func (f fakeSessions) GetSession(_ context.Context, id string) (*domainauth.Session, error) {
	s, ok := f[id]
	if !ok {
		return nil, apperrors.NotFound("session not found")
	}
	return &s, nil
}
