package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfEcho() http.Handler {
	return CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))
}

func TestCSRFProtection_GetIssuesCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfEcho().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	c := findCookie(rec, DefaultCSRFCookieName)
	require.NotNil(t, c, "CSRF cookie not set")
	assert.NotEmpty(t, c.Value)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.Secure)
	assert.Equal(t, c.Value, rec.Body.String(), "token should be exposed to templates")
}

func TestCSRFProtection_ExistingCookieIsReused(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	rec := httptest.NewRecorder()
	csrfEcho().ServeHTTP(rec, req)

	assert.Nil(t, findCookie(rec, DefaultCSRFCookieName))
	assert.Equal(t, "existing", rec.Body.String())
}

func TestCSRFProtection_SecureBehindProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	csrfEcho().ServeHTTP(rec, req)

	c := findCookie(rec, DefaultCSRFCookieName)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
}

func TestCSRFProtection_Post(t *testing.T) {
	const token = "tok-123"

	tests := []struct {
		name   string
		build  func() *http.Request
		status int
	}{
		{
			name: "no token",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/login", nil)
			},
			status: http.StatusForbidden,
		},
		{
			name: "valid header",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/login", nil)
				r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
				r.Header.Set(DefaultCSRFHeaderName, token)
				return r
			},
			status: http.StatusOK,
		},
		{
			name: "mismatched header",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/login", nil)
				r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
				r.Header.Set(DefaultCSRFHeaderName, "other")
				return r
			},
			status: http.StatusForbidden,
		},
		{
			name: "valid form field",
			build: func() *http.Request {
				form := url.Values{DefaultCSRFCookieName: {token}, "email": {"a@b.co"}}
				r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
				return r
			},
			status: http.StatusOK,
		},
		{
			name: "form field ignored for json bodies",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"csrf_token":"tok-123"}`))
				r.Header.Set("Content-Type", "application/json")
				r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
				return r
			},
			status: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			csrfEcho().ServeHTTP(rec, tt.build())
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequiresCSRFValidation(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace} {
		assert.False(t, requiresCSRFValidation(m), m)
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.True(t, requiresCSRFValidation(m), m)
	}
}
