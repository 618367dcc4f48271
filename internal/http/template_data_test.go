package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	"github.com/itec-institute/portal/internal/http/ui/viewmodel"
	"github.com/itec-institute/portal/internal/testutil"
)

func TestNewTemplateData_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)

	data := NewTemplateData(req, PageMeta{Title: "Login", CurrentPage: PageLogin}).Build()

	assert.Equal(t, "Login", data["Title"])
	assert.Equal(t, PageLogin, data["CurrentPage"])
	assert.Equal(t, false, data["IsAuthenticated"])
	assert.Equal(t, map[string]string{}, data["Errors"])
	assert.NotContains(t, data, "User")
	assert.NotContains(t, data, "Toasts")
}

func TestNewTemplateData_AuthenticatedUser(t *testing.T) {
	sess := testutil.NewSession("s1").WithUser(domainauth.RoleContractor, "c@itec.com", "Casey Jones").Build()
	req := httptest.NewRequest(http.MethodGet, "/contractor/dashboard", nil)
	req = req.WithContext(SetSessionInContext(req.Context(), &sess))

	data := NewTemplateData(req, PageMeta{CurrentPage: PageDashboard}).Build()

	assert.Equal(t, true, data["IsAuthenticated"])
	user, ok := data["User"].(*viewmodel.User)
	require.True(t, ok)
	assert.Equal(t, "/contractor/dashboard", user.DashboardPath)
	assert.Equal(t, "Casey Jones", user.Name)
}

func TestTemplateDataBuilder_ToastsAndErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)

	data := NewTemplateData(req, PageMeta{}).
		WithToasts([]domainauth.Notification{{Severity: domainauth.SeverityError, Message: "bad", DisplayDurationMs: 5000}}).
		WithFieldErrors(map[string]string{"email": "Email is required"}).
		With("Email", "x").
		Build()

	assert.Equal(t, []viewmodel.Toast{{Type: "error", Message: "bad", DurationMs: 5000}}, data["Toasts"])
	assert.Equal(t, map[string]string{"email": "Email is required"}, data["Errors"])
	assert.Equal(t, "x", data["Email"])
}
