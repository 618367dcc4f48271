package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Hx-Request", "true")
	if !IsHTMX(r) {
		t.Fatal("expected IsHTMX true")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/x", nil)
	if IsHTMX(r2) {
		t.Fatal("expected IsHTMX false without header")
	}
}

func TestHTMX_HistoryRestoreWantsFullPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Hx-Request", "true")
	if !WantsPartial(r) {
		t.Fatal("htmx request should want partial")
	}
	r.Header.Set("Hx-History-Restore-Request", "true")
	if WantsPartial(r) {
		t.Fatal("history restore should get the full page")
	}
}

func TestHTMX_TriggerPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	SetHXTrigger(rec, "showToast", []toastPayload{{Message: "hi", Type: "success", Duration: 3000}})

	var got map[string][]toastPayload
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("Hx-Trigger")), &got))
	assert.Equal(t, []toastPayload{{Message: "hi", Type: "success", Duration: 3000}}, got["showToast"])

	rec = httptest.NewRecorder()
	SetHXTrigger(rec, "refresh", nil)
	assert.JSONEq(t, `{"refresh":true}`, rec.Header().Get("Hx-Trigger"))
}

func TestHTMXResponse_Redirect(t *testing.T) {
	rec := httptest.NewRecorder()
	HTMX(rec).Redirect("/admin/dashboard")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Hx-Redirect"))
}

func TestNavigate(t *testing.T) {
	push := domainauth.NavigationCommand{Path: "/user/dashboard", Mode: domainauth.NavigatePush}
	replace := domainauth.NavigationCommand{Path: "/user/dashboard", Mode: domainauth.NavigateReplace}

	t.Run("plain request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		navigate(rec, httptest.NewRequest(http.MethodGet, "/login", nil), replace)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/user/dashboard", rec.Header().Get("Location"))
	})

	t.Run("htmx push", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Hx-Request", "true")
		rec := httptest.NewRecorder()
		navigate(rec, req, push)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "/user/dashboard", rec.Header().Get("Hx-Redirect"))
	})

	t.Run("htmx replace", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.Header.Set("Hx-Request", "true")
		rec := httptest.NewRecorder()
		navigate(rec, req, replace)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("Hx-Redirect"))
		assert.JSONEq(t, `{"navigate":{"path":"/user/dashboard","mode":"replace"}}`, rec.Header().Get("Hx-Trigger"))
	})
}

func TestTriggerToasts(t *testing.T) {
	rec := httptest.NewRecorder()
	triggerToasts(rec, nil)
	assert.Empty(t, rec.Header().Get("Hx-Trigger"))

	triggerToasts(rec, []domainauth.Notification{{
		Severity:          domainauth.SeverityError,
		Message:           "nope",
		DisplayDurationMs: 5000,
	}})
	assert.JSONEq(t, `{"showToast":[{"message":"nope","type":"error","duration":5000}]}`, rec.Header().Get("Hx-Trigger"))
}
