package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	"github.com/itec-institute/portal/internal/service"
)

const siteName = "ITEC Institute"

// LoginService is the subset of service.LoginService the UI needs.
type LoginService interface {
	SessionReader
	Mount(ctx context.Context, sessionID string) (*service.MountResult, error)
	OnCredentialsSubmitted(ctx context.Context, in service.SubmitInput) (*service.SubmitResult, error)
	InFlight(sess domainauth.Session) bool
	TakeFlash(ctx context.Context, sessionID string) ([]domainauth.Notification, error)
	Logout(ctx context.Context, sessionID string) error
}

var _ LoginService = (*service.LoginService)(nil)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	Svc          LoginService
	CookieDomain string
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger

	// Now is overridable for tests.
	Now func() time.Time
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// toastPayload is the HX-Trigger payload the toast script understands.
type toastPayload struct {
	Message  string `json:"message"`
	Type     string `json:"type"`
	Duration int    `json:"duration"`
}

// triggerToasts sends notifications through HX-Trigger for htmx requests.
func triggerToasts(w http.ResponseWriter, ns []domainauth.Notification) {
	if w == nil || len(ns) == 0 {
		return
	}
	payload := make([]toastPayload, 0, len(ns))
	for _, n := range ns {
		payload = append(payload, toastPayload{
			Message:  n.Message,
			Type:     string(n.Severity),
			Duration: n.DisplayDurationMs,
		})
	}
	HTMX(w).Trigger("showToast", payload)
}

// navigate applies a NavigationCommand to the response.
// Plain requests get 303 See Other; the login page is never a history entry worth returning to
// because GET /login immediately redirects authenticated sessions.
// htmx requests get HX-Redirect for push. Replace is delegated to the page script,
// which calls location.replace so the current entry is dropped.
func navigate(w http.ResponseWriter, r *http.Request, cmd domainauth.NavigationCommand) {
	if !IsHTMX(r) {
		http.Redirect(w, r, cmd.Path, http.StatusSeeOther)
		return
	}
	if cmd.Mode == domainauth.NavigateReplace {
		HTMX(w).Trigger("navigate", cmd).NoContent()
		return
	}
	HTMX(w).Redirect(cmd.Path)
}

func sessionIDFromCookie(r *http.Request) string {
	return cookieValue(r, SessionCookieName)
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *UIHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	maxAge := int(s.ExpiresAt.Sub(h.now()).Seconds())
	if s.ID == "" || maxAge <= 0 {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clearCookie expires a cookie, mirroring the attributes used when it was set.
func (h *UIHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// render writes a page either whole or as the main fragment for htmx.
// htmx does not swap error responses, so fragment responses are always 200.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	var err error
	if WantsPartial(r) {
		err = h.T.RenderPartial(w, http.StatusOK, data)
	} else {
		err = h.T.RenderFull(w, status, data)
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "render page failed", "page", data["CurrentPage"], "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
