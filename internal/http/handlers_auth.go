package httpx

import (
	"errors"
	"net/http"
	"strings"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	apperrors "github.com/itec-institute/portal/internal/errors"
	"github.com/itec-institute/portal/internal/http/validation"
	"github.com/itec-institute/portal/internal/service"
)

// MsgLoginInProgress is shown when a submit arrives while the session's previous attempt is still running.
const MsgLoginInProgress = "A login attempt is already in progress. Please wait."

// loginView is everything the login page needs besides the shared layout.
type loginView struct {
	Email   string
	Errors  map[string]string
	Toasts  []domainauth.Notification
	Loading bool
	Status  int
}

func (h *UIHandlers) renderLogin(w http.ResponseWriter, r *http.Request, v loginView) {
	if v.Status == 0 {
		v.Status = http.StatusOK
	}
	if IsHTMX(r) {
		triggerToasts(w, v.Toasts)
	}
	data := NewTemplateData(r, PageMeta{
		Title:       "Login - " + siteName,
		PageTitle:   "ITEC",
		CurrentPage: PageLogin,
	}).
		WithFieldErrors(v.Errors).
		WithToasts(v.Toasts).
		With("Email", v.Email).
		With("Loading", v.Loading).
		Build()
	h.render(w, r, v.Status, data)
}

// LoginPage shows the login form, or moves an authenticated session to its dashboard.
// GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	cookieID := sessionIDFromCookie(r)
	res, err := h.Svc.Mount(r.Context(), cookieID)
	if err != nil {
		h.logFault(r, "mount login page failed", err)
		h.renderLogin(w, r, loginView{
			Toasts: []domainauth.Notification{faultToast()},
			Status: faultStatus(err),
		})
		return
	}
	if res.Navigation != nil {
		navigate(w, r, *res.Navigation)
		return
	}
	if cookieID != "" && res.Session.ID == "" {
		// Unknown or expired session; drop the stale cookie.
		h.clearCookie(w, r, SessionCookieName)
	}
	h.renderLogin(w, r, loginView{Loading: h.Svc.InFlight(res.Session)})
}

// LoginSubmit validates the form and runs one credential submission.
// POST /login.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if err := validation.ValidateLogin(email, password); err != nil {
		h.renderLogin(w, r, loginView{Email: email, Errors: validation.FieldErrors(err), Status: StatusForError(err)})
		return
	}

	ctx := r.Context()
	mounted, err := h.Svc.Mount(ctx, sessionIDFromCookie(r))
	if err != nil {
		h.logFault(r, "load session for login failed", err)
		h.renderLogin(w, r, loginView{Email: email, Toasts: []domainauth.Notification{faultToast()}, Status: faultStatus(err)})
		return
	}
	if mounted.Navigation != nil {
		navigate(w, r, *mounted.Navigation)
		return
	}
	if h.Svc.InFlight(mounted.Session) {
		h.renderInProgress(w, r, email)
		return
	}

	result, err := h.Svc.OnCredentialsSubmitted(ctx, service.SubmitInput{
		SessionID: mounted.Session.ID,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			h.renderInProgress(w, r, email)
			return
		}
		h.logFault(r, "login submission failed", err)
		h.renderLogin(w, r, loginView{Email: email, Toasts: []domainauth.Notification{faultToast()}, Status: faultStatus(err)})
		return
	}

	h.setSessionCookie(w, r, result.Session)

	if result.Succeeded() {
		navigate(w, r, *result.Navigation)
		return
	}
	h.renderLogin(w, r, loginView{
		Email:  email,
		Toasts: result.Notifications,
		Status: StatusForError(result.Failure),
	})
}

func (h *UIHandlers) renderInProgress(w http.ResponseWriter, r *http.Request, email string) {
	toast := domainauth.Notification{
		Severity:          domainauth.SeverityError,
		Message:           MsgLoginInProgress,
		DisplayDurationMs: service.ErrorToastDuration,
	}
	if IsHTMX(r) {
		// Leave the in-flight form alone; only show the toast.
		triggerToasts(w, []domainauth.Notification{toast})
		w.WriteHeader(http.StatusConflict)
		return
	}
	h.renderLogin(w, r, loginView{
		Email:   email,
		Toasts:  []domainauth.Notification{toast},
		Loading: true,
		Status:  http.StatusConflict,
	})
}

// faultStatus keeps timeout and cancellation statuses and maps everything else to 500.
func faultStatus(err error) int {
	if apperrors.IsTimeout(err) || apperrors.IsCanceled(err) {
		return StatusForError(err)
	}
	return http.StatusInternalServerError
}

// logFault logs a failed request at a level matching its cause.
// A client that went away is not an error on our side.
func (h *UIHandlers) logFault(r *http.Request, msg string, err error) {
	ctx := r.Context()
	switch {
	case apperrors.IsCanceled(err):
		h.logger().InfoContext(ctx, msg, "error", err)
	case apperrors.IsTimeout(err):
		h.logger().WarnContext(ctx, msg, "error", err)
	default:
		h.logger().ErrorContext(ctx, msg, "error", err)
	}
}

func faultToast() domainauth.Notification {
	return domainauth.Notification{
		Severity:          domainauth.SeverityError,
		Message:           service.MsgLoginFault,
		DisplayDurationMs: service.ErrorToastDuration,
	}
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if id := sessionIDFromCookie(r); id != "" {
		if err := h.Svc.Logout(r.Context(), id); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.clearCookie(w, r, SessionCookieName)

	if IsHTMX(r) {
		HTMX(w).Redirect(PathSignedOut)
		return
	}
	if isAJAX(r) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": PathSignedOut,
		})
		return
	}
	http.Redirect(w, r, PathSignedOut, http.StatusSeeOther)
}

func isAJAX(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// statusUser is the user object returned by Status.
type statusUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// errStatusUnavailable is what clients see when the session store fails; the cause is only logged.
var errStatusUnavailable = errors.New("session status is temporarily unavailable")

// anonymousStatus has the same keys as an authenticated status body, minus the user.
func anonymousStatus() map[string]any {
	return map[string]any{
		"authenticated": false,
		"loading":       false,
		"state":         domainauth.StateIdle,
	}
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *UIHandlers) Status(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromCookie(r)
	if id == "" {
		WriteJSON(w, http.StatusOK, anonymousStatus())
		return
	}

	session, err := h.Svc.GetSession(r.Context(), id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			h.logFault(r, "status lookup failed", err)
			WriteError(w, ErrorParams{
				Code:    faultStatus(err),
				ErrCode: "session_unavailable",
				Err:     errStatusUnavailable,
			})
			return
		}
		h.clearCookie(w, r, SessionCookieName)
		WriteJSON(w, http.StatusOK, anonymousStatus())
		return
	}

	body := map[string]any{
		"authenticated": session.IsAuthenticated && session.HasUser(),
		"loading":       h.Svc.InFlight(*session),
		"state":         session.State,
		"expires_at":    session.ExpiresAt,
	}
	if session.HasUser() {
		body["user"] = statusUser{
			Email: session.User.Email,
			Name:  session.User.Name,
			Role:  string(session.User.Role),
		}
	}
	WriteJSON(w, http.StatusOK, body)
}

// SignedOut renders a simple signed-out page with a sign-in link.
// GET /auth/signed-out.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Signed out - " + siteName}).Build()
	if err := h.T.Render(w, http.StatusOK, "signed-out-page", data); err != nil {
		http.Redirect(w, r, PathLogin, http.StatusSeeOther)
	}
}
