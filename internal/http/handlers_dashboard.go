package httpx

import (
	"net/http"
)

// Index sends visitors to their dashboard or to the login page.
// GET /{$}.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.Mount(r.Context(), sessionIDFromCookie(r))
	if err == nil && res.Navigation != nil {
		navigate(w, r, *res.Navigation)
		return
	}
	if err != nil {
		h.logger().WarnContext(r.Context(), "index session lookup failed", "error", err)
	}
	if IsHTMX(r) {
		HTMX(w).Redirect(PathLogin)
		return
	}
	http.Redirect(w, r, PathLogin, http.StatusSeeOther)
}

// Dashboard renders the role dashboard and delivers pending notifications such as the welcome toast.
// GET /{role}/dashboard, behind RequireRoleBrowser.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := GetSessionFromContext(r.Context())
	if !ok || !session.HasUser() {
		redirectToLogin(w, r)
		return
	}

	flash, err := h.Svc.TakeFlash(r.Context(), session.ID)
	if err != nil {
		// The page is still useful without the toast.
		h.logger().WarnContext(r.Context(), "take flash failed", "session_id", session.ID, "error", err)
	}
	if IsHTMX(r) {
		triggerToasts(w, flash)
	}

	role := string(session.User.Role)
	data := NewTemplateData(r, PageMeta{
		Title:       "Dashboard - " + siteName,
		PageTitle:   role,
		CurrentPage: PageDashboard,
	}).
		WithToasts(flash).
		With("ExpiresAt", session.ExpiresAt).
		Build()
	h.render(w, r, http.StatusOK, data)
}
