package httpx

import (
	"errors"
	"net/http"
)

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("not found"),
		})
		return
	}

	isAuthenticated := IsAuthenticated(r.Context())
	data := NewTemplateData(r, PageMeta{Title: "Page Not Found - " + siteName}).
		With("Code", "404").
		With("Message", "The page you're looking for doesn't exist.").
		With("ShowLogin", !isAuthenticated).
		Build()

	if h.T == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	if err := h.T.RenderError(w, http.StatusNotFound, data); err != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}
