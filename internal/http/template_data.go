package httpx

import (
	"net/http"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	"github.com/itec-institute/portal/internal/http/ui/viewmodel"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		RequestID:   RequestID(r.Context()),
	}

	if session, ok := GetSessionFromContext(r.Context()); ok && session.IsAuthenticated && session.HasUser() {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			Email:         session.User.Email,
			Name:          session.User.Name,
			Role:          string(session.User.Role),
			DashboardPath: domainauth.RouteForRole(session.User.Role),
		}
	}

	return layout
}

// toastViews converts notifications into template-friendly values.
func toastViews(ns []domainauth.Notification) []viewmodel.Toast {
	if len(ns) == 0 {
		return nil
	}
	out := make([]viewmodel.Toast, 0, len(ns))
	for _, n := range ns {
		out = append(out, viewmodel.Toast{
			Type:       string(n.Severity),
			Message:    n.Message,
			DurationMs: n.DisplayDurationMs,
		})
	}
	return out
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with the shared layout fields.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"CSRFToken":       layout.CSRFToken,
		"RequestID":       layout.RequestID,
		"Errors":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return &TemplateDataBuilder{data: data}
}

// WithToasts queues notifications for the toast container.
func (b *TemplateDataBuilder) WithToasts(ns []domainauth.Notification) *TemplateDataBuilder {
	if views := toastViews(ns); len(views) > 0 {
		b.data["Toasts"] = views
	}
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
