package httpx

// Page identifiers used in templates and navigation.
const (
	PageLogin     = "login"
	PageDashboard = "dashboard"
)

// SessionCookieName carries the session ID.
const SessionCookieName = "session_id"

// Paths the handlers redirect to.
const (
	PathLogin     = "/login"
	PathSignedOut = "/auth/signed-out"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:     "login-content",
	PageDashboard: "dashboard-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to login-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "login-content"
}
