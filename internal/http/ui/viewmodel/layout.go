package viewmodel

// User represents the authenticated user context exposed to templates.
type User struct {
	Email         string
	Name          string
	Role          string
	DashboardPath string
}

// Toast is a notification rendered by the toast container.
type Toast struct {
	Type       string
	Message    string
	DurationMs int
}

// Layout captures shared chrome metadata (titles, auth flags, pending toasts).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	RequestID       string
	IsAuthenticated bool
	User            *User
	Toasts          []Toast
}
