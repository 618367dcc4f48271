package auth

// NavigationMode selects how a navigation affects browser history.
type NavigationMode string

const (
	NavigatePush    NavigationMode = "push"
	NavigateReplace NavigationMode = "replace"
)

// NavigationCommand instructs the UI shell to move to Path.
type NavigationCommand struct {
	Path string         `json:"path"`
	Mode NavigationMode `json:"mode"`
}

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a toast shown to the user.
type Notification struct {
	Severity          Severity `json:"severity"`
	Message           string   `json:"message"`
	DisplayDurationMs int      `json:"display_duration_ms"`
}
