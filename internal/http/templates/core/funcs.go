package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/itec-institute/portal/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers shared by every page.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": friendlyTime,
		"initials":     uiutil.Initials,
		"truncateText": uiutil.TruncateWithEllipsis,
		"titleCase":    titleCase,
		"toastClass":   toastClass,
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	return funcs
}

func friendlyTime(ts any) string {
	switch v := ts.(type) {
	case time.Time:
		return uiutil.FormatFriendlyDateTime(v)
	case *time.Time:
		if v != nil {
			return uiutil.FormatFriendlyDateTime(*v)
		}
	}
	return ""
}

// titleCase upper-cases the first letter of s, e.g. a role name for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// toastClass maps a notification severity to its CSS modifier.
func toastClass(severity string) string {
	switch severity {
	case "success":
		return "toast--success"
	case "error":
		return "toast--error"
	default:
		return "toast--info"
	}
}
