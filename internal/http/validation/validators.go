package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/itec-institute/portal/internal/errors"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// EmailPattern is the address shape accepted by the login form.
var EmailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Required validates that a field is not blank.
func Required(message string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return message
		}
		return ""
	}
}

// MinLength validates that a field has at least n runes.
// Surrounding whitespace counts; passwords are compared as typed.
func MinLength(n int, message string) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(v) < n {
			return message
		}
		return ""
	}
}

// MaxLength validates that a field has at most n runes.
func MaxLength(fieldName string, n int) Validator {
	return func(v string) string {
		if utf8.RuneCountInString(v) > n {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, n)
		}
		return ""
	}
}

// Pattern validates that a non-blank field matches re.
func Pattern(re *regexp.Regexp, message string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return message
		}
		return ""
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errs []error
	seen map[string]bool
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{seen: make(map[string]bool)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	if fv.seen[field] {
		return fv
	}
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errs = append(fv.errs, apperrors.ValidationField(field, msg))
			fv.seen[field] = true
			break
		}
	}
	return fv
}

// Err joins one validation AppError per failing field, in the order fields were validated.
// It returns nil when every field passed.
func (fv *FieldValidator) Err() error {
	return errors.Join(fv.errs...)
}

// FieldErrors flattens err into per-field messages for form rendering.
// Errors without a field are ignored.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var appErr *apperrors.AppError
		if field := apperrors.GetField(e); field != "" && errors.As(e, &appErr) {
			out[field] = appErr.Message
		}
	}
	walk(err)
	return out
}

// Login field limits.
const (
	PasswordMinLength = 6
	FieldMaxLength    = 254
)

// ValidateLogin checks the login form fields "email" and "password".
// The returned error carries the validation code and one field error per failing field.
func ValidateLogin(email, password string) error {
	return New().
		Validate("email", email,
			Required("Email is required"),
			Pattern(EmailPattern, "Invalid email address"),
			MaxLength("Email", FieldMaxLength),
		).
		Validate("password", password,
			Required("Password is required"),
			MinLength(PasswordMinLength, fmt.Sprintf("Password must be at least %d characters", PasswordMinLength)),
			MaxLength("Password", FieldMaxLength),
		).
		Err()
}
