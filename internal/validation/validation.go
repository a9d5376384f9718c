package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	errors []ValidationError
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errors = append(v.errors, ValidationError{field, "is required"})
	}
	return v
}

func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.errors = append(v.errors, ValidationError{field, fmt.Sprintf("must be at most %d characters", max)})
	}
	return v
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func (v *Validator) Email(field, value string) *Validator {
	if !emailRegex.MatchString(value) {
		v.errors = append(v.errors, ValidationError{field, "must be a valid email address"})
	}
	return v
}

// OptionalEmail skips blank values; used where an email enriches a
// record but is not required.
func (v *Validator) OptionalEmail(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v
	}
	return v.Email(field, value)
}

// IntRange checks a bounded integer field, e.g. a lead score in [0,100].
func (v *Validator) IntRange(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.errors = append(v.errors, ValidationError{field, fmt.Sprintf("must be between %d and %d", min, max)})
	}
	return v
}

// OneOf checks a closed-set string field such as a contact status.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.errors = append(v.errors, ValidationError{field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))})
	return v
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slug checks URL-safe identifiers for forms and landing pages.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.errors = append(v.errors, ValidationError{field, "must be lowercase letters, digits and hyphens"})
	}
	return v
}

func (v *Validator) NoScriptTags(field, value string) *Validator {
	lower := strings.ToLower(value)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") {
		v.errors = append(v.errors, ValidationError{field, "contains potentially dangerous content"})
	}
	return v
}

func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// First returns the first error message, for handlers that reply with
// a single human-readable string.
func (v *Validator) First() string {
	if len(v.errors) == 0 {
		return ""
	}
	return v.errors[0].Error()
}

func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, ValidationError{field, message})
}
