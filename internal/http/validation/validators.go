// Package validation provides composable form field validators.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator checks a single field value and returns an error message, or ""
// when the value is acceptable.
type Validator func(value string) string

// Required fails on empty or whitespace-only values.
func Required(label string) Validator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return label + " is required"
		}
		return ""
	}
}

// MaxLen fails when the value exceeds max runes.
func MaxLen(label string, max int) Validator {
	return func(value string) string {
		if utf8.RuneCountInString(value) > max {
			return fmt.Sprintf("%s must be at most %d characters", label, max)
		}
		return ""
	}
}

// Email fails when the value is not a parseable email address.
func Email(label string) Validator {
	return func(value string) string {
		if value == "" {
			return ""
		}
		if _, err := mail.ParseAddress(value); err != nil {
			return label + " must be a valid email address"
		}
		return ""
	}
}

// OneOf fails when the value is not one of the allowed options.
func OneOf(label string, allowed ...string) Validator {
	return func(value string) string {
		for _, a := range allowed {
			if value == a {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(allowed, ", "))
	}
}

// Pattern fails when the value does not match the given expression.
func Pattern(label string, re *regexp.Regexp, hint string) Validator {
	return func(value string) string {
		if value == "" {
			return ""
		}
		if !re.MatchString(value) {
			return label + " " + hint
		}
		return ""
	}
}

// Optional wraps a validator so empty values pass.
func Optional(v Validator) Validator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return ""
		}
		return v(value)
	}
}

// FieldValidator accumulates per-field errors across multiple Validate calls.
type FieldValidator struct {
	errors map[string]string
}

// New creates an empty FieldValidator.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate runs the validators against value for the named field, recording
// the first failure. Later failures for the same field are ignored.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	if _, exists := fv.errors[field]; exists {
		return fv
	}
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Errors returns the accumulated field errors, or nil when everything passed.
func (fv *FieldValidator) Errors() map[string]string {
	if len(fv.errors) == 0 {
		return nil
	}
	return fv.errors
}
