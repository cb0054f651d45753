// Package validate runs field-level validation rules over a raw request
// payload. Rules are plain functions because most of them arrive at runtime
// from gateway capability objects rather than from struct tags.
package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

// Rule checks a single field value. A nil value means the field is absent.
type Rule func(value any) error

// Errors maps field names to their validation messages. It implements error
// so it can abort a pipeline while still carrying per-field detail.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed for fields: %s", strings.Join(fields, ", "))
}

// Run applies every rule set against values. Custom messages override the
// rule's own error text for that field.
func Run(values map[string]any, rules map[string][]Rule, messages map[string]string) Errors {
	errs := make(Errors)
	for field, fieldRules := range rules {
		value := values[field]
		for _, rule := range fieldRules {
			if err := rule(value); err != nil {
				msg := err.Error()
				if custom, ok := messages[field]; ok {
					msg = custom
				}
				errs[field] = append(errs[field], msg)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

var errRequired = errors.New("this field is required")

// Required fails on absent or empty string values.
func Required(value any) error {
	if value == nil {
		return errRequired
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return errRequired
	}
	return nil
}

// Email accepts absent values; present values must parse as an address and
// may not contain any whitespace.
func Email(value any) error {
	s, ok := asString(value)
	if !ok || s == "" {
		return nil
	}
	if strings.ContainsAny(s, " \t") {
		return errors.New("your email may not contain any spaces")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return errors.New("this field must be a valid email address")
	}
	return nil
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}
