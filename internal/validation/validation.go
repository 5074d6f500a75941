// Package validation implements a declarative, Laravel-style rule engine:
// each field carries an ordered list of checks and only the first failing
// message per field is reported, in field-declaration order.
package validation

import (
	"context"
	"strings"
)

// Payload is a raw request body or parameter set, decoded as loose values.
type Payload map[string]any

// Check validates a single field value. payload gives access to sibling
// fields for relative checks. On success it returns the (possibly coerced)
// value and an empty message; on failure the message to surface.
type Check func(ctx context.Context, payload Payload, raw any) (any, string)

// CrossCheck inspects the payload as a whole. It runs only after every
// per-field check has passed and may attribute an error to one field.
type CrossCheck func(payload Payload, validated map[string]any) (field, message string)

// Field declares the ordered checks for one payload field. Required holds
// the message reported when the field is absent or blank; when empty, an
// absent field is simply skipped.
type Field struct {
	Name     string
	Required string
	Checks   []Check
}

// RuleSet is an ordered validation table plus optional cross-field checks.
type RuleSet struct {
	Fields []Field
	Cross  []CrossCheck
}

// FieldError is a single field-scoped validation message.
type FieldError struct {
	Field   string
	Message string
}

// Has reports whether the payload carries a non-blank value for key.
func (p Payload) Has(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Validate runs the rule table over the payload. It returns the coerced
// value map on success, or the ordered field errors. Cross-field checks run
// only when every per-field check passed.
func (rs RuleSet) Validate(ctx context.Context, p Payload) (map[string]any, []FieldError) {
	validated := make(map[string]any, len(rs.Fields))
	var errs []FieldError

	for _, f := range rs.Fields {
		if !p.Has(f.Name) {
			if f.Required != "" {
				errs = append(errs, FieldError{Field: f.Name, Message: f.Required})
			}
			continue
		}

		value := p[f.Name]
		failed := false
		for _, check := range f.Checks {
			coerced, msg := check(ctx, p, value)
			if msg != "" {
				errs = append(errs, FieldError{Field: f.Name, Message: msg})
				failed = true
				break
			}
			if coerced != nil {
				value = coerced
			}
		}
		if !failed {
			validated[f.Name] = value
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	for _, cross := range rs.Cross {
		if field, msg := cross(p, validated); msg != "" {
			errs = append(errs, FieldError{Field: field, Message: msg})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return validated, nil
}

// Messages flattens field errors into their messages, preserving order.
func Messages(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}
