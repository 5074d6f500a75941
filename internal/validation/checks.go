package validation

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// asString coerces a raw JSON value to a trimmed string.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case int:
		return strconv.Itoa(s), true
	default:
		return "", false
	}
}

// asInt coerces a raw JSON value to int64, rejecting fractional numbers.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// MinLen fails when the value has fewer than n characters.
func MinLen(n int, msg string) Check {
	return func(_ context.Context, _ Payload, raw any) (any, string) {
		s, ok := asString(raw)
		if !ok || utf8.RuneCountInString(s) < n {
			return nil, msg
		}
		return s, ""
	}
}

// MaxLen fails when the value has more than n characters.
func MaxLen(n int, msg string) Check {
	return func(_ context.Context, _ Payload, raw any) (any, string) {
		s, ok := asString(raw)
		if !ok || utf8.RuneCountInString(s) > n {
			return nil, msg
		}
		return s, ""
	}
}

// Integer coerces the value to int64.
func Integer(msg string) Check {
	return func(_ context.Context, _ Payload, raw any) (any, string) {
		i, ok := asInt(raw)
		if !ok {
			return nil, msg
		}
		return i, ""
	}
}

// Date fails unless the value matches YYYY-MM-DD exactly.
func Date(msg string) Check {
	return func(_ context.Context, _ Payload, raw any) (any, string) {
		s, ok := asString(raw)
		if !ok {
			return nil, msg
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil || t.Format(dateLayout) != s {
			return nil, msg
		}
		return s, ""
	}
}

// TimeOfDay fails unless the value matches HH:MM in 24h time.
func TimeOfDay(msg string) Check {
	return func(_ context.Context, _ Payload, raw any) (any, string) {
		s, ok := asString(raw)
		if !ok {
			return nil, msg
		}
		t, err := time.Parse(timeLayout, s)
		if err != nil || t.Format(timeLayout) != s {
			return nil, msg
		}
		return s, ""
	}
}

// After fails unless the value is a date strictly after the named sibling
// field. An unparsable sibling is left to that field's own checks.
func After(other string, msg string) Check {
	return func(_ context.Context, p Payload, raw any) (any, string) {
		s, ok := asString(raw)
		if !ok {
			return nil, msg
		}
		end, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, msg
		}
		otherRaw, ok := asString(p[other])
		if !ok {
			return s, ""
		}
		start, err := time.Parse(dateLayout, otherRaw)
		if err != nil {
			return s, ""
		}
		if !end.After(start) {
			return nil, msg
		}
		return s, ""
	}
}

// In fails unless the value equals one of the allowed options.
func In(options []string, msg string) Check {
	return func(_ context.Context, _ Payload, raw any) (any, string) {
		s, ok := asString(raw)
		if !ok {
			return nil, msg
		}
		for _, opt := range options {
			if s == opt {
				return s, ""
			}
		}
		return nil, msg
	}
}

// Exists coerces the value to an id and fails unless the lookup confirms
// a matching record in the collaborator store.
func Exists(lookup func(ctx context.Context, id uint) (bool, error), msg string) Check {
	return func(ctx context.Context, _ Payload, raw any) (any, string) {
		i, ok := asInt(raw)
		if !ok || i <= 0 {
			return nil, msg
		}
		found, err := lookup(ctx, uint(i))
		if err != nil || !found {
			return nil, msg
		}
		return i, ""
	}
}
