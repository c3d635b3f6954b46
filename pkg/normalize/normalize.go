// Package normalize coerces loosely-typed values decoded from external JSON
// (profile rows, cached blobs, AI responses) into the container types the
// rest of the application assumes. Every function is total and idempotent:
// it never fails, it only substitutes defaults.
package normalize

import "math"

// String returns v if it is a non-empty string, otherwise def.
func String(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// Int accepts the numeric shapes encoding/json can produce for an integer.
func Int(v interface{}, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	}
	return def
}

// Bool returns v if it is a bool, otherwise def.
func Bool(v interface{}, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// Object returns v as a map if it is one, otherwise an empty map. Consumers
// must never see nil where an object is expected.
func Object(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok && m != nil {
		return m
	}
	return map[string]interface{}{}
}

// StringSlice coerces v to a []string, dropping entries that are not strings.
func StringSlice(v interface{}) []string {
	out := []string{}
	raw, ok := v.([]interface{})
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringMap coerces v to a map[string]string, dropping non-string values.
func StringMap(v interface{}) map[string]string {
	out := map[string]string{}
	raw, ok := v.(map[string]interface{})
	if !ok {
		return out
	}
	for k, item := range raw {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}

// SliceOf coerces v to a []T, keeping only elements that are objects and pass
// the convert predicate.
func SliceOf[T any](v interface{}, convert func(map[string]interface{}) (T, bool)) []T {
	out := []T{}
	raw, ok := v.([]interface{})
	if !ok {
		return out
	}
	for _, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if t, ok := convert(obj); ok {
			out = append(out, t)
		}
	}
	return out
}

// Enum returns v if it is a string present in allowed, otherwise def.
func Enum(v interface{}, allowed []string, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}
