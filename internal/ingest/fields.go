package ingest

import "fmt"

// Accessors for loosely-typed field maps. Absent or mistyped fields
// fall back to zero values; the provider's exports are frequently
// partial and never worth failing over.

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func boolean(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func integer(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// numeric returns a numeric-or-string field rendered as a string; the
// CLI emits BGP ASNs both ways.
func numeric(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%d", int64(v))
	default:
		return ""
	}
}

func object(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func list(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// nameFromTags extracts the Name tag value, or "" when the tag is
// absent.
func nameFromTags(m map[string]any, key string) string {
	for _, tag := range list(m, key) {
		if str(tag, "Key") == "Name" {
			return str(tag, "Value")
		}
	}
	return ""
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
