package audit

import (
	"encoding/json"
	"strings"
)

// appendSchemaTypes adds the @type values declared by one JSON-LD block.
func appendSchemaTypes(dst []string, raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return dst
	}
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return dst
	}
	return collectTypes(dst, payload)
}

func collectTypes(dst []string, payload any) []string {
	switch t := payload.(type) {
	case map[string]any:
		dst = appendType(dst, t["@type"])
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				dst = collectTypes(dst, item)
			}
		}
	case []any:
		for _, item := range t {
			dst = collectTypes(dst, item)
		}
	}
	return dst
}

func appendType(dst []string, t any) []string {
	switch v := t.(type) {
	case string:
		return appendUnique(dst, v)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				dst = appendUnique(dst, s)
			}
		}
	}
	return dst
}

func appendUnique(dst []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return dst
	}
	for _, existing := range dst {
		if existing == v {
			return dst
		}
	}
	return append(dst, v)
}
