package domain

import (
	"strconv"
	"strings"
)

// Properties is a GeoJSON attribute bag. Upstream layers are inconsistent
// about key casing, so all lookups try the exact key, its lower-case form,
// and its upper-case form in that order.
type Properties map[string]any

func (p Properties) lookup(key string) (any, bool) {
	if v, ok := p[key]; ok {
		return v, true
	}
	if v, ok := p[strings.ToLower(key)]; ok {
		return v, true
	}
	if v, ok := p[strings.ToUpper(key)]; ok {
		return v, true
	}
	return nil, false
}

// Float reads a numeric attribute. Numeric strings parse leniently; anything
// else yields the default.
func (p Properties) Float(key string, def float64) float64 {
	v, ok := p.lookup(key)
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}

// Int reads an integer attribute, truncating floats and parsing numeric
// strings leniently.
func (p Properties) Int(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case float32:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return def
}

// String reads a text attribute. Empty and whitespace-only values yield the
// default.
func (p Properties) String(key string, def string) string {
	v, ok := p.lookup(key)
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	return def
}

// FirstString scans keys in order and returns the first non-empty text
// value. Used for display names where layers disagree on the column.
func (p Properties) FirstString(keys ...string) (string, bool) {
	for _, key := range keys {
		if s := p.String(key, ""); s != "" {
			return s, true
		}
	}
	return "", false
}
