package loader

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Options carries format-specific loader options. The manager forwards them
// verbatim to the chosen loader; each loader validates its own keys and
// types, so an option it does not know is a load error.
type Options map[string]any

// Allow fails when an option key outside the given set is present.
func (o Options) Allow(keys ...string) error {
	for key := range o {
		known := false
		for _, k := range keys {
			if key == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown option %q (known: %s)", key, strings.Join(keys, ", "))
		}
	}
	return nil
}

// String reads a string option, falling back to def when absent.
func (o Options) String(key, def string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("option %q: want string, got %T", key, raw)
	}
	return s, nil
}

// Bool reads a bool option, falling back to def when absent.
func (o Options) Bool(key string, def bool) (bool, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("option %q: want bool, got %T", key, raw)
	}
	return b, nil
}

// Int reads an integer option, falling back to def when absent. Whole floats
// are accepted because decoded config and JSON numbers arrive as float64.
func (o Options) Int(key string, def int) (int, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	switch t := raw.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != float64(int(t)) {
			return 0, fmt.Errorf("option %q: want integer, got %v", key, t)
		}
		return int(t), nil
	default:
		return 0, fmt.Errorf("option %q: want integer, got %T", key, raw)
	}
}

// Rune reads a single-character string option, falling back to def when
// absent.
func (o Options) Rune(key string, def rune) (rune, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("option %q: want a one-character string, got %T", key, raw)
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("option %q: want exactly one character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
