package loader

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFilterArgs builds a FilterSpec from column=value|value arguments, the
// form filters take on the command line and in query strings. Filter order
// follows argument order.
func ParseFilterArgs(args []string) (*FilterSpec, error) {
	spec := NewFilterSpec()
	for _, raw := range args {
		column, list, ok := strings.Cut(raw, "=")
		column = strings.TrimSpace(column)
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid filter %q (expected column=value or column=value|value)", raw)
		}
		values := strings.Split(list, "|")
		accepted := make([]any, 0, len(values))
		for _, value := range values {
			accepted = append(accepted, ParseScalar(value))
		}
		spec = spec.Where(column, accepted...)
	}
	if err := spec.Err(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ParseOptionArgs builds loader Options from key=value arguments.
func ParseOptionArgs(args []string) (Options, error) {
	if len(args) == 0 {
		return nil, nil
	}
	opts := make(Options, len(args))
	for _, raw := range args {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q (expected key=value)", raw)
		}
		opts[key] = ParseScalar(value)
	}
	return opts, nil
}

// ParseScalar maps argument text to a typed scalar: the word null is the null
// marker, true/false are bools, numeric text is a number, anything else stays
// a string. Double quotes force the enclosed text to stay a string, so "null"
// and "42" match cells holding those literal words.
func ParseScalar(text string) any {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text[1 : len(text)-1]
	}
	switch text {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}
