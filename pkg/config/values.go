package config

import (
	"fmt"
	"time"
)

func stringValue(data map[string]any, key string) (string, bool, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, true, nil
}

func boolValue(data map[string]any, key string) (bool, bool, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, fmt.Errorf("%s must be a boolean, got %T", key, v)
	}
	return b, true, nil
}

// durationValue accepts "15s" style strings or a whole number of milliseconds.
func durationValue(data map[string]any, key string) (time.Duration, bool, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch d := v.(type) {
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, false, fmt.Errorf("%s: %w", key, err)
		}
		return parsed, true, nil
	case int:
		return time.Duration(d) * time.Millisecond, true, nil
	case int64:
		return time.Duration(d) * time.Millisecond, true, nil
	case float64:
		return time.Duration(d * float64(time.Millisecond)), true, nil
	default:
		return 0, false, fmt.Errorf("%s must be a duration, got %T", key, v)
	}
}

func stringsValue(data map[string]any, key string) ([]string, bool, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false, fmt.Errorf("%s[%d] must be a string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, false, fmt.Errorf("%s must be a list of strings, got %T", key, v)
	}
}
