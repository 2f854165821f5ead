package tools

import "strconv"

// Models are sloppy with numeric arguments: quantities arrive as floats,
// strings, or garbage. Coercion degrades to a safe default instead of
// failing the call.

func stringArg(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}

// intArg coerces params[key] to an int no smaller than min.
func intArg(params map[string]any, key string, fallback, min int) int {
	n := fallback
	switch v := params[key].(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	if n < min {
		n = fallback
	}
	return n
}

// floatArg coerces params[key] to a float64, returning ok=false when the
// value is absent or unusable so the caller can skip the filter entirely.
func floatArg(params map[string]any, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
