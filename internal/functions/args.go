package functions

// Model-produced and tool-route arguments arrive with inconsistent
// spellings (camelCase, snake_case, synonyms). Each logical parameter has a
// fixed, ordered list of accepted keys and the first present value wins.
// The helpers are exported because the direct tool route extracts the same
// parameters from raw request bodies.

func StringArg(args map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := args[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func BoolArg(args map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := args[key].(bool); ok {
			return v
		}
	}
	return false
}

func IntArg(args map[string]any, keys ...string) int64 {
	for _, key := range keys {
		switch v := args[key].(type) {
		case float64:
			return int64(v)
		case int:
			return int64(v)
		case int64:
			return v
		}
	}
	return 0
}
