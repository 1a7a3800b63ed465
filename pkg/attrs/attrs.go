// Package attrs reads values back out of slog-style key/value slices.
package attrs

// ExtractString returns the string value paired with key in a
// [key1, value1, key2, value2, ...] slice, or "" when the key is absent or
// its value is not a string.
func ExtractString(kv []any, key string) string {
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); !ok || k != key {
			continue
		}
		v, _ := kv[i+1].(string)
		return v
	}
	return ""
}
