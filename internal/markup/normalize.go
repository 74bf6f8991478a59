package markup

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeValue flattens decoded content into a string.
// Lists are joined with newlines after normalizing each element, objects
// are rendered as JSON, and nil becomes the empty string.
func NormalizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, "\n")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = NormalizeValue(item)
		}
		return strings.Join(parts, "\n")
	case map[string]any:
		return encodeObject(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// encodeObject renders an object as compact JSON with sorted keys.
func encodeObject(m map[string]any) string {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprint(m)
	}
	return string(data)
}
