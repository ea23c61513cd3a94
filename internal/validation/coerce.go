package validation

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Truthy reports the truthiness of a decoded JSON value.
//
// null, false, 0, NaN and "" are false. Every other value is true,
// including the string "false", empty objects and empty arrays.
func Truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0 && !math.IsNaN(value)
	case float32:
		return value != 0 && !math.IsNaN(float64(value))
	case int:
		return value != 0
	case int64:
		return value != 0
	case json.Number:
		f, err := value.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// TextOf converts a decoded JSON value into todo text.
//
// Falsy values become "". Strings are trimmed. Numbers and booleans use
// their usual string form; objects and arrays their JSON encoding.
func TextOf(v any) string {
	if !Truthy(v) {
		return ""
	}

	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}

	if s, err := cast.ToStringE(v); err == nil {
		return s
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(encoded)
}
