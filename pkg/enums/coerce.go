package enums

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// coerceEnum resolves raw input against the names table of an ordinal enum.
// Precedence order: typed value, name string (case-insensitive), numeric
// string, integer ordinal. JSON decoding hands us float64 and json.Number,
// so both are accepted as ordinals when integral.
func coerceEnum[T ~int](value any, names map[T]string) (int, error) {
	switch v := value.(type) {
	case T:
		if _, ok := names[v]; !ok {
			return 0, fmt.Errorf("unknown value %d", int(v))
		}
		return int(v), nil
	case string:
		trimmed := strings.ToUpper(strings.TrimSpace(v))
		for ordinal, name := range names {
			if name == trimmed {
				return int(ordinal), nil
			}
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("unknown name %q", v)
		}
		return validateOrdinal(parsed, names)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("non-integer ordinal %q", v.String())
		}
		return validateOrdinal(int(parsed), names)
	case int:
		return validateOrdinal(v, names)
	case int32:
		return validateOrdinal(int(v), names)
	case int64:
		return validateOrdinal(int(v), names)
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("non-integer ordinal %v", v)
		}
		return validateOrdinal(int(v), names)
	default:
		return 0, fmt.Errorf("enum value or integer expected, got %T", value)
	}
}

func validateOrdinal[T ~int](ordinal int, names map[T]string) (int, error) {
	if _, ok := names[T(ordinal)]; !ok {
		return 0, fmt.Errorf("unknown ordinal %d", ordinal)
	}
	return ordinal, nil
}
