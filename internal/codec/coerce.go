// Package codec holds coercion helpers shared by the entity deserializers.
package codec

import (
	"encoding/json"
	"strconv"
	"strings"

	pkgerrors "github.com/giftwell/wishlists-backend/pkg/errors"
)

// Int64 accepts the integer shapes JSON decoding and the route layer hand
// us: native ints, integral floats, json.Number, and digit strings.
func Int64(field string, value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, pkgerrors.Newf(pkgerrors.CodeValidation,
				"integer value expected for field %q", field)
		}
		return int64(v), nil
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, pkgerrors.Newf(pkgerrors.CodeValidation,
				"integer value expected for field %q", field)
		}
		return parsed, nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, pkgerrors.Newf(pkgerrors.CodeValidation,
				"integer value expected for field %q", field)
		}
		return parsed, nil
	default:
		return 0, pkgerrors.Newf(pkgerrors.CodeValidation,
			"integer value expected for field %q", field)
	}
}
