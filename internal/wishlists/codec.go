package wishlists

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/giftwell/wishlists-backend/internal/codec"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	pkgerrors "github.com/giftwell/wishlists-backend/pkg/errors"
)

var validate = validator.New()

var wishlistColumns = map[string]struct{}{
	"id":      {},
	"name":    {},
	"user_id": {},
}

// Deserialize validates a generic string-keyed mapping into a Wishlist. The
// name must be a non-empty string of at most 64 characters and user_id must
// be an integer; violations surface as VALIDATION_ERROR naming the violated
// constraint. Persistence is never touched.
func Deserialize(data map[string]any) (*models.Wishlist, error) {
	for key, value := range data {
		if _, ok := wishlistColumns[key]; !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid wishlist: unknown field %q with value %v", key, value)
		}
	}

	for _, field := range []string{"name", "user_id"} {
		value, ok := data[field]
		if !ok || value == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid wishlist: missing field %q", field)
		}
	}

	wishlist := &models.Wishlist{}

	name, ok := data["name"].(string)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"invalid wishlist: field \"name\" must be a string")
	}
	wishlist.Name = name

	userID, err := codec.Int64("user_id", data["user_id"])
	if err != nil {
		return nil, err
	}
	wishlist.UserID = userID

	if value, ok := data["id"]; ok && value != nil {
		id, err := codec.Int64("id", value)
		if err != nil {
			return nil, err
		}
		wishlist.ID = id
	}

	if err := validate.Struct(wishlist); err != nil {
		return nil, validationError(err)
	}

	return wishlist, nil
}

// Serialize renders a Wishlist as a string-keyed mapping suitable for JSON
// encoding.
func Serialize(wishlist *models.Wishlist) map[string]any {
	return map[string]any{
		"id":      wishlist.ID,
		"name":    wishlist.Name,
		"user_id": wishlist.UserID,
	}
}

func validationError(err error) error {
	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid wishlist: field %q must not be empty", field)
		case "max":
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid wishlist: field %q must not exceed %s characters", field, fe.Param())
		default:
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid wishlist: field %q failed %s constraint", field, fe.Tag())
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wishlist")
}
