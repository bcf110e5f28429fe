package products

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/giftwell/wishlists-backend/internal/codec"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	"github.com/giftwell/wishlists-backend/pkg/enums"
	pkgerrors "github.com/giftwell/wishlists-backend/pkg/errors"
)

var validate = validator.New()

const nameMaxLength = 64

// productColumns is the set of keys a caller may supply to Deserialize.
var productColumns = map[string]struct{}{
	"id":                   {},
	"name":                 {},
	"price":                {},
	"status":               {},
	"pic_url":              {},
	"short_desc":           {},
	"inventory_product_id": {},
	"wishlist_id":          {},
	"in_cart_status":       {},
}

// requiredProductFields are the non-null columns, checked in this order so
// error messages are deterministic.
var requiredProductFields = []string{"name", "price", "status", "inventory_product_id", "wishlist_id"}

// Deserialize validates a generic string-keyed mapping into a Product. It
// never touches persistence. Violations surface as VALIDATION_ERROR naming
// the offending field, checked in a fixed order: unknown keys, required
// presence, name shape and length, status, price, then the remaining
// columns. An empty name is allowed; only the length bound applies.
func Deserialize(data map[string]any) (*models.Product, error) {
	for key, value := range data {
		if _, ok := productColumns[key]; !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid product: unknown field %q with value %v", key, value)
		}
	}

	for _, field := range requiredProductFields {
		value, ok := data[field]
		if !ok || value == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid product: missing field %q", field)
		}
	}

	product := &models.Product{}

	name, ok := data["name"].(string)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"invalid product: field \"name\" must be a string")
	}
	if utf8.RuneCountInString(name) > nameMaxLength {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation,
			"invalid product: field %q must not exceed %d characters", "name", nameMaxLength)
	}
	product.Name = name

	status, err := enums.CoerceAvailability(data["status"])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err,
			fmt.Sprintf("invalid product: %v", err))
	}
	product.Status = status

	price, err := coerceDecimal("price", data["price"])
	if err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"invalid product: field \"price\" must not be negative")
	}
	product.Price = price

	inventoryProductID, err := codec.Int64("inventory_product_id", data["inventory_product_id"])
	if err != nil {
		return nil, err
	}
	product.InventoryProductID = inventoryProductID

	wishlistID, err := codec.Int64("wishlist_id", data["wishlist_id"])
	if err != nil {
		return nil, err
	}
	product.WishlistID = wishlistID

	if value, ok := data["id"]; ok && value != nil {
		id, err := codec.Int64("id", value)
		if err != nil {
			return nil, err
		}
		product.ID = id
	}

	if value, ok := data["pic_url"]; ok && value != nil {
		picURL, ok := value.(string)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"invalid product: field \"pic_url\" must be a string")
		}
		product.PicURL = &picURL
	}

	if value, ok := data["short_desc"]; ok && value != nil {
		shortDesc, ok := value.(string)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"invalid product: field \"short_desc\" must be a string")
		}
		product.ShortDesc = &shortDesc
	}

	if value, ok := data["in_cart_status"]; ok && value != nil {
		inCartStatus, err := enums.CoerceInCartStatus(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err,
				fmt.Sprintf("invalid product: %v", err))
		}
		product.InCartStatus = inCartStatus
	}

	if err := validate.Struct(product); err != nil {
		return nil, validationError("product", err)
	}

	return product, nil
}

// Serialize renders a Product as a string-keyed mapping suitable for JSON
// encoding. Every field is emitted unconditionally; enums are rendered as
// their names and the decimal price as a float.
func Serialize(product *models.Product) map[string]any {
	var picURL, shortDesc any
	if product.PicURL != nil {
		picURL = *product.PicURL
	}
	if product.ShortDesc != nil {
		shortDesc = *product.ShortDesc
	}
	return map[string]any{
		"id":                   product.ID,
		"name":                 product.Name,
		"price":                product.Price.InexactFloat64(),
		"status":               product.Status.String(),
		"pic_url":              picURL,
		"short_desc":           shortDesc,
		"inventory_product_id": product.InventoryProductID,
		"wishlist_id":          product.WishlistID,
		"in_cart_status":       product.InCartStatus.String(),
	}
}

// validationError translates validator field errors into the typed
// validation error naming the violated constraint.
func validationError(entity string, err error) error {
	var fieldErrors validator.ValidationErrors
	if ok := asValidationErrors(err, &fieldErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid %s: field %q must not be empty", entity, field)
		case "max":
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid %s: field %q must not exceed %s characters", entity, field, fe.Param())
		default:
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"invalid %s: field %q failed %s constraint", entity, field, fe.Tag())
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err,
		fmt.Sprintf("invalid %s", entity))
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = fieldErrors
	return true
}

func coerceDecimal(field string, value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		parsed, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, pkgerrors.Newf(pkgerrors.CodeValidation,
				"numeric value expected for field %q", field)
		}
		return parsed, nil
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, pkgerrors.Newf(pkgerrors.CodeValidation,
				"numeric value expected for field %q", field)
		}
		return parsed, nil
	default:
		return decimal.Decimal{}, pkgerrors.Newf(pkgerrors.CodeValidation,
			"numeric value expected for field %q", field)
	}
}
