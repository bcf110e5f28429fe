package wishlists

import (
	"github.com/giftwell/wishlists-backend/internal/products"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
)

// Vo is the ephemeral composite read view: one wishlist plus its resolved
// products. It is assembled on read and never persisted.
type Vo struct {
	Wishlist models.Wishlist
	Products []models.Product
}

// NewVo pairs a wishlist with its already-fetched products. Product order is
// the caller's; no independent sort is applied here.
func NewVo(wishlist models.Wishlist, productRows []models.Product) Vo {
	return Vo{Wishlist: wishlist, Products: productRows}
}

// Serialize renders the composite view as a string-keyed mapping with the
// products nested under "products" in the order they were fetched.
func (v Vo) Serialize() map[string]any {
	serialized := Serialize(&v.Wishlist)
	productMaps := make([]map[string]any, 0, len(v.Products))
	for i := range v.Products {
		productMaps = append(productMaps, products.Serialize(&v.Products[i]))
	}
	serialized["products"] = productMaps
	return serialized
}
