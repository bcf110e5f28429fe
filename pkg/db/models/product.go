package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/giftwell/wishlists-backend/pkg/enums"
)

// Product is an item referencing the external inventory catalog, placed in
// exactly one wishlist (direct FK ownership, not sharing). InCartStatus only
// changes through the cart-placement operation.
type Product struct {
	ID                 int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string             `gorm:"column:name;size:64;not null" validate:"max=64"`
	Price              decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Status             enums.Availability `gorm:"column:status;type:smallint;not null;default:1"`
	PicURL             *string            `gorm:"column:pic_url"`
	ShortDesc          *string            `gorm:"column:short_desc"`
	InventoryProductID int64              `gorm:"column:inventory_product_id;not null"`
	WishlistID         int64              `gorm:"column:wishlist_id;not null;index:products_wishlist_id_idx"`
	InCartStatus       enums.InCartStatus `gorm:"column:in_cart_status;type:smallint;not null;default:0"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
