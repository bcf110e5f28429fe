package models

import "time"

// Wishlist is a named collection of products owned by a user. A wishlist
// exists independently of its products; its id is assigned on first persist
// and immutable afterwards.
type Wishlist struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:64;not null" validate:"required,max=64"`
	UserID    int64     `gorm:"column:user_id;not null;index:wishlists_user_id_idx"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
