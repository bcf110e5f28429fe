package wishlists

import (
	"context"

	"github.com/giftwell/wishlists-backend/internal/repo"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Create inserts a new wishlist row.
func (r *Repository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	return r.base.DB(ctx).Create(wishlist).Error
}

// Save writes all fields of an existing wishlist row.
func (r *Repository) Save(ctx context.Context, wishlist *models.Wishlist) error {
	return r.base.DB(ctx).Save(wishlist).Error
}

// Delete removes the wishlist row.
func (r *Repository) Delete(ctx context.Context, wishlist *models.Wishlist) error {
	return r.base.DB(ctx).Delete(wishlist).Error
}

// FindByID loads a single wishlist. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.base.DB(ctx).First(&wishlist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// FindAll returns every wishlist ordered by ascending id.
func (r *Repository) FindAll(ctx context.Context) ([]models.Wishlist, error) {
	var rows []models.Wishlist
	err := r.base.DB(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindAllByUserID returns the wishlists owned by a user ordered by
// ascending id.
func (r *Repository) FindAllByUserID(ctx context.Context, userID int64) ([]models.Wishlist, error) {
	var rows []models.Wishlist
	err := r.base.DB(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListNamesByUserID returns the names of a user's wishlists, optionally
// excluding one wishlist id. Used by the rename deduplication probe.
func (r *Repository) ListNamesByUserID(ctx context.Context, userID int64, excludeID int64) ([]string, error) {
	query := r.base.DB(ctx).
		Model(&models.Wishlist{}).
		Where("user_id = ?", userID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var names []string
	if err := query.Order("id ASC").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
