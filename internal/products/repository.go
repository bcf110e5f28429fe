package products

import (
	"context"

	"github.com/giftwell/wishlists-backend/internal/repo"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	"github.com/giftwell/wishlists-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository encapsulates product persistence. List results are always
// ordered by ascending id so pagination and assertions stay deterministic.
type Repository struct {
	base repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.base.DB(ctx).Create(product).Error
}

// Save writes all fields of an existing product row.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.base.DB(ctx).Save(product).Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, product *models.Product) error {
	return r.base.DB(ctx).Delete(product).Error
}

// FindByID loads a single product. Missing rows surface as
// gorm.ErrRecordNotFound; the service layer decides how to report that.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.base.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDAndStatus loads a product matching both id and availability.
func (r *Repository) FindByIDAndStatus(ctx context.Context, id int64, status enums.Availability) (*models.Product, error) {
	var product models.Product
	err := r.base.DB(ctx).
		Where("id = ? AND status = ?", id, status).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByWishlistAndID loads the product owned by the given wishlist.
func (r *Repository) FindByWishlistAndID(ctx context.Context, wishlistID, productID int64) (*models.Product, error) {
	var product models.Product
	err := r.base.DB(ctx).
		Where("wishlist_id = ? AND id = ?", wishlistID, productID).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll returns every product ordered by ascending id.
func (r *Repository) FindAll(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.base.DB(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindAllByIDs returns the products whose ids are in the given list,
// optionally filtered by availability.
func (r *Repository) FindAllByIDs(ctx context.Context, ids []int64, status *enums.Availability) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := r.base.DB(ctx).Where("id IN ?", ids)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var rows []models.Product
	err := query.Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindByName returns all products with the exact name.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.Product, error) {
	var rows []models.Product
	err := r.base.DB(ctx).Where("name = ?", name).Order("id ASC").Find(&rows).Error
	return rows, err
}

// FindAllByWishlistID returns the products owned by a wishlist.
func (r *Repository) FindAllByWishlistID(ctx context.Context, wishlistID int64) ([]models.Product, error) {
	var rows []models.Product
	err := r.base.DB(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindAllByWishlistIDs returns the products owned by any of the given
// wishlists in one round trip, ordered by ascending id.
func (r *Repository) FindAllByWishlistIDs(ctx context.Context, wishlistIDs []int64) ([]models.Product, error) {
	if len(wishlistIDs) == 0 {
		return nil, nil
	}
	var rows []models.Product
	err := r.base.DB(ctx).
		Where("wishlist_id IN ?", wishlistIDs).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// DeleteByWishlistAndID removes the product owned by the wishlist, returning
// the number of rows removed. A missing pair is a zero-count no-op.
func (r *Repository) DeleteByWishlistAndID(ctx context.Context, wishlistID, productID int64) (int64, error) {
	result := r.base.DB(ctx).
		Where("wishlist_id = ? AND id = ?", wishlistID, productID).
		Delete(&models.Product{})
	return result.RowsAffected, result.Error
}

// DeleteAllByWishlistID removes every product owned by the wishlist,
// returning the number of rows removed.
func (r *Repository) DeleteAllByWishlistID(ctx context.Context, wishlistID int64) (int64, error) {
	result := r.base.DB(ctx).
		Where("wishlist_id = ?", wishlistID).
		Delete(&models.Product{})
	return result.RowsAffected, result.Error
}
