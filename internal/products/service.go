package products

import (
	"context"
	"fmt"

	"github.com/giftwell/wishlists-backend/pkg/db"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	"github.com/giftwell/wishlists-backend/pkg/enums"
	pkgerrors "github.com/giftwell/wishlists-backend/pkg/errors"
	"github.com/giftwell/wishlists-backend/pkg/logger"
	"github.com/giftwell/wishlists-backend/pkg/metrics"
	"gorm.io/gorm"
)

const entityName = "product"

// ServiceParams groups dependencies for the product service.
type ServiceParams struct {
	Repo    *Repository
	DB      *db.Client
	Logger  *logger.Logger
	Metrics *metrics.EntityMetrics
}

// Service exposes the product manager operations. Every mutation runs in its
// own transaction; storage failures roll back and surface as STORAGE_ERROR
// with the in-memory entity left exactly as the caller set it.
type Service interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, product *models.Product) error
	PlaceInCart(ctx context.Context, wishlistID, productID int64) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindByIDAndStatus(ctx context.Context, id int64, status enums.Availability) (*models.Product, error)
	FindByWishlistAndID(ctx context.Context, wishlistID, productID int64) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindAllByIDs(ctx context.Context, ids []int64, status *enums.Availability) ([]models.Product, error)
	FindByName(ctx context.Context, name string) ([]models.Product, error)
	FindAllByWishlistID(ctx context.Context, wishlistID int64) ([]models.Product, error)
	DeleteByWishlistAndID(ctx context.Context, wishlistID, productID int64) (int64, error)
	DeleteAllByWishlistID(ctx context.Context, wishlistID int64) (int64, error)
}

type service struct {
	repo    *Repository
	db      *db.Client
	logg    *logger.Logger
	metrics *metrics.EntityMetrics
}

// NewService builds a product service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    params.Repo,
		db:      params.DB,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Create inserts the product with a fresh identity. The in-cart flag always
// starts at DEFAULT regardless of what the caller supplied; only the
// cart-placement operation may move it. A wishlist id that resolves to no
// wishlist surfaces as NOT_FOUND, not as a storage failure.
func (s *service) Create(ctx context.Context, product *models.Product) error {
	ctx = s.logg.WithField(ctx, "name", product.Name)
	s.logg.Info(ctx, "creating product")

	product.ID = 0
	product.InCartStatus = enums.InCartStatusDefault

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, product)
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			s.logg.Warn(ctx, "create rejected: wishlist does not exist")
			return pkgerrors.Newf(pkgerrors.CodeNotFound,
				"wishlist with id %d was not found", product.WishlistID)
		}
		return s.storageFailure(ctx, "create", err)
	}
	s.metrics.IncSuccess(entityName, "create")
	return nil
}

// Update saves all fields of a previously persisted product. A missing id is
// a programming error, not a user error.
func (s *service) Update(ctx context.Context, product *models.Product) error {
	if product.ID == 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidState, "update called with empty ID field")
	}
	ctx = s.logg.WithProductID(ctx, product.ID)
	s.logg.Info(ctx, "updating product")

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Save(ctx, product)
	})
	if err != nil {
		return s.storageFailure(ctx, "update", err)
	}
	s.metrics.IncSuccess(entityName, "update")
	return nil
}

// Delete removes the product row.
func (s *service) Delete(ctx context.Context, product *models.Product) error {
	ctx = s.logg.WithProductID(ctx, product.ID)
	s.logg.Info(ctx, "deleting product")

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, product)
	})
	if err != nil {
		return s.storageFailure(ctx, "delete", err)
	}
	s.metrics.IncSuccess(entityName, "delete")
	return nil
}

// PlaceInCart marks the product owned by the wishlist as placed in the cart.
// This is the only path that mutates in-cart state.
func (s *service) PlaceInCart(ctx context.Context, wishlistID, productID int64) (*models.Product, error) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"wishlist_id": wishlistID,
		"product_id":  productID,
	})
	s.logg.Info(ctx, "placing product in cart")

	product, err := s.repo.FindByWishlistAndID(ctx, wishlistID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound,
				"product %d was not found in wishlist %d", productID, wishlistID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load product")
	}

	product.InCartStatus = enums.InCartStatusInCart
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Save(ctx, product)
	})
	if err != nil {
		return nil, s.storageFailure(ctx, "update", err)
	}
	s.metrics.IncSuccess(entityName, "update")
	return product, nil
}

// FindByID returns the product or nil when no row matches. Zero rows matched
// is an empty result, not an error.
func (s *service) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find product by id")
	}
	return product, nil
}

// FindByIDAndStatus returns the product matching id and availability, or nil.
func (s *service) FindByIDAndStatus(ctx context.Context, id int64, status enums.Availability) (*models.Product, error) {
	product, err := s.repo.FindByIDAndStatus(ctx, id, status)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find product by id and status")
	}
	return product, nil
}

// FindByWishlistAndID returns the product owned by the wishlist, or nil.
func (s *service) FindByWishlistAndID(ctx context.Context, wishlistID, productID int64) (*models.Product, error) {
	product, err := s.repo.FindByWishlistAndID(ctx, wishlistID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find product by wishlist and id")
	}
	return product, nil
}

func (s *service) FindAll(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products")
	}
	return rows, nil
}

func (s *service) FindAllByIDs(ctx context.Context, ids []int64, status *enums.Availability) ([]models.Product, error) {
	rows, err := s.repo.FindAllByIDs(ctx, ids, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products by ids")
	}
	return rows, nil
}

func (s *service) FindByName(ctx context.Context, name string) ([]models.Product, error) {
	rows, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products by name")
	}
	return rows, nil
}

func (s *service) FindAllByWishlistID(ctx context.Context, wishlistID int64) ([]models.Product, error) {
	rows, err := s.repo.FindAllByWishlistID(ctx, wishlistID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products by wishlist")
	}
	return rows, nil
}

// DeleteByWishlistAndID removes one product by ownership pair. Returns the
// count of rows removed; a missing pair is a zero-count no-op.
func (s *service) DeleteByWishlistAndID(ctx context.Context, wishlistID, productID int64) (int64, error) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"wishlist_id": wishlistID,
		"product_id":  productID,
	})
	s.logg.Info(ctx, "deleting product from wishlist")

	var removed int64
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.WithTx(tx).DeleteByWishlistAndID(ctx, wishlistID, productID)
		removed = count
		return err
	})
	if err != nil {
		return 0, s.storageFailure(ctx, "delete", err)
	}
	s.metrics.IncSuccess(entityName, "delete")
	return removed, nil
}

// DeleteAllByWishlistID removes every product owned by the wishlist and
// returns the count of rows actually removed.
func (s *service) DeleteAllByWishlistID(ctx context.Context, wishlistID int64) (int64, error) {
	ctx = s.logg.WithWishlistID(ctx, wishlistID)
	s.logg.Info(ctx, "deleting all products from wishlist")

	var removed int64
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.WithTx(tx).DeleteAllByWishlistID(ctx, wishlistID)
		removed = count
		return err
	})
	if err != nil {
		return 0, s.storageFailure(ctx, "bulk_delete", err)
	}
	s.metrics.IncSuccess(entityName, "bulk_delete")
	return removed, nil
}

func (s *service) storageFailure(ctx context.Context, operation string, err error) error {
	s.metrics.IncFailure(entityName, operation)
	s.logg.Error(ctx, fmt.Sprintf("product %s rolled back", operation), err)
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("product %s failed", operation))
}
