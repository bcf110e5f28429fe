package wishlists

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/giftwell/wishlists-backend/internal/products"
	"github.com/giftwell/wishlists-backend/pkg/db"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	pkgerrors "github.com/giftwell/wishlists-backend/pkg/errors"
	"github.com/giftwell/wishlists-backend/pkg/logger"
	"github.com/giftwell/wishlists-backend/pkg/metrics"
)

const entityName = "wishlist"

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo        *Repository
	ProductRepo *products.Repository
	DB          *db.Client
	Logger      *logger.Logger
	Metrics     *metrics.EntityMetrics
}

// Service exposes the wishlist manager operations, including the cascading
// delete and the composite read view.
type Service interface {
	Create(ctx context.Context, wishlist *models.Wishlist) error
	Update(ctx context.Context, wishlist *models.Wishlist) error
	Delete(ctx context.Context, wishlist *models.Wishlist) (int64, error)
	Read(ctx context.Context, wishlistID int64) (map[string]any, error)
	DeleteProducts(ctx context.Context, wishlistID int64, productIDs []int64) (int64, error)
	Rename(ctx context.Context, wishlistID int64, name string) (*models.Wishlist, error)
	FindByID(ctx context.Context, id int64) (*models.Wishlist, error)
	FindAll(ctx context.Context) ([]models.Wishlist, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]map[string]any, error)
}

type service struct {
	repo        *Repository
	productRepo *products.Repository
	db          *db.Client
	logg        *logger.Logger
	metrics     *metrics.EntityMetrics
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        params.Repo,
		productRepo: params.ProductRepo,
		db:          params.DB,
		logg:        params.Logger,
		metrics:     params.Metrics,
	}, nil
}

// Create inserts the wishlist with a fresh identity.
func (s *service) Create(ctx context.Context, wishlist *models.Wishlist) error {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"name":    wishlist.Name,
		"user_id": wishlist.UserID,
	})
	s.logg.Info(ctx, "creating wishlist")

	wishlist.ID = 0
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, wishlist)
	})
	if err != nil {
		return s.storageFailure(ctx, "create", err)
	}
	s.metrics.IncSuccess(entityName, "create")
	return nil
}

// Update saves all fields of a previously persisted wishlist.
func (s *service) Update(ctx context.Context, wishlist *models.Wishlist) error {
	if wishlist.ID == 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidState, "update called with empty ID field")
	}
	ctx = s.logg.WithWishlistID(ctx, wishlist.ID)
	s.logg.Info(ctx, "updating wishlist")

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Save(ctx, wishlist)
	})
	if err != nil {
		return s.storageFailure(ctx, "update", err)
	}
	s.metrics.IncSuccess(entityName, "update")
	return nil
}

// Delete cascades: every owned product is removed first, then the wishlist
// row itself, all inside one transaction. Deleting a wishlist whose id is
// unset or no longer present is a logged no-op returning 0; a completed
// cascade returns 1.
func (s *service) Delete(ctx context.Context, wishlist *models.Wishlist) (int64, error) {
	ctx = s.logg.WithWishlistID(ctx, wishlist.ID)

	if wishlist.ID == 0 {
		s.logg.Warn(ctx, "delete skipped: wishlist has no assigned id")
		return 0, nil
	}

	current, err := s.repo.FindByID(ctx, wishlist.ID)
	if err != nil {
		if db.IsNotFound(err) {
			s.logg.Warn(ctx, "delete skipped: wishlist no longer exists")
			return 0, nil
		}
		return 0, s.storageFailure(ctx, "cascade_delete", err)
	}

	s.logg.Info(ctx, "deleting wishlist and owned products")
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		// children first: a surviving product must never outlive its wishlist
		if _, err := s.productRepo.WithTx(tx).DeleteAllByWishlistID(ctx, current.ID); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, current)
	})
	if err != nil {
		return 0, s.storageFailure(ctx, "cascade_delete", err)
	}
	s.metrics.IncSuccess(entityName, "cascade_delete")
	return 1, nil
}

// Read re-fetches the wishlist by id and assembles the composite view. A
// vanished wishlist is NOT_FOUND; this guards against stale in-memory
// references.
func (s *service) Read(ctx context.Context, wishlistID int64) (map[string]any, error) {
	wishlist, err := s.repo.FindByID(ctx, wishlistID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound,
				"wishlist with id %d was not found", wishlistID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load wishlist")
	}

	productRows, err := s.productRepo.FindAllByWishlistID(ctx, wishlistID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load wishlist products")
	}

	return NewVo(*wishlist, productRows).Serialize(), nil
}

// DeleteProducts removes each listed product that this wishlist actually
// owns and reports the count of successful deletions. Partial success is
// expected, not a failure: ids that do not resolve are simply skipped.
// Storage failures are aggregated without discarding the successes.
func (s *service) DeleteProducts(ctx context.Context, wishlistID int64, productIDs []int64) (int64, error) {
	ctx = s.logg.WithWishlistID(ctx, wishlistID)
	s.logg.Info(ctx, "deleting products from wishlist")

	var deleted int64
	var failures error
	for _, productID := range productIDs {
		var removed int64
		err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
			count, err := s.productRepo.WithTx(tx).DeleteByWishlistAndID(ctx, wishlistID, productID)
			removed = count
			return err
		})
		if err != nil {
			failures = multierr.Append(failures, fmt.Errorf("product %d: %w", productID, err))
			continue
		}
		deleted += removed
	}

	if failures != nil {
		s.metrics.IncFailure(entityName, "bulk_delete")
		s.logg.Error(ctx, "some product deletions rolled back", failures)
		return deleted, pkgerrors.Wrap(pkgerrors.CodeStorage, failures, "delete wishlist products")
	}
	s.metrics.IncSuccess(entityName, "bulk_delete")
	return deleted, nil
}

// Rename applies the duplicate-name resolution: a candidate colliding with
// another wishlist name of the same user gets the first free " 1", " 2", ...
// suffix, then the wishlist is updated.
func (s *service) Rename(ctx context.Context, wishlistID int64, name string) (*models.Wishlist, error) {
	wishlist, err := s.repo.FindByID(ctx, wishlistID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound,
				"wishlist with id %d was not found", wishlistID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load wishlist")
	}

	taken, err := s.repo.ListNamesByUserID(ctx, wishlist.UserID, wishlist.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list wishlist names")
	}

	resolved := dedupeName(name, taken)
	updated, err := Deserialize(map[string]any{
		"id":      wishlist.ID,
		"name":    resolved,
		"user_id": wishlist.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// FindByID returns the wishlist or nil when no row matches.
func (s *service) FindByID(ctx context.Context, id int64) (*models.Wishlist, error) {
	wishlist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find wishlist by id")
	}
	return wishlist, nil
}

func (s *service) FindAll(ctx context.Context) ([]models.Wishlist, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list wishlists")
	}
	return rows, nil
}

// FindAllByUserID returns one composite view per wishlist the user owns. The
// child products are fetched in a single batched query across all returned
// wishlist ids rather than one round trip per wishlist.
func (s *service) FindAllByUserID(ctx context.Context, userID int64) ([]map[string]any, error) {
	ctx = s.logg.WithUserID(ctx, userID)
	s.logg.Info(ctx, "listing wishlists for user")

	rows, err := s.repo.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list wishlists by user")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	wishlistIDs := make([]int64, 0, len(rows))
	for _, wishlist := range rows {
		wishlistIDs = append(wishlistIDs, wishlist.ID)
	}

	productRows, err := s.productRepo.FindAllByWishlistIDs(ctx, wishlistIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load wishlist products")
	}

	productsByWishlist := make(map[int64][]models.Product, len(rows))
	for _, product := range productRows {
		productsByWishlist[product.WishlistID] = append(productsByWishlist[product.WishlistID], product)
	}

	views := make([]map[string]any, 0, len(rows))
	for _, wishlist := range rows {
		views = append(views, NewVo(wishlist, productsByWishlist[wishlist.ID]).Serialize())
	}
	return views, nil
}

func (s *service) storageFailure(ctx context.Context, operation string, err error) error {
	s.metrics.IncFailure(entityName, operation)
	s.logg.Error(ctx, fmt.Sprintf("wishlist %s rolled back", operation), err)
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, fmt.Sprintf("wishlist %s failed", operation))
}
