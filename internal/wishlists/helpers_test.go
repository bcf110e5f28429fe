package wishlists

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/giftwell/wishlists-backend/internal/products"
	"github.com/giftwell/wishlists-backend/pkg/db"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	"github.com/giftwell/wishlists-backend/pkg/enums"
	"github.com/giftwell/wishlists-backend/pkg/logger"
	"github.com/giftwell/wishlists-backend/pkg/metrics"
)

type testEnv struct {
	wishlists Service
	products  products.Service
	conn      *gorm.DB
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	return newTestEnvWithLogger(t, io.Discard, "error")
}

// newLoggedEnv captures the services' log output for assertions.
func newLoggedEnv(t *testing.T) (testEnv, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return newTestEnvWithLogger(t, buf, "info"), buf
}

func newTestEnvWithLogger(t *testing.T, out io.Writer, level string) testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Wishlist{}, &models.Product{}))

	logg := logger.New(logger.Options{
		ServiceName: "wishlists-test",
		Level:       logger.ParseLevel(level),
		Output:      out,
	})
	client := db.FromConn(conn)
	entityMetrics := metrics.NewEntityMetrics(nil)

	wishlistSvc, err := NewService(ServiceParams{
		Repo:        NewRepository(conn),
		ProductRepo: products.NewRepository(conn),
		DB:          client,
		Logger:      logg,
		Metrics:     entityMetrics,
	})
	require.NoError(t, err)

	productSvc, err := products.NewService(products.ServiceParams{
		Repo:    products.NewRepository(conn),
		DB:      client,
		Logger:  logg,
		Metrics: entityMetrics,
	})
	require.NoError(t, err)

	return testEnv{wishlists: wishlistSvc, products: productSvc, conn: conn}
}

func (e testEnv) createWishlist(t *testing.T, name string, userID int64) *models.Wishlist {
	t.Helper()

	wishlist := &models.Wishlist{Name: name, UserID: userID}
	require.NoError(t, e.wishlists.Create(context.Background(), wishlist))
	return wishlist
}

func (e testEnv) createProduct(t *testing.T, name string, wishlistID int64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:               name,
		Price:              decimal.RequireFromString("11.50"),
		Status:             enums.AvailabilityAvailable,
		InventoryProductID: 3,
		WishlistID:         wishlistID,
	}
	require.NoError(t, e.products.Create(context.Background(), product))
	return product
}
