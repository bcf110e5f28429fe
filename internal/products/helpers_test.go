package products

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/giftwell/wishlists-backend/pkg/db"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	"github.com/giftwell/wishlists-backend/pkg/logger"
	"github.com/giftwell/wishlists-backend/pkg/metrics"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Wishlist{}, &models.Product{}))
	return conn
}

// newFKEnforcedDB builds the schema by hand so sqlite enforces the
// wishlist foreign key the way the production migrations do.
func newFKEnforcedDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Wishlist{}))

	ddl := `CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL,
		status INTEGER NOT NULL DEFAULT 1,
		pic_url TEXT,
		short_desc TEXT,
		inventory_product_id INTEGER NOT NULL,
		wishlist_id INTEGER NOT NULL,
		in_cart_status INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		FOREIGN KEY (wishlist_id) REFERENCES wishlists(id) ON DELETE CASCADE
	)`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := newTestDB(t)
	return newServiceOn(t, conn), conn
}

func newServiceOn(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	logg := logger.New(logger.Options{
		ServiceName: "products-test",
		Level:       logger.ParseLevel("error"),
		Output:      io.Discard,
	})
	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(conn),
		DB:      db.FromConn(conn),
		Logger:  logg,
		Metrics: metrics.NewEntityMetrics(nil),
	})
	require.NoError(t, err)
	return svc
}
