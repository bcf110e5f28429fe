package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/giftwell/wishlists-backend/internal/products"
	"github.com/giftwell/wishlists-backend/internal/wishlists"
	"github.com/giftwell/wishlists-backend/pkg/config"
	"github.com/giftwell/wishlists-backend/pkg/db"
	"github.com/giftwell/wishlists-backend/pkg/db/models"
	"github.com/giftwell/wishlists-backend/pkg/enums"
	"github.com/giftwell/wishlists-backend/pkg/logger"
	"github.com/giftwell/wishlists-backend/pkg/metrics"
	"github.com/giftwell/wishlists-backend/pkg/migrate"
)

type seedProduct struct {
	name               string
	price              string
	picURL             string
	shortDesc          string
	inventoryProductID int64
}

var demoProducts = []seedProduct{
	{"toy", "11.5", "www.toy.com/1.png", "this is a toy", 3},
	{"book", "20.5", "www.book.com/1.png", "this is a book", 4},
	{"tv", "1001.5", "www.tv.com/1.png", "this is a tv", 15},
	{"pepsi", "7.5", "www.drinks.com/pepsi.png", "this is pepsi coke", 1},
	{"bread", "3.5", "www.bakery.com/1.png", "this is a bread", 20},
	{"soccer", "23.5", "www.soccer.com/1.png", "this is a soccer", 5},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithField(ctx, "seed_run", uuid.NewString())

	if !cfg.Seed.Enabled {
		logg.Warn(ctx, "seeding disabled, set WISHLISTS_SEED_ENABLED=true to run")
		return
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "migrations", err)

	entityMetrics := metrics.NewEntityMetrics(prometheus.NewRegistry())

	wishlistSvc, err := wishlists.NewService(wishlists.ServiceParams{
		Repo:        wishlists.NewRepository(dbClient.DB()),
		ProductRepo: products.NewRepository(dbClient.DB()),
		DB:          dbClient,
		Logger:      logg,
		Metrics:     entityMetrics,
	})
	requireResource(ctx, logg, "wishlist service", err)

	productSvc, err := products.NewService(products.ServiceParams{
		Repo:    products.NewRepository(dbClient.DB()),
		DB:      dbClient,
		Logger:  logg,
		Metrics: entityMetrics,
	})
	requireResource(ctx, logg, "product service", err)

	if err := seed(ctx, cfg.Seed.UserID, wishlistSvc, productSvc); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seeding completed")
}

// seed creates two demo wishlists through the managers and fills the first
// with the demo catalog.
func seed(ctx context.Context, userID int64, wishlistSvc wishlists.Service, productSvc products.Service) error {
	first := &models.Wishlist{Name: "First wishlist", UserID: userID}
	if err := wishlistSvc.Create(ctx, first); err != nil {
		return fmt.Errorf("create first wishlist: %w", err)
	}

	second := &models.Wishlist{Name: "Second wishlist", UserID: userID}
	if err := wishlistSvc.Create(ctx, second); err != nil {
		return fmt.Errorf("create second wishlist: %w", err)
	}

	for _, item := range demoProducts {
		price, err := decimal.NewFromString(item.price)
		if err != nil {
			return fmt.Errorf("parse price for %q: %w", item.name, err)
		}
		picURL := item.picURL
		shortDesc := item.shortDesc
		product := &models.Product{
			Name:               item.name,
			Price:              price,
			Status:             enums.AvailabilityAvailable,
			PicURL:             &picURL,
			ShortDesc:          &shortDesc,
			InventoryProductID: item.inventoryProductID,
			WishlistID:         first.ID,
		}
		if err := productSvc.Create(ctx, product); err != nil {
			return fmt.Errorf("create product %q: %w", item.name, err)
		}
	}
	return nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
