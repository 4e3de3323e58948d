package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// seed copies the store-config products into catalog_products so the API can
// run with STOREFRONT_PRODUCTS_SOURCE=db.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	path := flag.String("catalog", "", "store config JSON (defaults to STOREFRONT_CATALOG_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	source := cfg.Catalog.Path
	if *path != "" {
		source = *path
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"catalog": source,
	})

	cat, err := catalog.Load(source)
	requireResource(ctx, logg, "catalog", err)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	var deactivated int
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var syncErr error
		deactivated, syncErr = catalog.NewRepository(tx).Sync(ctx, cat.Products())
		return syncErr
	})
	requireResource(ctx, logg, "catalog sync", err)

	logg.Info(logg.WithFields(ctx, map[string]any{
		"products":    len(cat.Products()),
		"deactivated": deactivated,
	}), "catalog seeded")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
