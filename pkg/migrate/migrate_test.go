package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/migrate"
)

func TestCatalogProductsMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_catalog_products.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no catalog products migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS catalog_products",
		"CHECK (type IN ('voucher', 'physical'))",
		"CREATE INDEX IF NOT EXISTS idx_catalog_products_active_position",
		"DROP TABLE IF EXISTS catalog_products",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("expected committed migrations to validate: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected invalid filename to fail validation")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Product Tags!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_product_tags.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
	if _, err := migrate.CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatalf("expected error for name that sanitizes to nothing")
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DBConfig{DSN: "file:" + t.Name() + "?mode=memory&cache=shared", Driver: config.DBDriverSQLite}
	client, err := db.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if got := migrate.Dialect(cfg); got != "sqlite3" {
		t.Fatalf("expected sqlite3 dialect, got %s", got)
	}

	if err := migrate.Run(ctx, sqlDB, migrate.Dialect(cfg), "migrations", "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}
	if !client.DB().Migrator().HasTable("catalog_products") {
		t.Fatalf("expected catalog_products table after up")
	}

	if err := migrate.Run(ctx, sqlDB, migrate.Dialect(cfg), "migrations", "down"); err != nil {
		t.Fatalf("goose down: %v", err)
	}
	if client.DB().Migrator().HasTable("catalog_products") {
		t.Fatalf("expected catalog_products table to be dropped")
	}
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvProd}, DB: config.DBConfig{AutoMigrate: true}}
	if err := migrate.MaybeRunDev(context.Background(), cfg, nil, nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
