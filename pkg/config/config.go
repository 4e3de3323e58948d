package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Cookie    CookieConfig
	DB        DBConfig
	Redis     RedisConfig
	RateLimit CheckoutRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.validate(cfg.Catalog); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	Path           string `envconfig:"STOREFRONT_CATALOG_PATH" default:"data/store-config.json"`
	ProductsSource string `envconfig:"STOREFRONT_PRODUCTS_SOURCE" default:"file"`
}

// FromDB reports whether the product list is read from the database.
func (c CatalogConfig) FromDB() bool {
	return strings.EqualFold(strings.TrimSpace(c.ProductsSource), ProductsSourceDB)
}

func (c CatalogConfig) validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("%s is required", EnvCatalogPath)
	}
	switch strings.ToLower(strings.TrimSpace(c.ProductsSource)) {
	case ProductsSourceFile, ProductsSourceDB:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvProductsSource, ProductsSourceFile, ProductsSourceDB, c.ProductsSource)
	}
}

type CookieConfig struct {
	Name   string        `envconfig:"STOREFRONT_CART_COOKIE_NAME" default:"cart"`
	Secure bool          `envconfig:"STOREFRONT_CART_COOKIE_SECURE" default:"false"`
	MaxAge time.Duration `envconfig:"STOREFRONT_CART_COOKIE_MAX_AGE" default:"720h"`
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	AutoMigrate     bool          `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"false"`
}

// Enabled reports whether a database connection has been configured.
func (db DBConfig) Enabled() bool {
	return strings.TrimSpace(db.DSN) != ""
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

func (db DBConfig) validate(catalog CatalogConfig) error {
	if catalog.FromDB() && !db.Enabled() {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvProductsSource, ProductsSourceDB)
	}
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverPostgres, DBDriverSQLite:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvDBDriver, DBDriverPostgres, DBDriverSQLite, db.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether Redis has been configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CheckoutRateLimitConfig struct {
	Window time.Duration `envconfig:"STOREFRONT_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"STOREFRONT_CHECKOUT_RATE_LIMIT" default:"10"`
}
