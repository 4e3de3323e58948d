package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	ProductsSourceFile = "file"
	ProductsSourceDB   = "db"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvCatalogPath    = "STOREFRONT_CATALOG_PATH"
	EnvProductsSource = "STOREFRONT_PRODUCTS_SOURCE"
	EnvCookieName     = "STOREFRONT_CART_COOKIE_NAME"
	EnvCookieSecure   = "STOREFRONT_CART_COOKIE_SECURE"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvDBDriver       = "STOREFRONT_DB_DRIVER"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRateLimit      = "STOREFRONT_CHECKOUT_RATE_LIMIT"
	EnvRateWindow     = "STOREFRONT_CHECKOUT_RATE_LIMIT_WINDOW"
)
