package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	cartcontrollers "github.com/angelmondragon/storefront/api/controllers/cart"
	"github.com/angelmondragon/storefront/api/controllers/pages"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/views"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/cookiestore"
	"github.com/angelmondragon/storefront/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	cat *catalog.Catalog,
	checkoutService *checkout.Service,
	renderer *views.Renderer,
	cookies *cookiestore.Store,
	storefrontMetrics *metrics.StorefrontMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "method not allowed"))
	})

	// A nil *redis.Client must not reach the middleware as a non-nil interface.
	var limiter redis.RateLimiter
	readyChecks := map[string]controllers.Pinger{}
	if redisClient != nil {
		limiter = redisClient
		readyChecks["redis"] = redisClient
	}
	if dbP != nil {
		readyChecks["db"] = dbP
	}

	checkoutPolicy := middleware.NewRateLimitPolicy("checkout", cfg.RateLimit.Window, cfg.RateLimit.Limit)
	checkoutLimit := middleware.RateLimit(checkoutPolicy, limiter, logg)
	cartStorage := middleware.CartStorage(cookies, logg, storefrontMetrics)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyChecks))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.App.CORSOrigins))
		r.Use(cartStorage)

		r.Get("/catalog", controllers.CatalogFetch(cat, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(checkoutService, logg))
			r.Delete("/", cartcontrollers.CartClear(checkoutService, storefrontMetrics, logg))
			r.Route("/items/{productId}", func(r chi.Router) {
				r.Post("/", cartcontrollers.CartAddItem(checkoutService, storefrontMetrics, logg))
				r.Delete("/", cartcontrollers.CartRemoveItem(checkoutService, storefrontMetrics, logg))
				r.Put("/", cartcontrollers.CartSetQuantity(checkoutService, storefrontMetrics, logg))
				r.Delete("/line", cartcontrollers.CartRemoveLine(checkoutService, storefrontMetrics, logg))
			})
		})

		r.With(checkoutLimit).Post("/checkout", controllers.Checkout(checkoutService, logg))
	})

	deps := pages.Deps{
		Catalog:  cat,
		Checkout: checkoutService,
		Views:    renderer,
		Metrics:  storefrontMetrics,
		Logger:   logg,
	}
	r.Group(func(r chi.Router) {
		r.Use(cartStorage)

		r.Get("/", pages.Catalog(deps))
		r.Post("/cart/add", pages.CartAdd(deps))
		r.Post("/cart/remove", pages.CartRemove(deps))

		r.Route("/confirmation", func(r chi.Router) {
			r.Get("/", pages.Confirmation(deps))
			r.Post("/quantity", pages.ConfirmationQuantity(deps))
			r.Post("/remove", pages.ConfirmationRemove(deps))
			r.With(checkoutLimit).Post("/checkout", pages.ConfirmationCheckout(deps))
		})
	})

	return r
}
