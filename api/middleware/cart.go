package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/pkg/cookiestore"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type cartLoadRecorder interface {
	ObserveCartLoad(status string)
}

var _ cart.Storage = (*cookiestore.Jar)(nil)

// CartStorage binds the browser-held cart to each request. Handlers reach it
// through CartRepositoryFromContext and must re-load it on every request.
func CartStorage(store *cookiestore.Store, logg *logger.Logger, metrics cartLoadRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			repo := cart.NewRepository(store.Bind(w, r), logg)
			if metrics != nil {
				repo = repo.WithMetrics(metrics)
			}
			next.ServeHTTP(w, r.WithContext(WithCartRepository(r.Context(), repo)))
		})
	}
}
