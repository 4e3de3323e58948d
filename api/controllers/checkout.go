package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// CheckoutService composes order links.
type CheckoutService interface {
	Checkout(ctx context.Context, c cart.Cart, buyer checkout.BuyerInfo) (checkout.Order, error)
}

// Checkout gates the stored cart and buyer details and returns the wa.me link.
// The cart is cleared once the link has been composed.
func Checkout(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		repo := middleware.CartRepositoryFromContext(r.Context())
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart storage unavailable"))
			return
		}

		var payload checkout.BuyerInfo
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, _ := repo.Load(r.Context())
		order, err := svc.Checkout(r.Context(), c, payload.Trimmed())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		repo.Clear(r.Context())

		responses.WriteSuccess(w, order)
	}
}
