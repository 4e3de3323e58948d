package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/storefront/api/controllers/cart/dto"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	cartsvc "github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/money"
)

// Mutation op labels, shared with the HTML handlers and metrics.
const (
	OpAdd        = "add"
	OpRemove     = "remove"
	OpSet        = "set"
	OpRemoveLine = "remove_line"
	OpClear      = "clear"
)

// Summarizer renders a cart against the catalog.
type Summarizer interface {
	Summarize(c cartsvc.Cart) checkout.Summary
}

// MutationRecorder counts cart mutations.
type MutationRecorder interface {
	ObserveCartMutation(op, outcome string)
}

type mutateFunc func(r *http.Request, c cartsvc.Cart, productID string) (cartsvc.Cart, cartsvc.Result, error)

// CartFetch returns the stored cart with derived totals.
func CartFetch(svc Summarizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		repo, err := repositoryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, status := repo.Load(r.Context())
		responses.WriteSuccess(w, cartdto.NewCartView(svc.Summarize(c), status, money.FormatIDR))
	}
}

// CartAddItem increments the quantity of the path product.
func CartAddItem(svc Summarizer, metrics MutationRecorder, logg *logger.Logger) http.HandlerFunc {
	return mutate(OpAdd, svc, metrics, logg, func(r *http.Request, c cartsvc.Cart, id string) (cartsvc.Cart, cartsvc.Result, error) {
		next, res := cartsvc.AddItem(c, id)
		return next, res, nil
	})
}

// CartRemoveItem decrements the quantity of the path product, dropping the
// line at one.
func CartRemoveItem(svc Summarizer, metrics MutationRecorder, logg *logger.Logger) http.HandlerFunc {
	return mutate(OpRemove, svc, metrics, logg, func(r *http.Request, c cartsvc.Cart, id string) (cartsvc.Cart, cartsvc.Result, error) {
		next, res := cartsvc.RemoveItem(c, id)
		return next, res, nil
	})
}

// CartSetQuantity sets the path product to the body quantity.
func CartSetQuantity(svc Summarizer, metrics MutationRecorder, logg *logger.Logger) http.HandlerFunc {
	return mutate(OpSet, svc, metrics, logg, func(r *http.Request, c cartsvc.Cart, id string) (cartsvc.Cart, cartsvc.Result, error) {
		var payload cartdto.SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return c, cartsvc.Result{}, err
		}
		next, res := cartsvc.SetQuantity(c, id, *payload.Quantity)
		return next, res, nil
	})
}

// CartRemoveLine deletes the path product regardless of quantity.
func CartRemoveLine(svc Summarizer, metrics MutationRecorder, logg *logger.Logger) http.HandlerFunc {
	return mutate(OpRemoveLine, svc, metrics, logg, func(r *http.Request, c cartsvc.Cart, id string) (cartsvc.Cart, cartsvc.Result, error) {
		next, res := cartsvc.RemoveLine(c, id)
		return next, res, nil
	})
}

// CartClear empties the cart.
func CartClear(svc Summarizer, metrics MutationRecorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		repo, err := repositoryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		repo.Clear(r.Context())
		res := cartsvc.Removed()
		if metrics != nil {
			metrics.ObserveCartMutation(OpClear, res.Outcome.String())
		}
		c := cartsvc.Clear()
		responses.WriteSuccess(w, cartdto.MutationResponse{
			Cart:     cartdto.NewCartView(svc.Summarize(c), statusOf(c), money.FormatIDR),
			Mutation: cartdto.NewMutation(OpClear, "", res),
		})
	}
}

func mutate(op string, svc Summarizer, metrics MutationRecorder, logg *logger.Logger, fn mutateFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		repo, err := repositoryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ProductID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, _ := repo.Load(r.Context())
		next, res, err := fn(r, c, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		repo.Save(r.Context(), next)

		if metrics != nil {
			metrics.ObserveCartMutation(op, res.Outcome.String())
		}
		responses.WriteSuccess(w, cartdto.MutationResponse{
			Cart:     cartdto.NewCartView(svc.Summarize(next), statusOf(next), money.FormatIDR),
			Mutation: cartdto.NewMutation(op, productID, res),
		})
	}
}

func repositoryFromRequest(r *http.Request) (*cartsvc.Repository, error) {
	repo := middleware.CartRepositoryFromContext(r.Context())
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart storage unavailable")
	}
	return repo, nil
}

// statusOf describes an in-memory cart the way a fresh load would.
func statusOf(c cartsvc.Cart) cartsvc.LoadStatus {
	if c.IsEmpty() {
		return cartsvc.LoadEmpty
	}
	return cartsvc.LoadOK
}
