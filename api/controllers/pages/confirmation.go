package pages

import (
	"net/http"

	cartcontrollers "github.com/angelmondragon/storefront/api/controllers/cart"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/views"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Confirmation shows the stored cart with the buyer form. A missing, empty or
// unreadable cart sends the browser back to the catalog.
func Confirmation(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, err := repository(r)
		if err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}

		c, status := repo.Load(r.Context())
		if status.ShouldRedirect() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		d.renderConfirmation(w, r, http.StatusOK, c, checkout.BuyerInfo{}, "")
	}
}

// ConfirmationQuantity handles the line steppers. The submitted value already
// holds the target quantity; zero removes the line.
func ConfirmationQuantity(d Deps) http.HandlerFunc {
	return confirmationMutation(d, cartcontrollers.OpSet, func(r *http.Request, c cart.Cart) (cart.Cart, cart.Result, error) {
		id, n, err := parseSetValue(r.PostFormValue("set"))
		if err != nil {
			return c, cart.Result{}, err
		}
		next, res := cart.SetQuantity(c, id, n)
		return next, res, nil
	})
}

// ConfirmationRemove deletes a whole line.
func ConfirmationRemove(d Deps) http.HandlerFunc {
	return confirmationMutation(d, cartcontrollers.OpRemoveLine, func(r *http.Request, c cart.Cart) (cart.Cart, cart.Result, error) {
		id, err := validators.ProductID(r.PostFormValue("remove"))
		if err != nil {
			return c, cart.Result{}, err
		}
		next, res := cart.RemoveLine(c, id)
		return next, res, nil
	})
}

// ConfirmationCheckout runs the checkout gate. On success the cart is cleared
// and the browser is sent to the wa.me link; otherwise the page is shown again
// with the blocking message.
func ConfirmationCheckout(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, err := repository(r)
		if err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}
		if err := validators.ParseForm(w, r); err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}

		buyer := buyerFromForm(r)
		c, _ := repo.Load(r.Context())
		if err := validators.Struct(buyer); err != nil {
			responses.LogError(r.Context(), d.Logger, err)
			d.renderConfirmation(w, r, http.StatusUnprocessableEntity, c, buyer, msgBuyerTooLong)
			return
		}
		order, err := d.Checkout.Checkout(r.Context(), c, buyer)
		if err != nil {
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				writeError(r.Context(), d.Logger, w, err)
				return
			}
			d.renderConfirmation(w, r, http.StatusUnprocessableEntity, c, buyer, responses.PublicMessage(err))
			return
		}

		repo.Clear(r.Context())
		http.Redirect(w, r, order.URL, http.StatusSeeOther)
	}
}

func confirmationMutation(d Deps, op string, fn func(*http.Request, cart.Cart) (cart.Cart, cart.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, err := repository(r)
		if err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}
		if err := validators.ParseForm(w, r); err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}

		c, _ := repo.Load(r.Context())
		next, res, err := fn(r, c)
		if err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}
		repo.Save(r.Context(), next)
		d.observe(op, res)

		d.renderConfirmation(w, r, http.StatusOK, next, buyerFromForm(r), "")
	}
}

func (d Deps) renderConfirmation(w http.ResponseWriter, r *http.Request, status int, c cart.Cart, buyer checkout.BuyerInfo, message string) {
	page := views.ConfirmationPage{
		Store:    d.Catalog.StoreInfo(),
		Labels:   d.Catalog.FormLabels(),
		Messages: d.Catalog.Messages(),
		Summary:  d.Checkout.Summarize(c),
		Buyer:    buyer,
		Error:    message,
	}
	if page.Summary.IsEmpty() {
		page.RedirectAfter = emptyRedirectSeconds
	}
	d.render(w, r, status, views.PageConfirmation, page)
}
