package pages

import (
	"net/http"

	cartcontrollers "github.com/angelmondragon/storefront/api/controllers/cart"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/views"
)

// Catalog renders the searchable product grid with the current cart counter.
func Catalog(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, err := repository(r)
		if err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), maxQueryLen)
		c, _ := repo.Load(r.Context())
		summary := d.Checkout.Summarize(c)

		products := d.Catalog.Search(query)
		cards := make([]views.ProductCard, 0, len(products))
		for _, p := range products {
			cards = append(cards, views.ProductCard{Product: p, Quantity: c.Quantity(p.ID)})
		}

		d.render(w, r, http.StatusOK, views.PageCatalog, views.CatalogPage{
			Store:              d.Catalog.StoreInfo(),
			Voucher:            d.Catalog.VoucherInfo(),
			Query:              query,
			Products:           cards,
			TotalItems:         summary.TotalItems,
			TotalPrice:         summary.TotalPrice,
			MinPurchase:        summary.MinPurchase,
			MeetsMinimum:       summary.MeetsMinimum,
			Shortfall:          summary.Shortfall,
			MinPurchaseWarning: d.Catalog.MinPurchaseWarning(),
		})
	}
}

// CartAdd handles the catalog "+" button.
func CartAdd(d Deps) http.HandlerFunc {
	return catalogMutation(d, cartcontrollers.OpAdd, cart.AddItem)
}

// CartRemove handles the catalog "-" button. A line at quantity one is removed.
func CartRemove(d Deps) http.HandlerFunc {
	return catalogMutation(d, cartcontrollers.OpRemove, cart.RemoveItem)
}

func catalogMutation(d Deps, op string, fn func(cart.Cart, string) (cart.Cart, cart.Result)) http.HandlerFunc {
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
		productID, err := validators.ProductID(r.PostFormValue("productId"))
		if err != nil {
			writeError(r.Context(), d.Logger, w, err)
			return
		}

		c, _ := repo.Load(r.Context())
		next, res := fn(c, productID)
		repo.Save(r.Context(), next)
		d.observe(op, res)

		query := validators.FormString(r, "q", maxQueryLen)
		http.Redirect(w, r, catalogURL(query), http.StatusSeeOther)
	}
}
