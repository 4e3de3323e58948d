package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const maxQueryLen = 100

type catalogResponse struct {
	StoreInfo          catalog.StoreInfo   `json:"storeInfo"`
	VoucherInfo        catalog.VoucherInfo `json:"voucherInfo"`
	FormLabels         catalog.FormLabels  `json:"formLabels"`
	Messages           catalog.Messages    `json:"messages"`
	MinPurchaseWarning string              `json:"minPurchaseWarning"`
	Query              string              `json:"query,omitempty"`
	Products           []catalog.Product   `json:"products"`
}

// CatalogFetch lists the catalog, filtered by the optional ?q= search.
func CatalogFetch(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), maxQueryLen)
		products := cat.Search(query)
		if products == nil {
			products = []catalog.Product{}
		}

		responses.WriteSuccess(w, catalogResponse{
			StoreInfo:          cat.StoreInfo(),
			VoucherInfo:        cat.VoucherInfo(),
			FormLabels:         cat.FormLabels(),
			Messages:           cat.Messages(),
			MinPurchaseWarning: cat.MinPurchaseWarning(),
			Query:              query,
			Products:           products,
		})
	}
}
