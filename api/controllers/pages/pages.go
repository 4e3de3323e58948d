// Package pages serves the server-rendered catalog and confirmation views.
// Every handler re-loads the cart from the request cookie before using it.
package pages

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	cartcontrollers "github.com/angelmondragon/storefront/api/controllers/cart"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	maxQueryLen = 100

	// emptyRedirectSeconds is the grace delay before an emptied confirmation
	// page returns to the catalog.
	emptyRedirectSeconds = 1

	msgBuyerTooLong = "Data pembeli terlalu panjang"
)

// Renderer executes a named page template.
type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

// CheckoutService summarizes carts and composes order links.
type CheckoutService interface {
	Summarize(c cart.Cart) checkout.Summary
	Checkout(ctx context.Context, c cart.Cart, buyer checkout.BuyerInfo) (checkout.Order, error)
}

// Deps groups what the page handlers share.
type Deps struct {
	Catalog  *catalog.Catalog
	Checkout CheckoutService
	Views    Renderer
	Metrics  cartcontrollers.MutationRecorder
	Logger   *logger.Logger
}

func (d Deps) observe(op string, res cart.Result) {
	if d.Metrics != nil {
		d.Metrics.ObserveCartMutation(op, res.Outcome.String())
	}
}

func (d Deps) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	// Render buffers internally, so the status is only written on success.
	rw := &deferredStatus{ResponseWriter: w, status: status}
	if err := d.Views.Render(rw, page, data); err != nil {
		writeError(r.Context(), d.Logger, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render page"))
	}
}

// writeError renders err as plain text for browser clients.
func writeError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	responses.LogError(ctx, logg, err)
	http.Error(w, responses.PublicMessage(err), responses.StatusFor(err))
}

func repository(r *http.Request) (*cart.Repository, error) {
	repo := middleware.CartRepositoryFromContext(r.Context())
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart storage unavailable")
	}
	return repo, nil
}

func catalogURL(query string) string {
	if query == "" {
		return "/"
	}
	return "/?" + url.Values{"q": {query}}.Encode()
}

// buyerFromForm reads the buyer fields trimmed but uncut; length limits are
// enforced by the BuyerInfo validation tags at checkout, as on the JSON path.
func buyerFromForm(r *http.Request) checkout.BuyerInfo {
	return checkout.BuyerInfo{
		Name:  validators.FormString(r, "name", 0),
		Email: validators.FormString(r, "email", 0),
		Phone: validators.FormString(r, "phone", 0),
	}
}

// parseSetValue splits a stepper value "<productId>:<quantity>".
func parseSetValue(raw string) (string, int, error) {
	idx := strings.LastIndex(raw, ":")
	if idx < 0 {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity value").WithDetails(map[string]any{"field": "set"})
	}
	id, err := validators.ProductID(raw[:idx])
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw[idx+1:]))
	if err != nil {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be numeric").WithDetails(map[string]any{"field": "set"})
	}
	return id, n, nil
}

type deferredStatus struct {
	http.ResponseWriter
	status  int
	written bool
}

func (d *deferredStatus) Write(b []byte) (int, error) {
	if !d.written {
		d.written = true
		d.ResponseWriter.WriteHeader(d.status)
	}
	return d.ResponseWriter.Write(b)
}
