// Package views renders the two storefront pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/pkg/money"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageCatalog      = "catalog.html"
	PageConfirmation = "confirmation.html"
)

const layoutFile = "templates/layout.html"

// ProductCard is a catalog product with the quantity already in the cart.
type ProductCard struct {
	catalog.Product
	Quantity int
}

type CatalogPage struct {
	Store              catalog.StoreInfo
	Voucher            catalog.VoucherInfo
	Query              string
	Products           []ProductCard
	TotalItems         int
	TotalPrice         int64
	MinPurchase        int
	MeetsMinimum       bool
	Shortfall          int
	MinPurchaseWarning string
}

type ConfirmationPage struct {
	Store    catalog.StoreInfo
	Labels   catalog.FormLabels
	Messages catalog.Messages
	Summary  checkout.Summary
	Buyer    checkout.BuyerInfo
	Error    string
	// RedirectAfter is the number of seconds before an empty cart sends the
	// browser back to the catalog. Zero disables the refresh.
	RedirectAfter int
}

// CheckoutTarget is where the checkout form opens its result. The wa.me link
// gets a new tab; a page already showing a rejection was itself opened that
// way, so a retry stays in it.
func (p ConfirmationPage) CheckoutTarget() string {
	if p.Error != "" {
		return "_self"
	}
	return "_blank"
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. A nil format falls back to money.FormatIDR.
func New(format money.Formatter) (*Renderer, error) {
	if format == nil {
		format = money.FormatIDR
	}
	funcs := template.FuncMap{
		"rupiah": func(amount int64) string { return format(amount) },
		"inc":    func(n int) int { return n + 1 },
		"dec":    func(n int) int { return n - 1 },
		"deref": func(v *int64) int64 {
			if v == nil {
				return 0
			}
			return *v
		},
		"setq": func(id string, n int) string {
			return fmt.Sprintf("%s:%d", id, n)
		},
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, page := range []string{PageCatalog, PageConfirmation} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, layoutFile, "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes page into w. Output is buffered so a template failure never
// leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
