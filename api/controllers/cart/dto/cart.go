package cartdto

import (
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/pkg/money"
)

// CartView is the cart snapshot exposed through the API. Totals are recomputed
// from the stored mapping on every request.
type CartView struct {
	Lines               []CartLine `json:"lines"`
	TotalItems          int        `json:"totalItems"`
	TotalPrice          int64      `json:"totalPrice"`
	TotalPriceFormatted string     `json:"totalPriceFormatted"`
	MinPurchase         int        `json:"minPurchase"`
	Shortfall           int        `json:"shortfall"`
	CanCheckout         bool       `json:"canCheckout"`
	Redirect            bool       `json:"redirect"`
	LoadStatus          string     `json:"loadStatus,omitempty"`
}

// CartLine is one rendered line. Unknown products keep their id with a blank
// name and zero price.
type CartLine struct {
	ProductID          string `json:"productId"`
	Name               string `json:"name"`
	Type               string `json:"type,omitempty"`
	Known              bool   `json:"known"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unitPrice"`
	UnitPriceFormatted string `json:"unitPriceFormatted"`
	Total              int64  `json:"total"`
	TotalFormatted     string `json:"totalFormatted"`
}

// Mutation reports the tagged outcome of a cart operation.
type Mutation struct {
	Op        string `json:"op"`
	ProductID string `json:"productId,omitempty"`
	Outcome   string `json:"outcome"`
	Quantity  int    `json:"quantity"`
}

type MutationResponse struct {
	Cart     CartView `json:"cart"`
	Mutation Mutation `json:"mutation"`
}

// SetQuantityRequest is the body of PUT /cart/items/{productId}. Zero and
// negative quantities remove the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// NewCartView maps a summary into the API shape. CanCheckout only reflects the
// minimum purchase; buyer details are checked at checkout.
func NewCartView(s checkout.Summary, status cart.LoadStatus, format money.Formatter) CartView {
	if format == nil {
		format = money.FormatIDR
	}
	lines := make([]CartLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, CartLine{
			ProductID:          l.ProductID,
			Name:               l.Product.Name,
			Type:               string(l.Product.Type),
			Known:              l.Known,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			UnitPriceFormatted: format(l.UnitPrice),
			Total:              l.Total,
			TotalFormatted:     format(l.Total),
		})
	}
	return CartView{
		Lines:               lines,
		TotalItems:          s.TotalItems,
		TotalPrice:          s.TotalPrice,
		TotalPriceFormatted: format(s.TotalPrice),
		MinPurchase:         s.MinPurchase,
		Shortfall:           s.Shortfall,
		CanCheckout:         s.MeetsMinimum,
		Redirect:            status.ShouldRedirect(),
		LoadStatus:          status.String(),
	}
}

// NewMutation builds the mutation report from a reducer result.
func NewMutation(op, productID string, res cart.Result) Mutation {
	return Mutation{
		Op:        op,
		ProductID: productID,
		Outcome:   res.Outcome.String(),
		Quantity:  res.Quantity,
	}
}
