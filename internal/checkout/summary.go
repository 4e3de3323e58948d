package checkout

import (
	"github.com/angelmondragon/storefront/internal/cart"
)

// Summary is everything a view needs to show a cart: rendered lines, totals
// and how far the cart is from the minimum purchase.
type Summary struct {
	Lines        []Line
	TotalItems   int
	TotalPrice   int64
	MinPurchase  int
	Shortfall    int
	MeetsMinimum bool
}

// IsEmpty reports whether the summary has no lines.
func (s Summary) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Summarize recomputes totals from c. Nothing is cached.
func (f *Formatter) Summarize(c cart.Cart, minPurchase int) Summary {
	lines := f.Lines(c)
	var totalPrice int64
	for _, l := range lines {
		totalPrice += l.Total
	}
	totalItems := cart.TotalItems(c)
	return Summary{
		Lines:        lines,
		TotalItems:   totalItems,
		TotalPrice:   totalPrice,
		MinPurchase:  minPurchase,
		Shortfall:    Shortfall(totalItems, minPurchase),
		MeetsMinimum: MeetsMinimum(totalItems, minPurchase),
	}
}
