package checkout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/money"
)

const waBaseURL = "https://wa.me/"

// Template placeholders, substituted in this order, first occurrence only.
const (
	TokenOrderDetails = "{orderDetails}"
	TokenTotal        = "{total}"
	TokenName         = "{name}"
	TokenEmail        = "{email}"
	TokenPhone        = "{phone}"
)

// Products is the catalog surface the formatter reads.
type Products interface {
	Lookup(id string) (catalog.Product, bool)
	Position(id string) (int, bool)
}

// Line is one rendered cart line.
type Line struct {
	ProductID string
	Product   catalog.Product
	Known     bool
	Quantity  int
	UnitPrice int64
	Total     int64
}

// Formatter renders carts into order messages and wa.me links.
type Formatter struct {
	products Products
	format   money.Formatter
}

// NewFormatter builds a formatter. A nil format falls back to money.FormatIDR.
func NewFormatter(products Products, format money.Formatter) *Formatter {
	if format == nil {
		format = money.FormatIDR
	}
	return &Formatter{products: products, format: format}
}

// Lines returns the cart lines in catalog order, followed by ids the catalog
// no longer knows, sorted. Unknown ids carry a blank name and zero price.
func (f *Formatter) Lines(c cart.Cart) []Line {
	lines := make([]Line, 0, len(c))
	for id, qty := range c {
		line := Line{ProductID: id, Quantity: qty}
		if p, ok := f.products.Lookup(id); ok {
			line.Product = p
			line.Known = true
			line.UnitPrice = p.Price
		}
		line.Total = line.UnitPrice * int64(qty)
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		pi, iKnown := f.products.Position(lines[i].ProductID)
		pj, jKnown := f.products.Position(lines[j].ProductID)
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return lines[i].ProductID < lines[j].ProductID
		}
	})
	return lines
}

// OrderDetails renders "{name} x{qty} = {lineTotal}" per line, newline separated.
func (f *Formatter) OrderDetails(c cart.Cart) string {
	lines := f.Lines(c)
	rendered := make([]string, 0, len(lines))
	for _, l := range lines {
		rendered = append(rendered, fmt.Sprintf("%s x%d = %s", l.Product.Name, l.Quantity, f.format(l.Total)))
	}
	return strings.Join(rendered, "\n")
}

// Message fills the order template for c and buyer.
func (f *Formatter) Message(template string, c cart.Cart, buyer BuyerInfo) string {
	total := cart.TotalPrice(c, cart.PricerFunc(func(id string) (int64, bool) {
		p, ok := f.products.Lookup(id)
		return p.Price, ok
	}))
	return FillTemplate(template, f.OrderDetails(c), f.format(total), buyer)
}

// FillTemplate replaces each placeholder once, in a fixed order. Text
// introduced by an earlier substitution is visible to later ones.
func FillTemplate(template, orderDetails, total string, buyer BuyerInfo) string {
	msg := strings.Replace(template, TokenOrderDetails, orderDetails, 1)
	msg = strings.Replace(msg, TokenTotal, total, 1)
	msg = strings.Replace(msg, TokenName, buyer.Name, 1)
	msg = strings.Replace(msg, TokenEmail, buyer.Email, 1)
	msg = strings.Replace(msg, TokenPhone, buyer.Phone, 1)
	return msg
}

// WhatsAppURL builds the wa.me link for number carrying message.
func WhatsAppURL(number, message string) string {
	return waBaseURL + Digits(number) + "?text=" + EncodeURIComponent(message)
}

// Digits strips everything but ASCII digits, so "+62 812-34" becomes "6281234".
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
