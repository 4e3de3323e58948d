package cart

// Pricer resolves the unit price of a product id. ok is false for ids the
// catalog does not know.
type Pricer interface {
	Price(id string) (price int64, ok bool)
}

// PricerFunc adapts a function to Pricer.
type PricerFunc func(id string) (int64, bool)

func (f PricerFunc) Price(id string) (int64, bool) {
	return f(id)
}

// TotalItems is the sum of all quantities.
func TotalItems(c Cart) int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// TotalPrice is the sum of price*quantity over every line. Ids the pricer does
// not know contribute zero so a stale line never breaks the total.
func TotalPrice(c Cart, pricer Pricer) int64 {
	var total int64
	for id, qty := range c {
		total += LineTotal(pricer, id, qty)
	}
	return total
}

// LineTotal is price(id)*qty, zero for unknown ids or a nil pricer.
func LineTotal(pricer Pricer, id string, qty int) int64 {
	if pricer == nil {
		return 0
	}
	price, ok := pricer.Price(id)
	if !ok {
		return 0
	}
	return price * int64(qty)
}
