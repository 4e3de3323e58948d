// Package cart holds the storefront's only mutable state: a mapping of product
// id to quantity. Every mutation is a pure function that returns a new Cart and
// an explicit Result describing what happened to the touched line.
package cart

// Cart maps product ids to quantities. Every present quantity is >= 1; a line
// whose quantity would reach zero is deleted instead.
type Cart map[string]int

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// Quantity returns the quantity for id, zero when absent.
func (c Cart) Quantity(id string) int {
	return c[id]
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Clone returns an independent copy of c. A nil cart clones to an empty one.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// Outcome tags the effect a mutation had on a single line.
type Outcome int

const (
	OutcomeUpdated Outcome = iota + 1
	OutcomeRemoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a line mutation: Updated(newQuantity) or Removed.
type Result struct {
	Outcome  Outcome
	Quantity int
}

// Updated reports that the line now holds qty.
func Updated(qty int) Result {
	return Result{Outcome: OutcomeUpdated, Quantity: qty}
}

// Removed reports that the line is no longer present.
func Removed() Result {
	return Result{Outcome: OutcomeRemoved}
}

func (r Result) IsRemoved() bool {
	return r.Outcome == OutcomeRemoved
}

// AddItem increments the quantity of id by one, starting at one when absent.
// There is no upper bound and id is not checked against the catalog.
func AddItem(c Cart, id string) (Cart, Result) {
	next := c.Clone()
	next[id]++
	return next, Updated(next[id])
}

// RemoveItem decrements the quantity of id. A line at quantity one (or absent)
// is deleted, so the quantity never goes below zero.
func RemoveItem(c Cart, id string) (Cart, Result) {
	next := c.Clone()
	if qty := next[id]; qty > 1 {
		next[id] = qty - 1
		return next, Updated(qty - 1)
	}
	delete(next, id)
	return next, Removed()
}

// SetQuantity sets the quantity of id to exactly n, deleting the line when n <= 0.
// Unlike RemoveItem, setting n = 1 keeps the line.
func SetQuantity(c Cart, id string, n int) (Cart, Result) {
	next := c.Clone()
	if n <= 0 {
		delete(next, id)
		return next, Removed()
	}
	next[id] = n
	return next, Updated(n)
}

// RemoveLine deletes id regardless of its quantity.
func RemoveLine(c Cart, id string) (Cart, Result) {
	next := c.Clone()
	delete(next, id)
	return next, Removed()
}

// Clear returns an empty cart.
func Clear() Cart {
	return New()
}
