package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func priceTable(prices map[string]int64) Pricer {
	return PricerFunc(func(id string) (int64, bool) {
		p, ok := prices[id]
		return p, ok
	})
}

func TestTotals(t *testing.T) {
	pricer := priceTable(map[string]int64{"A": 10000, "B": 5000})
	c := Cart{"A": 2, "B": 1}

	assert.Equal(t, 3, TotalItems(c))
	assert.Equal(t, int64(25000), TotalPrice(c, pricer))
}

func TestTotalPriceIgnoresUnknownIDs(t *testing.T) {
	pricer := priceTable(map[string]int64{"A": 10000})
	c := Cart{"A": 1, "deleted-product": 4}

	assert.Equal(t, 5, TotalItems(c))
	assert.Equal(t, int64(10000), TotalPrice(c, pricer))
}

func TestTotalsMatchSums(t *testing.T) {
	prices := map[string]int64{"A": 1500, "B": 20000, "C": 0}
	pricer := priceTable(prices)
	carts := []Cart{
		New(),
		{"A": 1},
		{"A": 3, "B": 2, "C": 9},
		{"B": 1, "Z": 2},
	}
	for _, c := range carts {
		wantItems := 0
		var wantPrice int64
		for id, qty := range c {
			wantItems += qty
			wantPrice += prices[id] * int64(qty)
		}
		assert.Equal(t, wantItems, TotalItems(c))
		assert.Equal(t, wantPrice, TotalPrice(c, pricer))
	}
}

func TestLineTotalNilPricer(t *testing.T) {
	assert.Equal(t, int64(0), LineTotal(nil, "A", 3))
	assert.Equal(t, int64(0), TotalPrice(Cart{"A": 3}, nil))
}
