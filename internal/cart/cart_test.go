package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem(t *testing.T) {
	c, res := AddItem(New(), "A")
	assert.Equal(t, Cart{"A": 1}, c)
	assert.Equal(t, Updated(1), res)

	c, res = AddItem(c, "A")
	assert.Equal(t, Cart{"A": 2}, c)
	assert.Equal(t, Updated(2), res)
}

func TestAddItemDoesNotMutateInput(t *testing.T) {
	before := Cart{"A": 1}
	after, _ := AddItem(before, "A")

	assert.Equal(t, 1, before["A"])
	assert.Equal(t, 2, after["A"])
}

func TestAddItemAcceptsUnknownIDsAndNilCart(t *testing.T) {
	c, res := AddItem(nil, "not-in-catalog")
	require.NotNil(t, c)
	assert.Equal(t, Cart{"not-in-catalog": 1}, c)
	assert.False(t, res.IsRemoved())
}

func TestRemoveItem(t *testing.T) {
	tests := []struct {
		name    string
		start   Cart
		want    Cart
		wantRes Result
	}{
		{name: "decrements above one", start: Cart{"A": 3}, want: Cart{"A": 2}, wantRes: Updated(2)},
		{name: "deletes at one", start: Cart{"A": 1, "B": 1}, want: Cart{"B": 1}, wantRes: Removed()},
		{name: "absent is a no-op floor", start: Cart{"B": 1}, want: Cart{"B": 1}, wantRes: Removed()},
		{name: "empty cart stays empty", start: New(), want: New(), wantRes: Removed()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := RemoveItem(tt.start, "A")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRes, res)
		})
	}
}

func TestAddThenRemoveRoundTrips(t *testing.T) {
	starts := []Cart{
		New(),
		{"A": 1},
		{"A": 4, "B": 2},
		{"B": 7},
	}
	for _, start := range starts {
		added, _ := AddItem(start, "A")
		back, _ := RemoveItem(added, "A")
		assert.Equal(t, start, back, "round trip from %v", start)
	}
}

func TestSetQuantity(t *testing.T) {
	c, res := SetQuantity(Cart{"A": 2}, "A", 0)
	assert.Equal(t, New(), c)
	assert.True(t, res.IsRemoved())

	c, res = SetQuantity(Cart{"A": 2}, "A", -3)
	assert.Equal(t, New(), c)
	assert.True(t, res.IsRemoved())

	for _, start := range []Cart{New(), {"A": 1}, {"A": 9}} {
		c, res = SetQuantity(start, "A", 5)
		assert.Equal(t, 5, c["A"])
		assert.Equal(t, Updated(5), res)
	}
}

func TestSetQuantityOneKeepsLineButRemoveItemDeletes(t *testing.T) {
	set, setRes := SetQuantity(Cart{"A": 2}, "A", 1)
	assert.Equal(t, Cart{"A": 1}, set)
	assert.Equal(t, Updated(1), setRes)

	removed, removeRes := RemoveItem(set, "A")
	assert.Equal(t, New(), removed)
	assert.True(t, removeRes.IsRemoved())
}

func TestRemoveLine(t *testing.T) {
	c, res := RemoveLine(Cart{"A": 12, "B": 1}, "A")
	assert.Equal(t, Cart{"B": 1}, c)
	assert.True(t, res.IsRemoved())

	c, res = RemoveLine(c, "missing")
	assert.Equal(t, Cart{"B": 1}, c)
	assert.True(t, res.IsRemoved())
}

func TestClear(t *testing.T) {
	c := Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, TotalItems(c))
}

func TestNoZeroQuantityLinesSurvive(t *testing.T) {
	c := New()
	c, _ = AddItem(c, "A")
	c, _ = AddItem(c, "B")
	c, _ = SetQuantity(c, "B", 3)
	c, _ = RemoveItem(c, "A")
	c, _ = SetQuantity(c, "B", 0)
	c, _ = RemoveItem(c, "C")

	for id, qty := range c {
		assert.GreaterOrEqual(t, qty, 1, "line %s", id)
	}
	assert.True(t, c.IsEmpty())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "updated", OutcomeUpdated.String())
	assert.Equal(t, "removed", OutcomeRemoved.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}
