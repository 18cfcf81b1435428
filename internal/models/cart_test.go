package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddMergesByProductID(t *testing.T) {
	var c Cart
	c = c.Add(CartLineItem{ProductID: 7, ProductName: "Milk", Price: 2.5, Quantity: 2})
	c = c.Add(CartLineItem{ProductID: 7, ProductName: "Milk", Price: 2.5, Quantity: 3})

	require.Equal(t, 1, c.Count())
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestCart_AddSaturatesQuantity(t *testing.T) {
	tests := []struct {
		name string
		adds []int
		want int
	}{
		{"huge single add", []int{math.MaxInt}, MaxLineQuantity},
		{"huge then small", []int{math.MaxInt, 5}, MaxLineQuantity},
		{"two huge adds", []int{math.MaxInt, math.MaxInt}, MaxLineQuantity},
		{"sum crosses cap", []int{MaxLineQuantity - 1, 2}, MaxLineQuantity},
		{"non-positive becomes one", []int{0, -7}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			for _, q := range tt.adds {
				c = c.Add(CartLineItem{ProductID: 1, Price: 2, Quantity: q})
			}
			require.Equal(t, 1, c.Count())
			assert.Equal(t, tt.want, c.Lines[0].Quantity)
			assert.Positive(t, c.Total())
		})
	}
}

func TestCart_AddKeepsSnapshotOfFirstAdd(t *testing.T) {
	var c Cart
	c = c.Add(CartLineItem{ProductID: 1, ProductName: "Bread", Price: 3, Quantity: 1})
	c = c.Add(CartLineItem{ProductID: 1, ProductName: "Bread (new)", Price: 9, Quantity: 1})

	item, ok := c.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Bread", item.ProductName)
	assert.Equal(t, 3.0, item.Price)
	assert.Equal(t, 2, item.Quantity)
}

func TestCart_AddDoesNotMutateReceiver(t *testing.T) {
	orig := Cart{}.Add(CartLineItem{ProductID: 1, Price: 1, Quantity: 1})
	_ = orig.Add(CartLineItem{ProductID: 1, Price: 1, Quantity: 4})
	_ = orig.Add(CartLineItem{ProductID: 2, Price: 1, Quantity: 1})

	assert.Equal(t, 1, orig.Count())
	assert.Equal(t, 1, orig.Lines[0].Quantity)
}

func TestCart_RemoveUnknownIsNoop(t *testing.T) {
	c := Cart{}.
		Add(CartLineItem{ProductID: 1, Price: 1, Quantity: 1}).
		Add(CartLineItem{ProductID: 2, Price: 1, Quantity: 1})

	after := c.Remove(99)
	assert.Equal(t, c.Items(), after.Items())

	after = c.Remove(1)
	require.Equal(t, 1, after.Count())
	assert.Equal(t, 2, after.Lines[0].ProductID)
}

func TestCart_Total(t *testing.T) {
	c := Cart{}.
		Add(CartLineItem{ProductID: 1, Price: 10, Quantity: 2}).
		Add(CartLineItem{ProductID: 2, Price: 5, Quantity: 1})

	assert.Equal(t, 25.0, c.Total())
	assert.Equal(t, 0.0, Cart{}.Total())
}

func TestCart_ItemsNeverNil(t *testing.T) {
	assert.NotNil(t, Cart{}.Items())
	assert.Empty(t, Cart{}.Items())
}

func TestProduct_WithStockFlag(t *testing.T) {
	tests := []struct {
		qty      int
		wantQty  int
		wantFlag bool
	}{
		{qty: 29, wantQty: 29, wantFlag: true},
		{qty: 30, wantQty: 30, wantFlag: false},
		{qty: 0, wantQty: 0, wantFlag: true},
		{qty: -4, wantQty: 0, wantFlag: true},
		{qty: 120, wantQty: 120, wantFlag: false},
	}
	for _, tt := range tests {
		p := Product{Quantity: tt.qty}.WithStockFlag()
		assert.Equal(t, tt.wantQty, p.Quantity)
		assert.Equal(t, tt.wantFlag, p.LowStock, "quantity %d", tt.qty)
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleCustomer, ParseRole("customer"))
	assert.Equal(t, RoleCustomer, ParseRole(""))
	assert.Equal(t, RoleCustomer, ParseRole("superuser"))
}
