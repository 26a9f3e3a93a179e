package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func cartWith(items ...models.CartItem) *fakeCart {
	return &fakeCart{items: items, nextID: 100}
}

func ids(items []models.CartItem) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestCartFetchAndDerivedValues(t *testing.T) {
	svc := cartWith(
		models.CartItem{ID: 1, Quantity: 2, UnitPrice: 10},
		models.CartItem{ID: 2, Quantity: 1, UnitPrice: 5.5},
		models.CartItem{ID: 3, Quantity: 0, UnitPrice: 99},
	)
	c := NewCart(svc, nil)

	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 0.0, c.Total())

	require.NoError(t, c.FetchCart(context.Background()))
	assert.Equal(t, []int{1, 2}, ids(c.Items()))
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 25.5, c.Total())
	assert.False(t, c.Loading())
}

func TestCartFetchFailureEmptiesList(t *testing.T) {
	svc := cartWith(models.CartItem{ID: 1, Quantity: 1, UnitPrice: 1})
	c := NewCart(svc, nil)
	require.NoError(t, c.FetchCart(context.Background()))

	svc.getErr = assert.AnError
	err := c.FetchCart(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.Count())
}

func TestCartAddRefetchesOnce(t *testing.T) {
	svc := cartWith(models.CartItem{ID: 1, Quantity: 1, UnitPrice: 10})
	c := NewCart(svc, nil)

	err := c.AddToCart(context.Background(), models.AddCartItemRequest{ProductID: 5, VariantID: 2, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.gets())
	assert.Equal(t, []int{1, 101}, ids(c.Items()))
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, 40.0, c.Total())
}

func TestCartAddFailureSkipsRefetch(t *testing.T) {
	svc := cartWith()
	svc.writeErr = assert.AnError
	c := NewCart(svc, nil)

	err := c.AddToCart(context.Background(), models.AddCartItemRequest{ProductID: 5, Quantity: 1})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, svc.gets())
}

func TestCartAddInvalidQuantity(t *testing.T) {
	svc := cartWith()
	c := NewCart(svc, nil)

	err := c.AddToCart(context.Background(), models.AddCartItemRequest{ProductID: 5})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartUpdate(t *testing.T) {
	svc := cartWith(models.CartItem{ID: 4, Quantity: 1, UnitPrice: 2})
	c := NewCart(svc, nil)

	require.NoError(t, c.UpdateCartItem(context.Background(), 4, 5))
	assert.Equal(t, map[int]int{4: 5}, svc.updated)
	assert.Equal(t, 1, svc.gets())
	assert.Equal(t, 5, c.Count())
	assert.Equal(t, 10.0, c.Total())

	assert.ErrorIs(t, c.UpdateCartItem(context.Background(), 4, 0), ErrInvalidQuantity)
	assert.Equal(t, 1, svc.gets())
}

func TestCartRemoveFiltersLocally(t *testing.T) {
	svc := cartWith(
		models.CartItem{ID: 3, Quantity: 1, UnitPrice: 1},
		models.CartItem{ID: 5, Quantity: 2, UnitPrice: 2},
		models.CartItem{ID: 7, Quantity: 3, UnitPrice: 3},
	)
	c := NewCart(svc, nil)
	require.NoError(t, c.FetchCart(context.Background()))
	before := c.Items()

	require.NoError(t, c.RemoveFromCart(context.Background(), 5))

	assert.Equal(t, []int{3, 7}, ids(c.Items()))
	assert.Equal(t, []models.CartItem{before[0], before[2]}, c.Items())
	assert.Equal(t, []int{5}, svc.removed)
	assert.Equal(t, 1, svc.gets())
	assert.Equal(t, 4, c.Count())
	assert.Equal(t, 10.0, c.Total())
}

func TestCartRemoveFailureKeepsState(t *testing.T) {
	svc := cartWith(models.CartItem{ID: 3, Quantity: 1, UnitPrice: 1})
	c := NewCart(svc, nil)
	require.NoError(t, c.FetchCart(context.Background()))

	svc.writeErr = assert.AnError
	assert.ErrorIs(t, c.RemoveFromCart(context.Background(), 3), assert.AnError)
	assert.Equal(t, []int{3}, ids(c.Items()))
}
