package store

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"storefront/internal/models"
)

type fakeAuth struct {
	resp models.AuthResponse
	err  error

	mu    sync.Mutex
	calls []string
}

func (f *fakeAuth) Register(_ context.Context, _ models.RegisterRequest) (models.AuthResponse, error) {
	f.record("register")
	return f.resp, f.err
}

func (f *fakeAuth) Login(_ context.Context, _ models.Credentials) (models.AuthResponse, error) {
	f.record("login")
	return f.resp, f.err
}

func (f *fakeAuth) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

// fakeCart - серверная корзина в памяти
type fakeCart struct {
	mu       sync.Mutex
	items    []models.CartItem
	nextID   int
	getCalls int
	getErr   error
	writeErr error
	removed  []int
	updated  map[int]int
}

func (f *fakeCart) GetCart(context.Context) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]models.CartItem(nil), f.items...), nil
}

func (f *fakeCart) AddToCart(_ context.Context, item models.AddCartItemRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.nextID++
	f.items = append(f.items, models.CartItem{
		ID:        f.nextID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
		UnitPrice: 10,
	})
	return nil
}

func (f *fakeCart) UpdateCartItem(_ context.Context, itemID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.updated == nil {
		f.updated = map[int]int{}
	}
	f.updated[itemID] = quantity
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeCart) RemoveFromCart(_ context.Context, itemID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.removed = append(f.removed, itemID)
	return nil
}

func (f *fakeCart) gets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

type fakeProducts struct {
	products []models.Product
	err      error
}

func (f *fakeProducts) GetAllProducts(context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeProducts) GetProductByID(_ context.Context, id string) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, p := range f.products {
		if itoa(p.ID) == id {
			return p, nil
		}
	}
	return models.Product{}, errNotFound
}

type fakeWishlist struct {
	items    []models.WishlistItem
	getCalls int
	getErr   error
	writeErr error
}

func (f *fakeWishlist) GetWishlist(context.Context) ([]models.WishlistItem, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]models.WishlistItem(nil), f.items...), nil
}

func (f *fakeWishlist) AddToWishlist(_ context.Context, data models.AddWishlistRequest) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.items = append(f.items, models.WishlistItem{ID: len(f.items) + 1, ProductID: data.ProductID})
	return nil
}

func (f *fakeWishlist) RemoveFromWishlist(context.Context, int) error {
	return f.writeErr
}

var errNotFound = errors.New("not found")

func itoa(i int) string { return strconv.Itoa(i) }
