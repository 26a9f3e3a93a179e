package service

import (
	"context"
	"strconv"

	"storefront/internal/models"
)

type CartService struct {
	api Transport
}

func NewCartService(api Transport) *CartService {
	return &CartService{api: api}
}

// GetCart - GET /cart
func (s *CartService) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.api.Get(ctx, "/cart", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart - POST /cart
func (s *CartService) AddToCart(ctx context.Context, item models.AddCartItemRequest) error {
	return s.api.Post(ctx, "/cart", item, nil)
}

// UpdateCartItem - PUT /cart/:itemId
func (s *CartService) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	return s.api.Put(ctx, "/cart/"+strconv.Itoa(itemID), models.UpdateCartItemRequest{Quantity: quantity}, nil)
}

// RemoveFromCart - DELETE /cart/:itemId
func (s *CartService) RemoveFromCart(ctx context.Context, itemID int) error {
	return s.api.Delete(ctx, "/cart/"+strconv.Itoa(itemID), nil)
}
