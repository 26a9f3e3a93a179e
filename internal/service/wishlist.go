package service

import (
	"context"
	"strconv"

	"storefront/internal/models"
)

type WishlistService struct {
	api Transport
}

func NewWishlistService(api Transport) *WishlistService {
	return &WishlistService{api: api}
}

// GetWishlist - GET /wishlists
func (s *WishlistService) GetWishlist(ctx context.Context) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := s.api.Get(ctx, "/wishlists", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWishlist - POST /wishlist
func (s *WishlistService) AddToWishlist(ctx context.Context, data models.AddWishlistRequest) error {
	return s.api.Post(ctx, "/wishlist", data, nil)
}

// RemoveFromWishlist - DELETE /wishlist/:productId
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, productID int) error {
	return s.api.Delete(ctx, "/wishlist/"+strconv.Itoa(productID), nil)
}
