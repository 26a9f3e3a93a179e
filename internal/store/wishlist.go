package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/pkg/logger"
)

// WishlistService - вызовы API избранного
type WishlistService interface {
	GetWishlist(ctx context.Context) ([]models.WishlistItem, error)
	AddToWishlist(ctx context.Context, data models.AddWishlistRequest) error
	RemoveFromWishlist(ctx context.Context, productID int) error
}

// Wishlist - избранные товары, ведется так же, как корзина
type Wishlist struct {
	svc WishlistService
	log *zap.Logger

	mu    sync.RWMutex
	items []models.WishlistItem
}

func NewWishlist(svc WishlistService, log *zap.Logger) *Wishlist {
	return &Wishlist{svc: svc, log: logger.OrNop(log)}
}

// FetchWishlist - заменяет список; при ошибке список очищается
func (w *Wishlist) FetchWishlist(ctx context.Context) error {
	items, err := w.svc.GetWishlist(ctx)
	if err != nil {
		w.log.Warn("ошибка загрузки избранного", zap.Error(err))
		items = nil
	}

	w.mu.Lock()
	w.items = items
	w.mu.Unlock()
	return err
}

// AddToWishlist - добавляет товар и перечитывает список
func (w *Wishlist) AddToWishlist(ctx context.Context, productID int) error {
	if err := w.svc.AddToWishlist(ctx, models.AddWishlistRequest{ProductID: productID}); err != nil {
		return err
	}
	_ = w.FetchWishlist(ctx)
	return nil
}

// RemoveFromWishlist - удаляет на сервере, затем локально по product_id
func (w *Wishlist) RemoveFromWishlist(ctx context.Context, productID int) error {
	if err := w.svc.RemoveFromWishlist(ctx, productID); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	kept := make([]models.WishlistItem, 0, len(w.items))
	for _, item := range w.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	w.items = kept
	return nil
}

func (w *Wishlist) Items() []models.WishlistItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]models.WishlistItem(nil), w.items...)
}

// Contains - есть ли товар в избранном
func (w *Wishlist) Contains(productID int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, item := range w.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
