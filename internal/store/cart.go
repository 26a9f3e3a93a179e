package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/pkg/logger"
)

// ErrInvalidQuantity - количество должно быть больше нуля
var ErrInvalidQuantity = errors.New("количество должно быть больше нуля")

// CartService - вызовы API корзины
type CartService interface {
	GetCart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, item models.AddCartItemRequest) error
	UpdateCartItem(ctx context.Context, itemID, quantity int) error
	RemoveFromCart(ctx context.Context, itemID int) error
}

// Cart - позиции корзины в том виде, в каком их вернул сервер
type Cart struct {
	svc CartService
	log *zap.Logger

	mu      sync.RWMutex
	items   []models.CartItem
	loading atomic.Int32
}

func NewCart(svc CartService, log *zap.Logger) *Cart {
	return &Cart{svc: svc, log: logger.OrNop(log)}
}

// FetchCart - заменяет список ответом сервера; при ошибке корзина очищается
func (c *Cart) FetchCart(ctx context.Context) error {
	c.loading.Add(1)
	defer c.loading.Add(-1)

	items, err := c.svc.GetCart(ctx)
	if err != nil {
		c.log.Warn("ошибка загрузки корзины", zap.Error(err))
		c.replace(nil)
		return err
	}
	c.replace(items)
	return nil
}

func (c *Cart) replace(items []models.CartItem) {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			c.log.Debug("позиция с нулевым количеством пропущена", zap.Int("item_id", item.ID))
			continue
		}
		kept = append(kept, item)
	}

	c.mu.Lock()
	c.items = kept
	c.mu.Unlock()
}

// AddToCart - добавляет товар и перечитывает корзину целиком
func (c *Cart) AddToCart(ctx context.Context, item models.AddCartItemRequest) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := c.svc.AddToCart(ctx, item); err != nil {
		c.log.Warn("ошибка добавления в корзину", zap.Int("product_id", item.ProductID), zap.Error(err))
		return err
	}
	c.refetch(ctx)
	return nil
}

// UpdateCartItem - меняет количество и перечитывает корзину
func (c *Cart) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := c.svc.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return err
	}
	c.refetch(ctx)
	return nil
}

// refetch - ошибка повторной загрузки уже обработана в FetchCart
func (c *Cart) refetch(ctx context.Context) {
	_ = c.FetchCart(ctx)
}

// RemoveFromCart - удаляет позицию на сервере, затем из локального списка без перечитывания
func (c *Cart) RemoveFromCart(ctx context.Context, itemID int) error {
	if err := c.svc.RemoveFromCart(ctx, itemID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return nil
}

// Items - копия позиций
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.CartItem(nil), c.items...)
}

// Count - сумма количеств
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total - сумма quantity * unit_price
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) Loading() bool {
	return c.loading.Load() > 0
}
