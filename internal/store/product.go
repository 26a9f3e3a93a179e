package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/pkg/logger"
)

// ProductService - вызовы API каталога
type ProductService interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (models.Product, error)
}

// Products - последний загруженный каталог
type Products struct {
	svc ProductService
	log *zap.Logger

	mu       sync.RWMutex
	products []models.Product
}

func NewProducts(svc ProductService, log *zap.Logger) *Products {
	return &Products{svc: svc, log: logger.OrNop(log)}
}

// FetchProducts - заменяет каталог и возвращает его копию
func (p *Products) FetchProducts(ctx context.Context) ([]models.Product, error) {
	products, err := p.svc.GetAllProducts(ctx)
	if err != nil {
		p.log.Error("ошибка загрузки каталога", zap.Error(err))
		return nil, err
	}

	p.mu.Lock()
	p.products = products
	p.mu.Unlock()

	p.log.Debug("каталог загружен", zap.Int("count", len(products)))
	return append([]models.Product(nil), products...), nil
}

// FetchProductByID - товар возвращается вызывающему, каталог не меняется
func (p *Products) FetchProductByID(ctx context.Context, id string) (models.Product, error) {
	product, err := p.svc.GetProductByID(ctx, id)
	if err != nil {
		p.log.Error("ошибка загрузки товара", zap.String("id", id), zap.Error(err))
		return models.Product{}, err
	}
	return product, nil
}

// Products - копия каталога
func (p *Products) Products() []models.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Product(nil), p.products...)
}
