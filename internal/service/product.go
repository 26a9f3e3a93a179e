package service

import (
	"context"
	"net/url"

	"storefront/internal/models"
)

type ProductService struct {
	api Transport
}

func NewProductService(api Transport) *ProductService {
	return &ProductService{api: api}
}

// GetAllProducts - GET /products
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.api.Get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID - GET /products/:id
func (s *ProductService) GetProductByID(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	if err := s.api.Get(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}
