package service

import (
	"context"
	"errors"
	"fmt"

	"sportify-api/internal/model"
	"sportify-api/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}
