package service

import (
	"context"
	"errors"
	"fmt"

	"sportify-api/internal/model"
	"sportify-api/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	ListOrders(ctx context.Context, userID string) ([]*model.Order, error)
	GetOrderLines(ctx context.Context, userID string, orderID uint) ([]*model.OrderItem, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrderLines reports ErrOrderNotFound for orders owned by someone else.
func (s *orderServiceImpl) GetOrderLines(ctx context.Context, userID string, orderID uint) ([]*model.OrderItem, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, s.db, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	return items, nil
}
