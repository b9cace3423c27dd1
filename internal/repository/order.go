package repository

import (
	"context"

	"sportify-api/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	FindByID(ctx context.Context, orderID uint, userID string) (*model.Order, error)
	GetOrderItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

// ListByUser returns the user's orders, newest first.
func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// FindByID only matches orders owned by userID.
func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint, userID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}
