package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sportify-api/internal/model"
	"sportify-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutService interface {
	// Checkout turns the user's cart into a pending order. Reading the cart,
	// pricing it, writing the order and clearing the cart commit together.
	Checkout(ctx context.Context, userID string, shipping model.ShippingInfo, method model.PaymentMethod) (*model.Order, error)
}

type checkoutServiceImpl struct {
	db            *gorm.DB
	userRepo      repository.UserRepository
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	notifications NotificationService
	locks         *userLocks
	logger        *slog.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	notifications NotificationService,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:            db,
		userRepo:      userRepo,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		notifications: notifications,
		locks:         newUserLocks(),
		logger:        logger,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID string, shipping model.ShippingInfo, method model.PaymentMethod) (*model.Order, error) {
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if err := validateShipping(&shipping); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if shipping.Email == "" {
		shipping.Email = user.Email
	}

	// a double submit waits here and then finds an empty cart
	unlock := s.locks.Lock(userID)
	defer unlock()

	var (
		order *model.Order
		items []*model.OrderItem
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := s.cartRepo.LockByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		productIDs := make([]string, 0, len(lines))
		seen := make(map[string]bool, len(lines))
		for _, line := range lines {
			if !seen[line.ProductID] {
				seen[line.ProductID] = true
				productIDs = append(productIDs, line.ProductID)
			}
		}

		products, err := s.productRepo.FindMany(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("get many products by cart lines: %w", err)
		}
		priceByID := make(map[string]decimal.Decimal, len(products))
		for _, product := range products {
			priceByID[product.ID] = product.Price
		}

		total := decimal.Zero
		items = make([]*model.OrderItem, len(lines))
		for i, line := range lines {
			price, ok := priceByID[line.ProductID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, line.ProductID)
			}
			total = total.Add(price.Mul(decimal.NewFromInt32(line.Quantity)))

			items[i] = &model.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			}
		}

		order = &model.Order{
			UserID:        userID,
			Total:         total,
			Status:        model.OrderStatusPending,
			Shipping:      shipping,
			PaymentMethod: method,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}

		for _, item := range items {
			item.OrderID = order.ID
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}

		cleared, err := s.cartRepo.DeleteByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		if cleared != int64(len(lines)) {
			return ErrCartChanged
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"user_id", userID,
		"total", order.Total.String(),
		"items", len(items),
	)

	s.notifications.SendOrderConfirmation(ctx, user.Email, order, items)

	return order, nil
}

func validateShipping(shipping *model.ShippingInfo) error {
	for _, field := range []*string{
		&shipping.Email, &shipping.Name, &shipping.Address1, &shipping.Address2,
		&shipping.City, &shipping.State, &shipping.Pin, &shipping.Phone,
	} {
		*field = strings.TrimSpace(*field)
	}

	if shipping.Name == "" || shipping.Address1 == "" || shipping.City == "" ||
		shipping.State == "" || shipping.Pin == "" || shipping.Phone == "" {
		return ErrInvalidShipping
	}

	if shipping.Email != "" {
		email, err := normalizeEmail(shipping.Email)
		if err != nil {
			return ErrInvalidShipping
		}
		shipping.Email = email
	}

	return nil
}
