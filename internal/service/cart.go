package service

import (
	"context"
	"errors"
	"fmt"

	"sportify-api/internal/model"
	"sportify-api/internal/repository"

	"gorm.io/gorm"
)

// MaxLineQuantity keeps a line total inside the decimal(12,2) money columns.
const MaxLineQuantity = 99

func validQuantity(q int32) bool {
	return q >= 1 && q <= MaxLineQuantity
}

type AddCartLineInput struct {
	ProductID string
	Quantity  int32
	Size      string
	Color     string
}

// CartService rejects quantities below one on both add and update; it never
// clamps. Identical lines are not merged.
type CartService interface {
	GetCart(ctx context.Context, userID string) ([]*model.CartLine, error)
	AddLine(ctx context.Context, userID string, in AddCartLineInput) (*model.CartLine, error)
	UpdateQuantity(ctx context.Context, userID string, lineID uint, quantity int32) error
	RemoveLine(ctx context.Context, userID string, lineID uint) error
	ClearCart(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) ([]*model.CartLine, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return lines, nil
}

func (s *cartServiceImpl) AddLine(ctx context.Context, userID string, in AddCartLineInput) (*model.CartLine, error) {
	if !validQuantity(in.Quantity) {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if !product.SizeAvailable(in.Size) {
		return nil, ErrInvalidSize
	}

	line := &model.CartLine{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  in.Quantity,
		Size:      in.Size,
		Color:     in.Color,
	}
	if err := s.cartRepo.Create(ctx, line); err != nil {
		return nil, fmt.Errorf("store cart line in db: %w", err)
	}

	return line, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID string, lineID uint, quantity int32) error {
	if !validQuantity(quantity) {
		return ErrInvalidQuantity
	}

	err := s.cartRepo.UpdateQuantity(ctx, lineID, userID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartLineNotFound
		}
		return fmt.Errorf("update cart line: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) RemoveLine(ctx context.Context, userID string, lineID uint) error {
	err := s.cartRepo.Delete(ctx, lineID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartLineNotFound
		}
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, userID string) error {
	if _, err := s.cartRepo.DeleteByUser(ctx, s.db, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
