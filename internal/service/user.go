package service

import (
	"context"
	"errors"
	"fmt"

	"sportify-api/internal/model"
	"sportify-api/internal/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetAccount(ctx context.Context, userID string) (*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(
	userRepo repository.UserRepository,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) GetAccount(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}
