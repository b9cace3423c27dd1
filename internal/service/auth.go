package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"sportify-api/internal/model"
	"sportify-api/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) error
	ConfirmVerification(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type authServiceImpl struct {
	userRepo      repository.UserRepository
	tokens        TokenService
	notifications NotificationService
	bcryptCost    int
	// compared against when the email is unknown so every failed login costs one bcrypt check
	dummyHash []byte
	logger    *slog.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenService,
	notifications NotificationService,
	bcryptCost int,
	logger *slog.Logger,
) (AuthService, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("sportify-placeholder"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt cost %d: %w", bcryptCost, err)
	}

	return &authServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		notifications: notifications,
		bcryptCost:    bcryptCost,
		dummyHash:     dummyHash,
		logger:        logger,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, email, password string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if len(password) < 6 || len(password) > 72 {
		return ErrInvalidPassword
	}

	_, err = s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("store user in db: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)

	return s.sendVerification(ctx, user)
}

func (s *authServiceImpl) ConfirmVerification(ctx context.Context, token string) error {
	userID, err := s.tokens.ParseVerification(token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.Verified {
		return nil
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}

	s.logger.InfoContext(ctx, "user verified", "user_id", user.ID)
	return nil
}

// ResendVerification succeeds silently for unknown or already verified emails.
func (s *authServiceImpl) ResendVerification(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	if user.Verified {
		return nil
	}

	return s.sendVerification(ctx, user)
}

// Authenticate returns ErrInvalidCredentials for an unknown email, a wrong
// password and an unverified account alike.
func (s *authServiceImpl) Authenticate(ctx context.Context, email, password string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("find user by email: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.Verified {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *authServiceImpl) sendVerification(ctx context.Context, user *model.User) error {
	token, err := s.tokens.IssueVerification(user.ID)
	if err != nil {
		return err
	}

	s.notifications.SendVerification(ctx, user.Email, token)
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
