package service

import "errors"

// validation
var (
	ErrInvalidEmail         = errors.New("invalid email")
	ErrInvalidPassword      = errors.New("password must be between 6 and 72 characters")
	ErrInvalidQuantity      = errors.New("quantity must be between 1 and 99")
	ErrInvalidSize          = errors.New("size not available")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidShipping      = errors.New("incomplete shipping information")
)

// authentication
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// state
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrCartChanged        = errors.New("cart changed during checkout")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartLineNotFound   = errors.New("cart item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
)
