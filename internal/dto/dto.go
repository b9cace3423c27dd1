package dto

type MessageResponse struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AccountResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

type AddCartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int32  `json:"quantity" validate:"min=1,max=99"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type AddCartLineResponse struct {
	ID uint `json:"id"`
}

type UpdateCartLineRequest struct {
	Quantity int32 `json:"quantity" validate:"min=1,max=99"`
}

type CheckoutRequest struct {
	Email         string `json:"email" validate:"omitempty,email"`
	Name          string `json:"name" validate:"required"`
	Address1      string `json:"address1" validate:"required"`
	Address2      string `json:"address2"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Pin           string `json:"pin" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod card upi netbanking"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	OrderID uint   `json:"orderId"`
}
