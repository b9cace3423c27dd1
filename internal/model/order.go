package model

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "cod"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetBanking:
		return true
	}
	return false
}

// ShippingInfo is copied onto the order at checkout and never updated.
type ShippingInfo struct {
	Email    string `gorm:"size:255" json:"email"`
	Name     string `gorm:"size:128" json:"name"`
	Address1 string `gorm:"size:255" json:"address1"`
	Address2 string `gorm:"size:255" json:"address2"`
	City     string `gorm:"size:128" json:"city"`
	State    string `gorm:"size:128" json:"state"`
	Pin      string `gorm:"size:16" json:"pin"`
	Phone    string `gorm:"size:32" json:"phone"`
}
