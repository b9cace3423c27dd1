package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36;not null" json:"id"` // uuid
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Verified     bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Product struct {
	ID          string          `gorm:"primaryKey;size:64;not null" json:"id"` // slug, e.g. nike-air-max-270
	Brand       string          `gorm:"size:64" json:"brand"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Category    string          `gorm:"size:64" json:"category"`
	Type        ProductType     `gorm:"size:32;index;not null" json:"type"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency    string          `gorm:"size:8;not null" json:"currency"`
	Description string          `gorm:"type:text" json:"description"`

	// stored as JSON text, decoded by the gorm serializer
	Images         []string       `gorm:"serializer:json;type:text" json:"images"`
	Colors         []ColorVariant `gorm:"serializer:json;type:text" json:"colors"`
	Sizes          []string       `gorm:"serializer:json;type:text" json:"sizes"`
	AvailableSizes []string       `gorm:"serializer:json;type:text" json:"availableSizes"`

	SKU    string `gorm:"column:sku;size:64" json:"sku"`
	Origin string `gorm:"size:64" json:"origin"`
}

type CartLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"user_id"`
	ProductID string    `gorm:"size:64;index;not null" json:"product_id"`
	Quantity  int32     `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"size:32" json:"size"`
	Color     string    `gorm:"size:64" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"size:36;index;not null" json:"user_id"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"` // sum of items
	Status        OrderStatus     `gorm:"size:32;index;not null" json:"status"`
	Shipping      ShippingInfo    `gorm:"embedded" json:"shipping"`
	PaymentMethod PaymentMethod   `gorm:"size:32;not null" json:"payment_method"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"order_id"`
	// not a foreign key: items outlive catalog changes
	ProductID string          `gorm:"size:64;index;not null" json:"product_id"`
	Quantity  int32           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"` // unit price frozen at checkout

	CreatedAt time.Time `json:"created_at"`

	Order *Order `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Tables lists every model managed by AutoMigrate.
func Tables() []any {
	return []any{
		&User{},
		&Product{},
		&CartLine{},
		&Order{},
		&OrderItem{},
	}
}
