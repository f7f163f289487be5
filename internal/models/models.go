package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are immutable after seeding; the
// catalog is the source of truth for their attributes.
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Image       string          `db:"image" json:"image"`
	Category    string          `db:"category" json:"category"`
	Rating      float64         `db:"rating" json:"rating"`
	Stock       int             `db:"stock" json:"stock"`
}

// CartItem pairs a product snapshot with a quantity. The cart never holds
// an item with quantity below 1.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Order represents a customer order. Orders are append-only except for the
// status field. Buyer identity fields are optional.
type Order struct {
	ID          int64           `db:"id" json:"id"`
	OrderNumber string          `db:"order_number" json:"order_number"`
	Email       string          `db:"email" json:"email,omitempty"`
	FirstName   string          `db:"first_name" json:"first_name,omitempty"`
	LastName    string          `db:"last_name" json:"last_name,omitempty"`
	Items       []OrderItem     `db:"-" json:"items"`
	Total       decimal.Decimal `db:"total" json:"total"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// OrderItem represents a line item within an order.
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// AdminUser is an account as seen by the admin panel. OrderCount and
// TotalSpent are precomputed aggregates attached at seed time, not live
// derivations from the order directory.
type AdminUser struct {
	ID           int64           `db:"id" json:"id"`
	Email        string          `db:"email" json:"email"`
	FirstName    string          `db:"first_name" json:"first_name"`
	LastName     string          `db:"last_name" json:"last_name"`
	Role         string          `db:"role" json:"role"`
	Status       string          `db:"status" json:"status"`
	RegisteredAt time.Time       `db:"registered_at" json:"registered_at"`
	OrderCount   int             `db:"order_count" json:"order_count"`
	TotalSpent   decimal.Decimal `db:"total_spent" json:"total_spent"`
}

// User is the authenticated session identity.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// UserProfile holds shipping and payment details keyed 1:1 by user id.
// Payment fields live only here; they must never cross into admin
// projections.
type UserProfile struct {
	UserID          int64  `json:"userId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shippingAddress"`
	ShippingCity    string `json:"shippingCity"`
	ShippingState   string `json:"shippingState"`
	ShippingZip     string `json:"shippingZip"`
	CardName        string `json:"cardName"`
	CardNumber      string `json:"cardNumber"`
	CardExpiry      string `json:"cardExpiry"`
	CardCvv         string `json:"cardCvv"`
}

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Account roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account statuses
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

var (
	// ErrNotFound indicates the targeted id is absent from its collection.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates a status change outside the workflow table.
	ErrInvalidTransition = errors.New("invalid status transition")
)
