// Package store is a small order domain of interfaces, registered with their
// substitutes. The mockgraph command compiles declaration files against it.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an individual item available for sale.
// Prices are in cents to avoid floating-point errors.
type Product interface {
	ID() int64
	SKU() string
	Name() string
	PriceCents() int64
	Inventory() int
	CreatedAt() time.Time
}

// Customer represents the user placing orders.
type Customer interface {
	ID() int64
	Email() string
	FullName() string
	Address() *string
	IsActive() bool
}

// Order represents a transaction made by a customer.
type Order interface {
	ID() int64
	// Reference is the public order number shown to customers.
	Reference() uuid.UUID
	Customer() Customer
	Status() OrderStatus
	SetStatus(OrderStatus)
	TotalCents() int64
	Items() []OrderItem
	// Products maps SKUs to the products of the order.
	Products() map[string]Product
	OrderedAt() time.Time
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string { return string(s) }
