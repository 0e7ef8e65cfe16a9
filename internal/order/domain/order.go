package domain

import (
	"time"

	"github.com/arkanhakim/livecart/pkg/money"
)

const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// DeliveryAddress is the free-text street plus the contact details captured
// by the checkout flow.
type DeliveryAddress struct {
	Street string
	Email  string
	Name   string
	Phone  string
}

type OrderItem struct {
	ProductID string
	Title     string
	Price     money.Amount
	Image     string
	Quantity  int
}

type Order struct {
	ID              string
	UserID          string
	VendorID        string
	Status          string
	PaymentMethod   string
	TotalPrice      money.Amount
	DeliveryAddress DeliveryAddress
	Items           []OrderItem
	CreatedAt       time.Time
}

// Draft is an order submission before it has an ID or a creation time.
type Draft struct {
	UserID          string
	VendorID        string
	PaymentMethod   string
	TotalPrice      money.Amount
	DeliveryAddress DeliveryAddress
	Items           []OrderItem
}
