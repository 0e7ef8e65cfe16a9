package app

import (
	"context"

	"github.com/arkanhakim/livecart/internal/checkout/domain"
	"github.com/arkanhakim/livecart/pkg/money"
)

// CartLine is the wizard's view of one aggregated cart row.
type CartLine struct {
	VendorID  string
	ProductID string
	Title     string
	Price     money.Amount
	Image     string
	Quantity  int
}

// CartSource exposes the flattened cart, vendors in first-added order, and
// lets the wizard clear the submitted vendor after success.
type CartSource interface {
	Lines(ctx context.Context) ([]CartLine, error)
	ClearVendor(ctx context.Context, vendorID string) error
}

// OrderPlacer submits the packaged draft to the remote gateway and returns
// the created order's ID.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, draft domain.OrderDraft) (string, error)
}

type PaymentMethodSource interface {
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}

// QREncoder renders the confirmation artifact for a created order.
type QREncoder interface {
	Encode(orderID string) ([]byte, error)
}
