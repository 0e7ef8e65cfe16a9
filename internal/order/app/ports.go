package app

import (
	"context"

	"github.com/arkanhakim/livecart/internal/order/domain"
)

type OrderRepo interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// Mailer sends the buyer an order confirmation. Implementations must not be
// relied on for order durability; a failed mail never fails the order.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, order domain.Order) error
}
