package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/arkanhakim/livecart/internal/order/domain"
)

// OrderMailer sends order confirmations through an EmailClient.
type OrderMailer struct {
	client EmailClient
	from   string
}

func NewOrderMailer(client EmailClient, fromAddress string) *OrderMailer {
	return &OrderMailer{client: client, from: fromAddress}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, to string, order domain.Order) error {
	subject := fmt.Sprintf("Your order %s is confirmed", order.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.DeliveryAddress.Name)
	fmt.Fprintf(&b, "Thanks for your order. Reference: %s\n\n", order.ID)
	for _, it := range order.Items {
		fmt.Fprintf(&b, "  %dx %s - %s\n", it.Quantity, it.Title, it.Price)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", order.TotalPrice)
	fmt.Fprintf(&b, "Payment: %s\n", order.PaymentMethod)
	fmt.Fprintf(&b, "Delivery to: %s\n", order.DeliveryAddress.Street)

	return m.client.Send(ctx, m.from, to, subject, b.String())
}
