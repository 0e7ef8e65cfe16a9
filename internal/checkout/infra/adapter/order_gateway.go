package adapter

import (
	"context"

	checkoutdom "github.com/arkanhakim/livecart/internal/checkout/domain"
	orderapp "github.com/arkanhakim/livecart/internal/order/app"
	orderdom "github.com/arkanhakim/livecart/internal/order/domain"
)

// OrderServiceGateway submits wizard drafts through the order service.
type OrderServiceGateway struct {
	svc *orderapp.Service
}

func NewOrderServiceGateway(svc *orderapp.Service) *OrderServiceGateway {
	return &OrderServiceGateway{svc: svc}
}

func (g *OrderServiceGateway) PlaceOrder(ctx context.Context, draft checkoutdom.OrderDraft) (string, error) {
	items := make([]orderdom.OrderItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, orderdom.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}

	order, err := g.svc.Create(ctx, orderdom.Draft{
		UserID:        draft.UserID,
		VendorID:      draft.VendorID,
		PaymentMethod: draft.PaymentMethod,
		TotalPrice:    draft.TotalPrice,
		DeliveryAddress: orderdom.DeliveryAddress{
			Street: draft.DeliveryAddress.Street,
			Email:  draft.DeliveryAddress.Email,
			Name:   draft.DeliveryAddress.Name,
			Phone:  draft.DeliveryAddress.Phone,
		},
		Items: items,
	})
	if err != nil {
		return "", err
	}
	return order.ID, nil
}
