package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/arkanhakim/livecart/internal/order/domain"
	"github.com/google/uuid"
)

const ordersCollection = "orders"

type OrderRepo struct {
	client *firestore.Client
}

func NewOrderRepo(client *firestore.Client) *OrderRepo {
	return &OrderRepo{client: client}
}

func (r *OrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	ref := r.client.Collection(ordersCollection).Doc(order.ID)
	if _, err := ref.Set(ctx, orderToDoc(order)); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return docToOrder(doc)
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	it := r.client.Collection(ordersCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var out []domain.Order
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		o, err := docToOrder(doc)
		if err != nil {
			// tolerate legacy documents instead of failing the whole list
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
