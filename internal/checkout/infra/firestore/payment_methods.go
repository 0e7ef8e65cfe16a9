package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/arkanhakim/livecart/internal/checkout/domain"
)

const paymentMethodsCollection = "paymentMethods"

type PaymentMethodRepo struct {
	client *firestore.Client
}

func NewPaymentMethodRepo(client *firestore.Client) *PaymentMethodRepo {
	return &PaymentMethodRepo{client: client}
}

func (r *PaymentMethodRepo) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	it := r.client.Collection(paymentMethodsCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	getStr := func(m map[string]any, key string) string {
		if v, ok := m[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}

	var out []domain.PaymentMethod
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list payment methods: %w", err)
		}
		data := doc.Data()
		out = append(out, domain.PaymentMethod{
			ID:   doc.Ref.ID,
			Code: getStr(data, "code"),
			Name: getStr(data, "name"),
			Icon: getStr(data, "icon"),
		})
	}
	return out, nil
}
