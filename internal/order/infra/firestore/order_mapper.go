package firestore

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/arkanhakim/livecart/internal/order/domain"
	"github.com/arkanhakim/livecart/pkg/money"
)

// orderToDoc converts an order into a Firestore-storable map. Prices are
// stored as strings so the decimal survives round-trips exactly.
func orderToDoc(o domain.Order) map[string]any {
	addr := map[string]any{
		"street": strings.TrimSpace(o.DeliveryAddress.Street),
		"email":  strings.TrimSpace(o.DeliveryAddress.Email),
		"name":   strings.TrimSpace(o.DeliveryAddress.Name),
		"phone":  strings.TrimSpace(o.DeliveryAddress.Phone),
	}

	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"productId": it.ProductID,
			"title":     it.Title,
			"price":     it.Price.String(),
			"image":     it.Image,
			"quantity":  it.Quantity,
		})
	}

	return map[string]any{
		"userId":          o.UserID,
		"vendorId":        o.VendorID,
		"status":          o.Status,
		"paymentMethod":   o.PaymentMethod,
		"totalPrice":      o.TotalPrice.String(),
		"deliveryAddress": addr,
		"items":           items,
		"createdAt":       o.CreatedAt,
	}
}

func docToOrder(doc *firestore.DocumentSnapshot) (domain.Order, error) {
	data := doc.Data()
	if data == nil {
		return domain.Order{}, fmt.Errorf("empty order document: %s", doc.Ref.ID)
	}

	getStr := func(m map[string]any, key string) string {
		if v, ok := m[key].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	getAmount := func(m map[string]any, key string) money.Amount {
		switch v := m[key].(type) {
		case string:
			if a, err := money.FromString(v); err == nil {
				return a
			}
		case float64:
			return money.FromFloat(v)
		case int64:
			return money.FromInt(v)
		}
		return money.Zero()
	}
	getInt := func(m map[string]any, key string) int {
		switch v := m[key].(type) {
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
		return 0
	}

	var addr domain.DeliveryAddress
	if m, ok := data["deliveryAddress"].(map[string]any); ok {
		addr = domain.DeliveryAddress{
			Street: getStr(m, "street"),
			Email:  getStr(m, "email"),
			Name:   getStr(m, "name"),
			Phone:  getStr(m, "phone"),
		}
	}

	var items []domain.OrderItem
	if raw, ok := data["items"].([]any); ok {
		for _, e := range raw {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			items = append(items, domain.OrderItem{
				ProductID: getStr(m, "productId"),
				Title:     getStr(m, "title"),
				Price:     getAmount(m, "price"),
				Image:     getStr(m, "image"),
				Quantity:  getInt(m, "quantity"),
			})
		}
	}
	if len(items) == 0 {
		return domain.Order{}, fmt.Errorf("order %s: missing items", doc.Ref.ID)
	}

	createdAt := time.Time{}
	if v, ok := data["createdAt"].(time.Time); ok {
		createdAt = v.UTC()
	} else if !doc.CreateTime.IsZero() {
		createdAt = doc.CreateTime.UTC()
	}

	return domain.Order{
		ID:              doc.Ref.ID,
		UserID:          getStr(data, "userId"),
		VendorID:        getStr(data, "vendorId"),
		Status:          getStr(data, "status"),
		PaymentMethod:   getStr(data, "paymentMethod"),
		TotalPrice:      getAmount(data, "totalPrice"),
		DeliveryAddress: addr,
		Items:           items,
		CreatedAt:       createdAt,
	}, nil
}
