package adapter

import (
	"context"

	cartapp "github.com/arkanhakim/livecart/internal/cart/app"
	cartdom "github.com/arkanhakim/livecart/internal/cart/domain"
	checkoutapp "github.com/arkanhakim/livecart/internal/checkout/app"
)

// CartServiceSource feeds the wizard from the cart service's aggregation
// view.
type CartServiceSource struct {
	svc *cartapp.Service
}

func NewCartServiceSource(svc *cartapp.Service) *CartServiceSource {
	return &CartServiceSource{svc: svc}
}

func (s *CartServiceSource) Lines(ctx context.Context) ([]checkoutapp.CartLine, error) {
	rows, err := s.svc.Rows(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]checkoutapp.CartLine, 0, len(rows))
	for _, r := range rows {
		if r.Kind != cartdom.RowItem {
			continue
		}
		lines = append(lines, checkoutapp.CartLine{
			VendorID:  r.VendorID,
			ProductID: r.Item.ID,
			Title:     r.Item.Title,
			Price:     r.Item.Price,
			Image:     r.Item.Image,
			Quantity:  r.Item.Quantity,
		})
	}
	return lines, nil
}

func (s *CartServiceSource) ClearVendor(ctx context.Context, vendorID string) error {
	return s.svc.ClearVendor(ctx, vendorID)
}
