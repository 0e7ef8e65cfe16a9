package domain

import "github.com/arkanhakim/livecart/pkg/money"

type RowKind int

const (
	RowHeader RowKind = iota
	RowItem
)

// Row is one entry of the flattened, checkout-ready cart view: either a
// vendor header carrying that vendor's subtotal, or a line item tagged with
// its owning vendor.
type Row struct {
	Kind     RowKind      `json:"kind"`
	VendorID string       `json:"vendorId"`
	Total    money.Amount `json:"total,omitzero"`
	Item     LineItem     `json:"item,omitzero"`
}

// Flatten turns the per-vendor mapping into a single ordered sequence: one
// header row per non-empty vendor followed by that vendor's items, vendors
// in first-added order.
func Flatten(s *Store) []Row {
	var rows []Row
	for _, vendorID := range s.Vendors() {
		cart, ok := s.Get(vendorID)
		if !ok || len(cart) == 0 {
			continue
		}
		rows = append(rows, Row{
			Kind:     RowHeader,
			VendorID: vendorID,
			Total:    cart.Total(),
		})
		for _, it := range cart {
			rows = append(rows, Row{
				Kind:     RowItem,
				VendorID: vendorID,
				Item:     it,
			})
		}
	}
	return rows
}

// GrandTotal sums price x quantity over item rows only. Header rows are
// skipped so vendor subtotals are not counted twice; the result always
// equals the sum of all header totals.
func GrandTotal(rows []Row) money.Amount {
	total := money.Zero()
	for _, r := range rows {
		if r.Kind != RowItem {
			continue
		}
		total = total.Add(r.Item.Price.MulInt(r.Item.Quantity))
	}
	return total
}
