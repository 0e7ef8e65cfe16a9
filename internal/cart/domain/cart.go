package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arkanhakim/livecart/pkg/money"
)

// LineItem is one product entry in a vendor's cart. A vendor cart holds at
// most one LineItem per product ID; adding the same product again increments
// Quantity instead of appending.
type LineItem struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Price    money.Amount `json:"price"`
	Image    string       `json:"image"`
	Quantity int          `json:"quantity"`
}

type VendorCart []LineItem

// Total is the sum of price x quantity over the cart.
func (c VendorCart) Total() money.Amount {
	total := money.Zero()
	for _, it := range c {
		total = total.Add(it.Price.MulInt(it.Quantity))
	}
	return total
}

// Count is the sum of quantities over the cart.
func (c VendorCart) Count() int {
	n := 0
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

func (c VendorCart) indexOf(productID string) int {
	for i, it := range c {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

// Store maps vendor IDs to their carts. Vendor order is the order vendors
// were first added, independent of Go map iteration; the aggregation view
// and the serialized blob both rely on it.
type Store struct {
	order []string
	carts map[string]VendorCart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]VendorCart)}
}

func (s *Store) Len() int {
	return len(s.order)
}

// Vendors returns vendor IDs in first-added order. The slice is a copy.
func (s *Store) Vendors() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Store) Get(vendorID string) (VendorCart, bool) {
	c, ok := s.carts[vendorID]
	return c, ok
}

// Set stores a vendor's cart, keeping the vendor's position if it already
// exists and appending it otherwise.
func (s *Store) Set(vendorID string, cart VendorCart) {
	if _, ok := s.carts[vendorID]; !ok {
		s.order = append(s.order, vendorID)
	}
	s.carts[vendorID] = cart
}

// Delete removes the vendor key entirely. Cleared vendors do not stay behind
// as empty sequences.
func (s *Store) Delete(vendorID string) {
	if _, ok := s.carts[vendorID]; !ok {
		return
	}
	delete(s.carts, vendorID)
	for i, v := range s.order {
		if v == vendorID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Add puts a product into a vendor's cart: an existing line gets its
// quantity incremented by one, a new product starts at quantity one. The
// item's own Quantity field is ignored.
func (s *Store) Add(vendorID string, item LineItem) VendorCart {
	cart, _ := s.Get(vendorID)
	if i := cart.indexOf(item.ID); i >= 0 {
		cart[i].Quantity++
	} else {
		item.Quantity = 1
		cart = append(cart, item)
	}
	s.Set(vendorID, cart)
	return cart
}

// Increase bumps a line's quantity by one. Absent items are left alone; the
// lenient no-op is part of the contract.
func (s *Store) Increase(vendorID, productID string) {
	cart, ok := s.Get(vendorID)
	if !ok {
		return
	}
	if i := cart.indexOf(productID); i >= 0 {
		cart[i].Quantity++
		s.Set(vendorID, cart)
	}
}

// Decrease lowers a line's quantity by one. A line that reaches zero is
// removed, not clamped at one.
func (s *Store) Decrease(vendorID, productID string) {
	cart, ok := s.Get(vendorID)
	if !ok {
		return
	}
	i := cart.indexOf(productID)
	if i < 0 {
		return
	}
	cart[i].Quantity--
	if cart[i].Quantity <= 0 {
		cart = append(cart[:i], cart[i+1:]...)
	}
	s.Set(vendorID, cart)
}

// Remove drops the line with the given product ID regardless of quantity.
func (s *Store) Remove(vendorID, productID string) {
	cart, ok := s.Get(vendorID)
	if !ok {
		return
	}
	if i := cart.indexOf(productID); i >= 0 {
		cart = append(cart[:i], cart[i+1:]...)
		s.Set(vendorID, cart)
	}
}

// EncodeStore serializes the store as one JSON object keyed by vendor ID,
// keys in vendor first-added order.
func EncodeStore(s *Store) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, vendorID := range s.order {
		cart := s.carts[vendorID]
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(vendorID)
		if err != nil {
			return "", err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if cart == nil {
			cart = VendorCart{}
		}
		items, err := json.Marshal(cart)
		if err != nil {
			return "", err
		}
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// DecodeStore parses a cart blob. It never fails: a malformed blob yields an
// empty store, malformed vendors or items are dropped, and vendor order
// follows the blob's textual key order.
func DecodeStore(blob string) *Store {
	s := NewStore()
	if strings.TrimSpace(blob) == "" {
		return s
	}

	dec := json.NewDecoder(strings.NewReader(blob))
	tok, err := dec.Token()
	if err != nil {
		return s
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return s
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return s
		}
		vendorID, ok := keyTok.(string)
		if !ok {
			return s
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return s
		}

		var items []LineItem
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}

		cart := make(VendorCart, 0, len(items))
		for _, it := range items {
			if it.ID == "" || it.Quantity < 1 {
				continue
			}
			cart = append(cart, it)
		}
		if len(cart) > 0 {
			s.Set(vendorID, cart)
		}
	}
	return s
}
