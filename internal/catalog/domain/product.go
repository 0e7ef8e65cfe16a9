package domain

import (
	"time"

	"github.com/arkanhakim/livecart/pkg/money"
)

// Product is a catalog entry a vendor can attach to a live broadcast.
type Product struct {
	ID          string
	VendorID    string
	CategoryID  string
	Title       string
	Description string
	Image       string
	Price       money.Amount
	CreatedAt   time.Time
}

type Category struct {
	ID    string
	Name  string
	Image string
}

// Live is a broadcast: an external video embed plus the product IDs the
// vendor attached to it.
type Live struct {
	ID         string
	VendorID   string
	Title      string
	VideoURL   string
	ProductIDs []string
	CreatedAt  time.Time
}
