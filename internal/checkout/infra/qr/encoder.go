package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Encoder renders order IDs as QR PNGs for the confirmation screen.
type Encoder struct {
	size int
}

func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = defaultSize
	}
	return &Encoder{size: size}
}

func (e *Encoder) Encode(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id is empty")
	}
	png, err := qrcode.Encode(orderID, qrcode.Medium, e.size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return png, nil
}
