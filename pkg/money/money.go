// Package money provides an exact decimal amount type shared by the cart,
// catalog and order contexts. Amounts marshal as bare JSON numbers so the
// persisted cart blob stays compatible with clients that wrote plain numbers.
package money

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

type Amount struct {
	d decimal.Decimal
}

func Zero() Amount {
	return Amount{}
}

func FromFloat(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

func FromInt(n int64) Amount {
	return Amount{d: decimal.NewFromInt(n)}
}

func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d: d}, nil
}

func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// MulInt returns the amount multiplied by an integer quantity.
func (a Amount) MulInt(n int) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromInt(int64(n)))}
}

func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

func (a Amount) String() string {
	return a.d.String()
}

func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// MarshalJSON emits a bare number, not a quoted string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts both plain numbers and quoted numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.d = decimal.Decimal{}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", data, err)
	}
	a.d = d
	return nil
}
