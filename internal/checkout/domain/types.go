package domain

import "github.com/arkanhakim/livecart/pkg/money"

// Step is the wizard's position in the linear checkout flow.
type Step int

const (
	StepCart Step = iota + 1
	StepContact
	StepDelivery
	StepPayment
	StepSubmitting
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepCart:
		return "cart"
	case StepContact:
		return "contact"
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	case StepSubmitting:
		return "submitting"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

type ContactInfo struct {
	Name  string
	Email string
	Phone string
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type OrderItem struct {
	ProductID string
	Title     string
	Price     money.Amount
	Image     string
	Quantity  int
}

type DeliveryAddress struct {
	Street string
	Email  string
	Name   string
	Phone  string
}

// OrderDraft is the submission payload packaged from the aggregated cart at
// confirmation time.
type OrderDraft struct {
	DeliveryAddress DeliveryAddress
	Items           []OrderItem
	PaymentMethod   string
	Status          string
	TotalPrice      money.Amount
	UserID          string
	VendorID        string
}

// Confirmation is what the buyer sees after a successful submission: the
// created order's ID and its QR-encoded artifact.
type Confirmation struct {
	OrderID string
	QRPNG   []byte
}
