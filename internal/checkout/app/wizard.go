package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/arkanhakim/livecart/internal/checkout/domain"
	"github.com/arkanhakim/livecart/pkg/money"
)

// Field keys of the per-field validation error map.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldPayment = "payment"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrInvalidContact   = errors.New("contact info is invalid")
	ErrInvalidAddress   = errors.New("delivery address is invalid")
	ErrNoPaymentMethod  = errors.New("choose a payment method")
	ErrNoForwardStep    = errors.New("no forward transition from this step")
	ErrSubmissionFailed = errors.New("order submission failed")
)

// Wizard drives the four-step checkout flow:
//
//	Cart -> Contact -> Delivery -> Payment -> Submitting -> Done
//
// Transitions are strictly linear and each forward move is gated. A failed
// submission returns to the Payment step with the cart untouched so the
// buyer can retry.
//
// Multi-vendor carts submit only the FIRST vendor's items while TotalPrice
// still reflects the whole cart. That mirrors the shipped client behavior
// and is kept on purpose; see DESIGN.md before changing it.
type Wizard struct {
	cart     CartSource
	orders   OrderPlacer
	payments PaymentMethodSource
	qr       QREncoder
	log      *slog.Logger

	userID string

	mu        sync.Mutex
	step      domain.Step
	contact   domain.ContactInfo
	address   string
	methods   []domain.PaymentMethod
	methodID  string
	fieldErrs map[string]string
}

func NewWizard(cart CartSource, orders OrderPlacer, payments PaymentMethodSource, qr QREncoder, userID string, log *slog.Logger) *Wizard {
	if log == nil {
		log = slog.Default()
	}
	return &Wizard{
		cart:      cart,
		orders:    orders,
		payments:  payments,
		qr:        qr,
		log:       log,
		userID:    userID,
		step:      domain.StepCart,
		fieldErrs: make(map[string]string),
	}
}

func (w *Wizard) Step() domain.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// FieldErrors returns a copy of the current per-field error map.
func (w *Wizard) FieldErrors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[string]string, len(w.fieldErrs))
	for k, v := range w.fieldErrs {
		out[k] = v
	}
	return out
}

// Editing a field clears only that field's error, not the whole map.

func (w *Wizard) SetName(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contact.Name = v
	delete(w.fieldErrs, FieldName)
}

func (w *Wizard) SetEmail(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contact.Email = v
	delete(w.fieldErrs, FieldEmail)
}

func (w *Wizard) SetPhone(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contact.Phone = v
	delete(w.fieldErrs, FieldPhone)
}

func (w *Wizard) SetAddress(v string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.address = v
	delete(w.fieldErrs, FieldAddress)
}

// LoadPaymentMethods fetches and caches the selectable methods.
func (w *Wizard) LoadPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := w.payments.ListPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}

	w.mu.Lock()
	w.methods = methods
	w.mu.Unlock()
	return methods, nil
}

// SelectPaymentMethod picks a method from the previously fetched list.
func (w *Wizard) SelectPaymentMethod(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, m := range w.methods {
		if m.ID == id {
			w.methodID = id
			delete(w.fieldErrs, FieldPayment)
			return nil
		}
	}
	w.fieldErrs[FieldPayment] = "choose a payment method"
	return ErrNoPaymentMethod
}

// Next advances one step if the current step's guard passes. The Payment
// step advances through Submit, not Next.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case domain.StepCart:
		lines, err := w.cart.Lines(ctx)
		if err != nil {
			return err
		}
		if grandTotal(lines).IsZero() {
			return ErrCartEmpty
		}
		w.step = domain.StepContact
		return nil

	case domain.StepContact:
		errs := validateContact(w.contact)
		if len(errs) > 0 {
			for k, v := range errs {
				w.fieldErrs[k] = v
			}
			return ErrInvalidContact
		}
		w.step = domain.StepDelivery
		return nil

	case domain.StepDelivery:
		if msg, ok := validateAddress(w.address); !ok {
			w.fieldErrs[FieldAddress] = msg
			return ErrInvalidAddress
		}
		w.step = domain.StepPayment
		return nil

	default:
		return ErrNoForwardStep
	}
}

// Back moves one step backwards. It reports false when the wizard is at the
// first step, which means "exit the flow".
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case domain.StepContact, domain.StepDelivery, domain.StepPayment:
		w.step--
		return true
	default:
		return false
	}
}

// Submit packages the aggregated cart into an order draft and sends it. On
// success the submitted vendor's cart is cleared and a confirmation with the
// QR artifact is returned. On failure the wizard returns to the Payment step
// and the cart is preserved for retry.
func (w *Wizard) Submit(ctx context.Context) (domain.Confirmation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepPayment {
		return domain.Confirmation{}, ErrNoForwardStep
	}
	if w.methodID == "" {
		w.fieldErrs[FieldPayment] = "choose a payment method"
		return domain.Confirmation{}, ErrNoPaymentMethod
	}

	lines, err := w.cart.Lines(ctx)
	if err != nil {
		return domain.Confirmation{}, err
	}
	if len(lines) == 0 {
		return domain.Confirmation{}, ErrCartEmpty
	}

	draft := w.buildDraft(lines)

	w.step = domain.StepSubmitting
	orderID, err := w.orders.PlaceOrder(ctx, draft)
	if err != nil {
		w.step = domain.StepPayment
		return domain.Confirmation{}, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	w.step = domain.StepDone

	// The order exists now; cleanup problems are logged, not surfaced.
	if err := w.cart.ClearVendor(ctx, draft.VendorID); err != nil {
		w.log.Warn("clearing submitted vendor cart failed",
			slog.String("vendorId", draft.VendorID),
			slog.Any("err", err),
		)
	}

	conf := domain.Confirmation{OrderID: orderID}
	if w.qr != nil {
		png, err := w.qr.Encode(orderID)
		if err != nil {
			w.log.Warn("qr encoding failed", slog.String("orderId", orderID), slog.Any("err", err))
		} else {
			conf.QRPNG = png
		}
	}
	return conf, nil
}

// buildDraft restricts items to the first vendor found in the aggregation
// while the total keeps covering every line. Callers hold the mutex.
func (w *Wizard) buildDraft(lines []CartLine) domain.OrderDraft {
	vendorID := lines[0].VendorID

	var items []domain.OrderItem
	for _, ln := range lines {
		if ln.VendorID != vendorID {
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID: ln.ProductID,
			Title:     ln.Title,
			Price:     ln.Price,
			Image:     ln.Image,
			Quantity:  ln.Quantity,
		})
	}

	method := w.methodID
	for _, m := range w.methods {
		if m.ID == w.methodID && strings.TrimSpace(m.Code) != "" {
			method = m.Code
			break
		}
	}

	return domain.OrderDraft{
		DeliveryAddress: domain.DeliveryAddress{
			Street: strings.TrimSpace(w.address),
			Email:  strings.TrimSpace(w.contact.Email),
			Name:   strings.TrimSpace(w.contact.Name),
			Phone:  strings.TrimSpace(w.contact.Phone),
		},
		Items:         items,
		PaymentMethod: method,
		Status:        "pending",
		TotalPrice:    grandTotal(lines),
		UserID:        w.userID,
		VendorID:      vendorID,
	}
}

func grandTotal(lines []CartLine) money.Amount {
	total := money.Zero()
	for _, ln := range lines {
		total = total.Add(ln.Price.MulInt(ln.Quantity))
	}
	return total
}
