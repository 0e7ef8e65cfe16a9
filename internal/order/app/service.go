package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arkanhakim/livecart/internal/order/domain"
)

type Service struct {
	repo   OrderRepo
	mailer Mailer // nil disables confirmation mail
	log    *slog.Logger
}

func NewService(repo OrderRepo, mailer Mailer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, mailer: mailer, log: log}
}

// Create validates and persists an order submission. Submission is
// at-most-once from the caller's view: there is no idempotency key, a retry
// after a timeout may create a second order.
func (s *Service) Create(ctx context.Context, draft domain.Draft) (domain.Order, error) {
	if strings.TrimSpace(draft.UserID) == "" {
		return domain.Order{}, fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(draft.VendorID) == "" {
		return domain.Order{}, fmt.Errorf("vendor id is required")
	}
	if strings.TrimSpace(draft.PaymentMethod) == "" {
		return domain.Order{}, fmt.Errorf("payment method is required")
	}
	if len(draft.Items) == 0 {
		return domain.Order{}, fmt.Errorf("items must not be empty")
	}
	for i, it := range draft.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("item %d: quantity must be positive, got %d", i, it.Quantity)
		}
		if it.Price.IsNegative() {
			return domain.Order{}, fmt.Errorf("item %d: price cannot be negative", i)
		}
	}

	order := domain.Order{
		UserID:          draft.UserID,
		VendorID:        draft.VendorID,
		Status:          domain.StatusPending,
		PaymentMethod:   draft.PaymentMethod,
		TotalPrice:      draft.TotalPrice,
		DeliveryAddress: draft.DeliveryAddress,
		Items:           draft.Items,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	if s.mailer != nil && created.DeliveryAddress.Email != "" {
		if err := s.mailer.SendOrderConfirmation(ctx, created.DeliveryAddress.Email, created); err != nil {
			s.log.Warn("order confirmation mail failed",
				slog.String("orderId", created.ID),
				slog.Any("err", err),
			)
		}
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, fmt.Errorf("order id is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	return s.repo.ListByUser(ctx, userID)
}
