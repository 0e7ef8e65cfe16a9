package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arkanhakim/livecart/internal/catalog/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	products   ProductRepo
	categories CategoryRepo
	lives      LiveRepo

	maxConcurrent int
}

func NewService(products ProductRepo, categories CategoryRepo, lives LiveRepo, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		products:      products,
		categories:    categories,
		lives:         lives,
		maxConcurrent: maxConcurrent,
	}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.VendorID = strings.TrimSpace(p.VendorID)

	if p.Title == "" || p.VendorID == "" || p.Price.IsNegative() {
		return domain.Product{}, ErrInvalidInput
	}

	return s.products.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.products.Get(ctx, id)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.products.Delete(ctx, id)
}

func (s *Service) ProductsByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, ErrInvalidInput
	}
	return s.products.ListByVendor(ctx, vendorID)
}

func (s *Service) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, ErrInvalidInput
	}
	return s.products.ListByCategory(ctx, categoryID)
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) RecentLives(ctx context.Context, limit int) ([]domain.Live, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.lives.ListRecent(ctx, limit)
}

func (s *Service) LivesByVendor(ctx context.Context, vendorID string) ([]domain.Live, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, ErrInvalidInput
	}
	return s.lives.ListByVendor(ctx, vendorID)
}

// LiveCatalog resolves the products attached to a broadcast, fetched
// concurrently. Order follows the live's attachment order.
func (s *Service) LiveCatalog(ctx context.Context, liveID string) ([]domain.Product, error) {
	if strings.TrimSpace(liveID) == "" {
		return nil, ErrInvalidInput
	}

	live, err := s.lives.Get(ctx, liveID)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(live.ProductIDs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range live.ProductIDs {
		g.Go(func() error {
			id := live.ProductIDs[idx]
			p, err := s.products.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", id, err)
			}
			products[idx] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}
