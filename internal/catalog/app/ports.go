package app

import (
	"context"

	"github.com/arkanhakim/livecart/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
}

type CategoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type LiveRepo interface {
	Get(ctx context.Context, id string) (domain.Live, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Live, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Live, error)
}
