package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/arkanhakim/livecart/internal/cart/domain"
	"github.com/arkanhakim/livecart/pkg/money"
)

// ErrStorageUnavailable wraps failures of the underlying key-value store.
var ErrStorageUnavailable = errors.New("cart storage unavailable")

const DefaultStorageKey = "livecart:carts"

// Service owns the cart blob: every operation is a read-modify-write of the
// whole store under one key. A mutex serializes mutations so two rapid calls
// cannot interleave between the read and the write; the public contract is
// unchanged by the lock.
type Service struct {
	kv  KeyValueStore
	key string
	mu  sync.Mutex
}

func NewService(kv KeyValueStore, storageKey string) *Service {
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}
	return &Service{kv: kv, key: storageKey}
}

func (s *Service) load(ctx context.Context) (*domain.Store, error) {
	blob, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", ErrStorageUnavailable, s.key, err)
	}
	if !ok {
		return domain.NewStore(), nil
	}
	return domain.DecodeStore(blob), nil
}

func (s *Service) save(ctx context.Context, store *domain.Store) error {
	blob, err := domain.EncodeStore(store)
	if err != nil {
		return fmt.Errorf("encode cart store: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		return fmt.Errorf("%w: write %q: %v", ErrStorageUnavailable, s.key, err)
	}
	return nil
}

// AllCarts returns the whole per-vendor mapping. Missing blob means an empty
// store, never an error.
func (s *Service) AllCarts(ctx context.Context) (*domain.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) CartByVendor(ctx context.Context, vendorID string) (domain.VendorCart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	cart, _ := store.Get(vendorID)
	return cart, nil
}

// AddToCart adds a product to a vendor's cart and returns the updated cart.
// An existing line is incremented; the item's Quantity field is ignored.
func (s *Service) AddToCart(ctx context.Context, vendorID string, item domain.LineItem) (domain.VendorCart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	cart := store.Add(vendorID, item)
	if err := s.save(ctx, store); err != nil {
		return nil, err
	}
	return cart, nil
}

// IncreaseQuantity bumps a line by one. Absent items are a silent no-op.
func (s *Service) IncreaseQuantity(ctx context.Context, vendorID, productID string) error {
	return s.mutate(ctx, func(store *domain.Store) {
		store.Increase(vendorID, productID)
	})
}

// DecreaseQuantity lowers a line by one; reaching zero removes the line.
func (s *Service) DecreaseQuantity(ctx context.Context, vendorID, productID string) error {
	return s.mutate(ctx, func(store *domain.Store) {
		store.Decrease(vendorID, productID)
	})
}

func (s *Service) RemoveFromCart(ctx context.Context, vendorID, productID string) error {
	return s.mutate(ctx, func(store *domain.Store) {
		store.Remove(vendorID, productID)
	})
}

// ClearVendor deletes the vendor key entirely, leaving other vendors alone.
func (s *Service) ClearVendor(ctx context.Context, vendorID string) error {
	return s.mutate(ctx, func(store *domain.Store) {
		store.Delete(vendorID)
	})
}

// ClearAll removes the blob itself.
func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.MultiRemove(ctx, []string{s.key}); err != nil {
		return fmt.Errorf("%w: remove %q: %v", ErrStorageUnavailable, s.key, err)
	}
	return nil
}

func (s *Service) CountByVendor(ctx context.Context, vendorID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	cart, _ := store.Get(vendorID)
	return cart.Count(), nil
}

// Rows returns the flattened aggregation view of the current store.
func (s *Service) Rows(ctx context.Context) ([]domain.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Flatten(store), nil
}

// GrandTotal computes the whole-cart total across all vendors.
func (s *Service) GrandTotal(ctx context.Context) (money.Amount, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return money.Zero(), err
	}
	return domain.GrandTotal(rows), nil
}

func (s *Service) mutate(ctx context.Context, fn func(*domain.Store)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return err
	}
	fn(store)
	return s.save(ctx, store)
}
