package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arkanhakim/livecart/internal/cart/app"
	"github.com/arkanhakim/livecart/internal/cart/domain"
	"github.com/arkanhakim/livecart/internal/cart/infra/kvstore"
	"github.com/arkanhakim/livecart/pkg/money"
	"golang.org/x/sync/errgroup"
)

func newTestService() *app.Service {
	return app.NewService(kvstore.NewMemory(), "")
}

func lineItem(id string, price float64) domain.LineItem {
	return domain.LineItem{ID: id, Title: "item " + id, Price: money.FromFloat(price)}
}

func TestAddThenIncrease(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	cart, err := svc.AddToCart(ctx, "V1", lineItem("P1", 1000))
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if len(cart) != 1 || cart[0].Quantity != 1 {
		t.Fatalf("got %+v", cart)
	}

	if err := svc.IncreaseQuantity(ctx, "V1", "P1"); err != nil {
		t.Fatalf("IncreaseQuantity: %v", err)
	}

	cart, err = svc.CartByVendor(ctx, "V1")
	if err != nil {
		t.Fatalf("CartByVendor: %v", err)
	}
	if cart[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart[0].Quantity)
	}

	count, err := svc.CountByVendor(ctx, "V1")
	if err != nil {
		t.Fatalf("CountByVendor: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}

func TestRepeatedAddKeepsOneLine(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := svc.AddToCart(ctx, "V1", lineItem("P1", 1000)); err != nil {
			t.Fatalf("AddToCart: %v", err)
		}
	}

	cart, err := svc.CartByVendor(ctx, "V1")
	if err != nil {
		t.Fatalf("CartByVendor: %v", err)
	}
	if len(cart) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(cart))
	}
	if cart[0].Quantity != n {
		t.Fatalf("expected quantity %d, got %d", n, cart[0].Quantity)
	}
}

func TestDecreaseToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.AddToCart(ctx, "V1", lineItem("P1", 1000)); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := svc.DecreaseQuantity(ctx, "V1", "P1"); err != nil {
		t.Fatalf("DecreaseQuantity: %v", err)
	}

	cart, err := svc.CartByVendor(ctx, "V1")
	if err != nil {
		t.Fatalf("CartByVendor: %v", err)
	}
	for _, it := range cart {
		if it.ID == "P1" {
			t.Fatalf("P1 should be removed, got %+v", cart)
		}
	}
}

func TestIncreaseAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if err := svc.IncreaseQuantity(ctx, "V1", "P999"); err != nil {
		t.Fatalf("IncreaseQuantity: %v", err)
	}

	store, err := svc.AllCarts(ctx)
	if err != nil {
		t.Fatalf("AllCarts: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no vendors, got %d", store.Len())
	}
}

func TestClearVendorIsolation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.AddToCart(ctx, "V1", lineItem("P1", 1000)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddToCart(ctx, "V2", lineItem("P2", 500)); err != nil {
		t.Fatal(err)
	}

	if err := svc.ClearVendor(ctx, "V1"); err != nil {
		t.Fatalf("ClearVendor: %v", err)
	}

	cart, err := svc.CartByVendor(ctx, "V1")
	if err != nil || len(cart) != 0 {
		t.Fatalf("V1 should be empty, got %+v err=%v", cart, err)
	}
	cart, err = svc.CartByVendor(ctx, "V2")
	if err != nil || len(cart) != 1 {
		t.Fatalf("V2 should be untouched, got %+v err=%v", cart, err)
	}
}

func TestCountMatchesQuantitySum(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for i := 0; i < 3; i++ {
		if _, err := svc.AddToCart(ctx, "V1", lineItem("P1", 100)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.AddToCart(ctx, "V1", lineItem("P2", 200)); err != nil {
		t.Fatal(err)
	}

	cart, err := svc.CartByVendor(ctx, "V1")
	if err != nil {
		t.Fatal(err)
	}
	sum := 0
	for _, it := range cart {
		sum += it.Quantity
	}

	count, err := svc.CountByVendor(ctx, "V1")
	if err != nil {
		t.Fatal(err)
	}
	if count != sum {
		t.Fatalf("count %d != quantity sum %d", count, sum)
	}
}

func TestClearAllRemovesBlob(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.AddToCart(ctx, "V1", lineItem("P1", 100)); err != nil {
		t.Fatal(err)
	}
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	store, err := svc.AllCarts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d vendors", store.Len())
	}
}

// Mutations are serialized internally, so concurrent increments must not
// lose updates even though every write rewrites the whole blob.
func TestConcurrentAddIncrement(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := svc.AddToCart(ctx, "V1", lineItem("P1", 1000))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddToCart failed: %v", err)
	}

	count, err := svc.CountByVendor(ctx, "V1")
	if err != nil {
		t.Fatal(err)
	}
	if count != n {
		t.Fatalf("expected count %d, got %d", n, count)
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (brokenStore) Set(context.Context, string, string) error { return errors.New("disk on fire") }
func (brokenStore) MultiRemove(context.Context, []string) error {
	return errors.New("disk on fire")
}

func TestStorageErrorsAreTyped(t *testing.T) {
	ctx := context.Background()
	svc := app.NewService(brokenStore{}, "")

	if _, err := svc.AllCarts(ctx); !errors.Is(err, app.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := svc.AddToCart(ctx, "V1", lineItem("P1", 1)); !errors.Is(err, app.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if err := svc.ClearAll(ctx); !errors.Is(err, app.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestMalformedBlobYieldsEmptyStore(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	if err := kv.Set(ctx, app.DefaultStorageKey, "{{{ not json"); err != nil {
		t.Fatal(err)
	}

	svc := app.NewService(kv, "")
	store, err := svc.AllCarts(ctx)
	if err != nil {
		t.Fatalf("AllCarts: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d vendors", store.Len())
	}
}
