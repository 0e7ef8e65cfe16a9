package domain

import (
	"strings"
	"testing"

	"github.com/arkanhakim/livecart/pkg/money"
)

func item(id string, price float64) LineItem {
	return LineItem{ID: id, Title: "item " + id, Price: money.FromFloat(price), Image: ""}
}

func TestStoreAdd(t *testing.T) {
	s := NewStore()

	t.Run("new product starts at quantity 1", func(t *testing.T) {
		cart := s.Add("V1", item("P1", 1000))
		if len(cart) != 1 || cart[0].Quantity != 1 {
			t.Fatalf("got %+v", cart)
		}
	})

	t.Run("same product increments instead of duplicating", func(t *testing.T) {
		s.Add("V1", item("P1", 1000))
		cart, _ := s.Get("V1")
		if len(cart) != 1 {
			t.Fatalf("expected 1 line, got %d", len(cart))
		}
		if cart[0].Quantity != 2 {
			t.Fatalf("expected quantity 2, got %d", cart[0].Quantity)
		}
	})

	t.Run("given quantity is ignored", func(t *testing.T) {
		it := item("P2", 500)
		it.Quantity = 99
		cart := s.Add("V1", it)
		if cart[1].Quantity != 1 {
			t.Fatalf("expected quantity 1, got %d", cart[1].Quantity)
		}
	})
}

func TestStoreDecreaseRemovesAtZero(t *testing.T) {
	s := NewStore()
	s.Add("V1", item("P1", 1000))

	s.Decrease("V1", "P1")

	cart, _ := s.Get("V1")
	if cart.indexOf("P1") != -1 {
		t.Fatalf("expected P1 removed, got %+v", cart)
	}
}

func TestStoreIncreaseAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Increase("V1", "P999")

	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d vendors", s.Len())
	}
}

func TestStoreDeleteIsolation(t *testing.T) {
	s := NewStore()
	s.Add("V1", item("P1", 1000))
	s.Add("V2", item("P2", 2000))

	s.Delete("V1")

	if _, ok := s.Get("V1"); ok {
		t.Fatal("V1 should be gone")
	}
	cart, ok := s.Get("V2")
	if !ok || len(cart) != 1 {
		t.Fatalf("V2 should be untouched, got %+v", cart)
	}
}

func TestStoreVendorOrder(t *testing.T) {
	s := NewStore()
	s.Add("V3", item("P1", 10))
	s.Add("V1", item("P2", 20))
	s.Add("V2", item("P3", 30))
	s.Add("V3", item("P4", 40)) // existing vendor keeps its slot

	got := s.Vendors()
	want := []string{"V3", "V1", "V2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("vendor order %v, want %v", got, want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := NewStore()
	s.Add("V2", item("P1", 1500.5))
	s.Add("V1", item("P2", 300))
	s.Increase("V2", "P1")

	blob, err := EncodeStore(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got := DecodeStore(blob)
	if got.Len() != 2 {
		t.Fatalf("expected 2 vendors, got %d", got.Len())
	}
	if v := got.Vendors(); v[0] != "V2" || v[1] != "V1" {
		t.Fatalf("vendor order lost: %v", v)
	}
	cart, _ := got.Get("V2")
	if cart[0].Quantity != 2 || !cart[0].Price.Equal(money.FromFloat(1500.5)) {
		t.Fatalf("got %+v", cart[0])
	}
}

func TestEncodePriceIsBareNumber(t *testing.T) {
	s := NewStore()
	s.Add("V1", item("P1", 1000))

	blob, err := EncodeStore(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(blob, `"price":1000`) {
		t.Fatalf("price must serialize as a number, blob: %s", blob)
	}
}

func TestDecodeTolerance(t *testing.T) {
	cases := []struct {
		name string
		blob string
	}{
		{"empty", ""},
		{"garbage", "not json at all"},
		{"wrong top-level type", `[1,2,3]`},
		{"truncated", `{"V1": [{"id":"P1","quantity":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeStore(tc.blob); got.Len() != 0 {
				t.Fatalf("expected empty store, got %d vendors", got.Len())
			}
		})
	}

	t.Run("bad vendor dropped, good vendor kept", func(t *testing.T) {
		blob := `{"V1": "oops", "V2": [{"id":"P1","title":"a","price":100,"image":"","quantity":1}]}`
		got := DecodeStore(blob)
		if _, ok := got.Get("V1"); ok {
			t.Fatal("malformed V1 should be dropped")
		}
		cart, ok := got.Get("V2")
		if !ok || len(cart) != 1 {
			t.Fatalf("V2 should survive, got %+v", cart)
		}
	})

	t.Run("items with zero quantity or empty id dropped", func(t *testing.T) {
		blob := `{"V1": [{"id":"","price":100,"quantity":1},{"id":"P1","price":100,"quantity":0},{"id":"P2","price":100,"quantity":3}]}`
		cart, _ := DecodeStore(blob).Get("V1")
		if len(cart) != 1 || cart[0].ID != "P2" {
			t.Fatalf("got %+v", cart)
		}
	})

	t.Run("quoted price accepted", func(t *testing.T) {
		blob := `{"V1": [{"id":"P1","price":"250.75","quantity":2}]}`
		cart, _ := DecodeStore(blob).Get("V1")
		if len(cart) != 1 || !cart[0].Price.Equal(money.FromFloat(250.75)) {
			t.Fatalf("got %+v", cart)
		}
	})
}
