package domain

import (
	"testing"

	"github.com/arkanhakim/livecart/pkg/money"
)

func sampleStore() *Store {
	s := NewStore()
	s.Add("V1", item("P1", 1000))
	s.Add("V1", item("P1", 1000)) // qty 2
	s.Add("V1", item("P2", 250))
	s.Add("V2", item("P3", 99.5))
	return s
}

func TestFlatten(t *testing.T) {
	rows := Flatten(sampleStore())

	want := []struct {
		kind   RowKind
		vendor string
	}{
		{RowHeader, "V1"},
		{RowItem, "V1"},
		{RowItem, "V1"},
		{RowHeader, "V2"},
		{RowItem, "V2"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Kind != w.kind || rows[i].VendorID != w.vendor {
			t.Fatalf("row %d = {%v %s}, want {%v %s}", i, rows[i].Kind, rows[i].VendorID, w.kind, w.vendor)
		}
	}

	if !rows[0].Total.Equal(money.FromFloat(2250)) {
		t.Fatalf("V1 header total = %s, want 2250", rows[0].Total)
	}
	if !rows[3].Total.Equal(money.FromFloat(99.5)) {
		t.Fatalf("V2 header total = %s, want 99.5", rows[3].Total)
	}
}

func TestFlattenSkipsEmptyVendors(t *testing.T) {
	s := sampleStore()
	s.Set("V3", VendorCart{})

	for _, r := range Flatten(s) {
		if r.VendorID == "V3" {
			t.Fatal("empty vendor must not emit rows")
		}
	}
}

// Grand total over item rows must equal the sum of header subtotals, and
// both must equal the total computed directly from the store.
func TestGrandTotalEqualsHeaderSum(t *testing.T) {
	s := sampleStore()
	rows := Flatten(s)

	grand := GrandTotal(rows)

	headerSum := money.Zero()
	for _, r := range rows {
		if r.Kind == RowHeader {
			headerSum = headerSum.Add(r.Total)
		}
	}
	if !grand.Equal(headerSum) {
		t.Fatalf("grand total %s != header sum %s", grand, headerSum)
	}

	direct := money.Zero()
	for _, v := range s.Vendors() {
		cart, _ := s.Get(v)
		direct = direct.Add(cart.Total())
	}
	if !grand.Equal(direct) {
		t.Fatalf("grand total %s != direct store total %s", grand, direct)
	}
}

func TestGrandTotalEmpty(t *testing.T) {
	if got := GrandTotal(nil); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}
