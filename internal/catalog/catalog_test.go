package catalog

import (
	"math/rand"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSearchScoresAcrossFields(t *testing.T) {
	svc := newTestService(t)

	results := svc.Search("brooks running", "", 0, "")
	if len(results) == 0 {
		t.Fatal("expected matches for brooks running")
	}
	// Both terms hit Brooks shoes, so they outrank single-term matches.
	if results[0].Brand != "Brooks" {
		t.Errorf("top result brand = %q, want Brooks", results[0].Brand)
	}
	if len(results) > 6 {
		t.Errorf("got %d results, cap is 6", len(results))
	}
}

func TestSearchCategoryAndPriceFilters(t *testing.T) {
	svc := newTestService(t)

	for _, r := range svc.Search("running", "books", 0, "") {
		if r.Category != "books" {
			t.Errorf("category filter leaked %q", r.ID)
		}
	}
	for _, r := range svc.Search("shoes", "shoes", 150, "") {
		if r.BasePrice > 150 {
			t.Errorf("%s base price %.2f exceeds max 150", r.ID, r.BasePrice)
		}
	}
}

func TestSearchSizeFilter(t *testing.T) {
	svc := newTestService(t)

	for _, r := range svc.Search("running shoes", "shoes", 0, "14") {
		found := false
		for _, s := range r.AvailableSizes {
			if s == "14" {
				found = true
			}
		}
		if !found {
			t.Errorf("%s returned for size 14 but does not carry it", r.ID)
		}
	}
}

func TestSearchNoMatchingTermsReturnsNothing(t *testing.T) {
	svc := newTestService(t)

	if got := svc.Search("quantum lawnmower", "", 0, ""); len(got) != 0 {
		t.Errorf("got %d results for nonsense query, want 0", len(got))
	}
	if got := svc.Search("", "books", 0, ""); len(got) != 0 {
		t.Errorf("got %d results for empty query, want 0", len(got))
	}
}

func TestVendorPricesInvariants(t *testing.T) {
	svc := newTestService(t)

	offers, err := svc.VendorPrices("hoka_bondi", 2)
	if err != nil {
		t.Fatalf("VendorPrices: %v", err)
	}
	if len(offers) != 5 {
		t.Fatalf("got %d offers, want 5", len(offers))
	}
	base := 174.99
	for i, o := range offers {
		if o.UnitPrice < base*0.87 || o.UnitPrice > base*1.13 {
			t.Errorf("offer %d unit price %.2f outside ±12%% of base", i, o.UnitPrice)
		}
		if o.UnitFinalPrice > o.UnitPrice {
			t.Errorf("offer %d final %.2f above unit %.2f", i, o.UnitFinalPrice, o.UnitPrice)
		}
		if o.Quantity != 2 {
			t.Errorf("offer %d quantity = %d, want 2", i, o.Quantity)
		}
		if want := round2(o.UnitFinalPrice * 2); o.TotalPrice != want {
			t.Errorf("offer %d total %.2f, want %.2f", i, o.TotalPrice, want)
		}
		if o.Price != o.UnitPrice || o.FinalPrice != o.UnitFinalPrice || o.Discount != o.UnitDiscount {
			t.Errorf("offer %d legacy price fields diverge", i)
		}
		if i > 0 && offers[i-1].UnitFinalPrice > o.UnitFinalPrice {
			t.Errorf("offers not sorted ascending at %d", i)
		}
		if !o.InStock {
			t.Errorf("offer %d not in stock", i)
		}
	}
}

func TestVendorPricesUnknownProduct(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.VendorPrices("nope", 1); err == nil {
		t.Fatal("expected error for unknown product")
	}
}

func TestVendorPricesQuantityFloor(t *testing.T) {
	svc := newTestService(t)
	offers, err := svc.VendorPrices("atomic_habits", 0)
	if err != nil {
		t.Fatalf("VendorPrices: %v", err)
	}
	if offers[0].Quantity != 1 {
		t.Errorf("quantity = %d, want floor of 1", offers[0].Quantity)
	}
}
