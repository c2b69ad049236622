package aggregate

import (
	"math"
	"testing"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// milkPurchases is the two-transaction fixture used throughout:
// txn A 2024-01-01 qty 1 @ 10, txn B 2024-01-05 qty 2 @ 9.
func milkPurchases() []entity.NormalizedPurchase {
	return []entity.NormalizedPurchase{
		{Date: "2024-01-01", Store: "StoreX", ItemDescription: "Milk", Quantity: 1, UnitPrice: 10, TransactionID: "A"},
		{Date: "2024-01-05", Store: "StoreX", ItemDescription: "Milk", Quantity: 2, UnitPrice: 9, TransactionID: "B"},
	}
}

func TestGroupByItem(t *testing.T) {
	buckets := Group(milkPurchases(), ByItem)

	b, ok := buckets["Milk"]
	if !ok {
		t.Fatalf("missing Milk bucket, got keys %v", len(buckets))
	}
	if b.TotalQuantity != 3 {
		t.Errorf("total quantity = %v, want 3", b.TotalQuantity)
	}
	if !almostEqual(b.TotalPrice, 28) {
		t.Errorf("total price = %v, want 28", b.TotalPrice)
	}
	if !almostEqual(b.AveragePrice(), 28.0/3.0) {
		t.Errorf("average price = %v, want %v", b.AveragePrice(), 28.0/3.0)
	}
	if b.PurchaseCount != 2 {
		t.Errorf("purchase count = %v, want 2", b.PurchaseCount)
	}
	if b.MinUnitPrice != 9 || b.MaxUnitPrice != 10 {
		t.Errorf("min/max unit price = %v/%v, want 9/10", b.MinUnitPrice, b.MaxUnitPrice)
	}
}

func TestGroupOrderIndependence(t *testing.T) {
	forward := milkPurchases()
	reversed := []entity.NormalizedPurchase{forward[1], forward[0]}

	a := Group(forward, ByItem)["Milk"]
	b := Group(reversed, ByItem)["Milk"]

	if a.TotalQuantity != b.TotalQuantity ||
		!almostEqual(a.TotalPrice, b.TotalPrice) ||
		a.PurchaseCount != b.PurchaseCount ||
		a.MinUnitPrice != b.MinUnitPrice ||
		a.MaxUnitPrice != b.MaxUnitPrice {
		t.Errorf("buckets differ by input order: %+v vs %+v", a, b)
	}
}

func TestAveragePriceZeroQuantity(t *testing.T) {
	b := &Bucket{Key: "empty"}
	if got := b.AveragePrice(); got != 0 {
		t.Errorf("average price of empty bucket = %v, want 0", got)
	}
}

func TestBucketSavingsAccumulation(t *testing.T) {
	purchases := []entity.NormalizedPurchase{
		{Date: "2024-01-01", Store: "StoreX", ItemDescription: "Milk", Quantity: 1, UnitPrice: 10, DiscountValue: 2, VoucherValue: 1},
		{Date: "2024-01-02", Store: "StoreX", ItemDescription: "Milk", Quantity: 1, UnitPrice: 10, DiscountValue: 0.5},
	}
	b := Group(purchases, ByItem)["Milk"]
	if !almostEqual(b.TotalDiscount, 2.5) {
		t.Errorf("total discount = %v, want 2.5", b.TotalDiscount)
	}
	if !almostEqual(b.TotalSavings, 3.5) {
		t.Errorf("total savings = %v, want 3.5", b.TotalSavings)
	}
}

func TestSortBucketsByQuantityDesc(t *testing.T) {
	purchases := []entity.NormalizedPurchase{
		{Date: "2024-01-01", Store: "StoreX", ItemDescription: "Milk", Quantity: 1, UnitPrice: 10},
		{Date: "2024-01-01", Store: "StoreX", ItemDescription: "Bread", Quantity: 5, UnitPrice: 4},
	}
	sorted := SortBuckets(Group(purchases, ByItem), func(a, b *Bucket) bool {
		return a.TotalQuantity > b.TotalQuantity
	})
	if len(sorted) != 2 || sorted[0].Key != "Bread" {
		t.Fatalf("expected Bread first, got %+v", sorted)
	}
}

func TestMostRecent(t *testing.T) {
	latest, ok := MostRecent(milkPurchases())
	if !ok {
		t.Fatal("expected a latest purchase")
	}
	if latest.Date != "2024-01-05" || latest.UnitPrice != 9 {
		t.Errorf("latest = %s@%v, want 2024-01-05@9", latest.Date, latest.UnitPrice)
	}

	if _, ok := MostRecent(nil); ok {
		t.Error("empty input must report ok=false")
	}
}
