package service

import (
	"context"
	"math"
	"net/http"
	"testing"

	"github.com/kvittoapp/kvitto-api/internal/domain/enum"
	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
	"github.com/kvittoapp/kvitto-api/pkg/pagination"
)

func newGroceryService(f *fakeFetcher) *GroceryService {
	return NewGroceryService(f, aggregate.DefaultTrendThreshold, 50).WithClock(testClock)
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestListItems(t *testing.T) {
	svc := newGroceryService(fixtureFetcher())

	result, err := svc.ListItems(context.Background(), aggregate.DateRange{}, pagination.DefaultPagination())
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}

	if result.Summary.UniqueItems != 3 {
		t.Fatalf("expected 3 unique items, got %d", result.Summary.UniqueItems)
	}
	if result.Summary.TotalPurchases != 6 {
		t.Errorf("expected 6 purchases, got %d", result.Summary.TotalPurchases)
	}
	if !almostEqual(result.Summary.TotalQuantity, 8) {
		t.Errorf("expected total quantity 8, got %v", result.Summary.TotalQuantity)
	}

	rows := result.Items.Items
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Description != "Mellanmjölk" || !almostEqual(rows[0].TotalQuantity, 4) {
		t.Errorf("expected Mellanmjölk qty 4 first, got %s qty %v", rows[0].Description, rows[0].TotalQuantity)
	}
	if !almostEqual(rows[0].TotalPrice, 36) || !almostEqual(rows[0].AveragePrice, 9) {
		t.Errorf("Mellanmjölk totals: got price %v avg %v", rows[0].TotalPrice, rows[0].AveragePrice)
	}
	if rows[1].Description != "Bananer" || rows[2].Description != "Kaffe" {
		t.Errorf("unexpected order: %s, %s", rows[1].Description, rows[2].Description)
	}
}

func TestListItemsDateFilter(t *testing.T) {
	svc := newGroceryService(fixtureFetcher())

	rng, err := aggregate.ParseDateRange("2024-01-02", "2024-01-31")
	if err != nil {
		t.Fatal(err)
	}
	result, err := svc.ListItems(context.Background(), rng, pagination.DefaultPagination())
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}

	// txn-a and the clock-dated orphan fall outside the window
	if result.Summary.UniqueItems != 2 {
		t.Fatalf("expected 2 unique items, got %d", result.Summary.UniqueItems)
	}
	rows := result.Items.Items
	if rows[0].Description != "Mellanmjölk" || !almostEqual(rows[0].TotalQuantity, 3) {
		t.Errorf("expected filtered Mellanmjölk qty 3, got %s qty %v", rows[0].Description, rows[0].TotalQuantity)
	}
	if !almostEqual(rows[0].TotalPrice, 26) {
		t.Errorf("expected filtered total 26, got %v", rows[0].TotalPrice)
	}
}

func TestListItemsPagination(t *testing.T) {
	svc := newGroceryService(fixtureFetcher())

	result, err := svc.ListItems(context.Background(), aggregate.DateRange{}, &pagination.PaginationParams{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(result.Items.Items) != 1 || result.Items.Items[0].Description != "Kaffe" {
		t.Fatalf("expected second page to hold Kaffe, got %+v", result.Items.Items)
	}
	if result.Items.Pagination.Total != 3 || !result.Items.Pagination.HasPrev {
		t.Errorf("unexpected pagination: %+v", result.Items.Pagination)
	}
}

func TestGetItem(t *testing.T) {
	svc := newGroceryService(fixtureFetcher())

	details, err := svc.GetItem(context.Background(), "Mellanmjölk", aggregate.DateRange{})
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}

	if details.PurchaseCount != 3 || !almostEqual(details.TotalQuantity, 4) {
		t.Errorf("expected 3 purchases qty 4, got %d qty %v", details.PurchaseCount, details.TotalQuantity)
	}
	if !almostEqual(details.MinUnitPrice, 8) || !almostEqual(details.MaxUnitPrice, 10) {
		t.Errorf("expected unit price range [8, 10], got [%v, %v]", details.MinUnitPrice, details.MaxUnitPrice)
	}

	// prices [10, 9, 8]: second-half mean 8.5 is 15% below the first
	if details.PriceTrend != enum.TrendDown {
		t.Errorf("expected downward trend, got %s", details.PriceTrend)
	}

	wantDates := []string{"2024-01-01", "2024-01-05", "2024-01-08"}
	if len(details.PriceHistory) != len(wantDates) {
		t.Fatalf("expected %d history points, got %d", len(wantDates), len(details.PriceHistory))
	}
	for i, want := range wantDates {
		if details.PriceHistory[i].Date != want {
			t.Errorf("history[%d]: expected %s, got %s", i, want, details.PriceHistory[i].Date)
		}
	}

	if len(details.Stores) != 2 || details.Stores[0] != "ICA Maxi" || details.Stores[1] != "Willys" {
		t.Errorf("unexpected stores: %v", details.Stores)
	}

	// dense day-by-day between the first and last purchase
	if len(details.Chart.Rows) != 8 {
		t.Errorf("expected 8 chart rows, got %d", len(details.Chart.Rows))
	}
}

func TestGetItemNotFound(t *testing.T) {
	svc := newGroceryService(fixtureFetcher())

	if _, err := svc.GetItem(context.Background(), "Ostbågar", aggregate.DateRange{}); err == nil {
		t.Fatal("expected error for unknown item")
	} else {
		wantStatus(t, err, http.StatusNotFound)
	}

	// known item, but the window excludes every purchase
	rng, _ := aggregate.ParseDateRange("2025-01-01", "2025-12-31")
	if _, err := svc.GetItem(context.Background(), "Mellanmjölk", rng); err == nil {
		t.Fatal("expected error for emptied window")
	} else {
		wantStatus(t, err, http.StatusNotFound)
	}
}

func TestGetItemOrphanFallbacks(t *testing.T) {
	svc := newGroceryService(fixtureFetcher())

	details, err := svc.GetItem(context.Background(), "Kaffe", aggregate.DateRange{})
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if len(details.PriceHistory) != 1 {
		t.Fatalf("expected 1 history point, got %d", len(details.PriceHistory))
	}
	p := details.PriceHistory[0]
	if p.Store != "Unknown Store" {
		t.Errorf("expected Unknown Store fallback, got %q", p.Store)
	}
	if p.Date != "2024-02-01" {
		t.Errorf("expected clock fallback date 2024-02-01, got %q", p.Date)
	}
}
