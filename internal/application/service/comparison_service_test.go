package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
)

func newComparisonService(f *fakeFetcher) *ComparisonService {
	return NewComparisonService(f).WithClock(testClock)
}

func TestCompareStores(t *testing.T) {
	svc := newComparisonService(fixtureFetcher())

	result, err := svc.CompareStores(context.Background(), "ICA Maxi", "Willys", aggregate.DateRange{})
	if err != nil {
		t.Fatalf("CompareStores: %v", err)
	}

	// Kaffe was never bought at either store, so the inner join keeps
	// only the two shared items
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 shared items, got %d", len(result.Rows))
	}

	// Bananer: 15 vs 12 (diff 3) sorts ahead of Mellanmjölk: 9 vs 8
	bananer := result.Rows[0]
	if bananer.Description != "Bananer" {
		t.Fatalf("expected Bananer first, got %s", bananer.Description)
	}
	if bananer.CheaperStore != "Willys" || !almostEqual(bananer.PriceDifference, 3) {
		t.Errorf("Bananer: cheaper %s diff %v", bananer.CheaperStore, bananer.PriceDifference)
	}
	if !almostEqual(bananer.PercentDifference, 20) {
		t.Errorf("expected 20%% difference, got %v", bananer.PercentDifference)
	}

	milk := result.Rows[1]
	if milk.Description != "Mellanmjölk" || milk.CheaperStore != "Willys" {
		t.Fatalf("unexpected second row: %+v", milk)
	}
	// the signal is the most recent unit price, not the average
	if !almostEqual(milk.Store1.MostRecentPrice, 9) || milk.Store1.MostRecentDate != "2024-01-05" {
		t.Errorf("store1 recent: %v at %s", milk.Store1.MostRecentPrice, milk.Store1.MostRecentDate)
	}
	if !almostEqual(milk.Store2.MostRecentPrice, 8) {
		t.Errorf("store2 recent: %v", milk.Store2.MostRecentPrice)
	}
	if !almostEqual(milk.Store1.AveragePrice, 28.0/3.0) {
		t.Errorf("store1 average: %v", milk.Store1.AveragePrice)
	}
}

func TestCompareStoresDateFilter(t *testing.T) {
	svc := newComparisonService(fixtureFetcher())

	// the window drops every ICA Maxi purchase, emptying the join
	rng, err := aggregate.ParseDateRange("2024-01-06", "2024-01-31")
	if err != nil {
		t.Fatal(err)
	}
	result, err := svc.CompareStores(context.Background(), "ICA Maxi", "Willys", rng)
	if err != nil {
		t.Fatalf("CompareStores: %v", err)
	}
	if len(result.Rows) != 0 {
		t.Fatalf("expected empty join, got %+v", result.Rows)
	}
}

func TestCompareStoresValidation(t *testing.T) {
	svc := newComparisonService(fixtureFetcher())

	cases := []struct {
		name           string
		store1, store2 string
	}{
		{"same store", "ICA Maxi", "ICA Maxi"},
		{"missing first", "", "Willys"},
		{"missing second", "ICA Maxi", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CompareStores(context.Background(), tc.store1, tc.store2, aggregate.DateRange{})
			if err == nil {
				t.Fatal("expected validation error")
			}
			wantStatus(t, err, http.StatusBadRequest)
		})
	}
}
