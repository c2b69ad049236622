package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
)

func newStoreService(f *fakeFetcher) *StoreService {
	return NewStoreService(f).WithClock(testClock)
}

func TestListStores(t *testing.T) {
	svc := newStoreService(fixtureFetcher())

	result, err := svc.ListStores(context.Background(), aggregate.DateRange{})
	if err != nil {
		t.Fatalf("ListStores: %v", err)
	}

	if len(result.Stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(result.Stores))
	}

	ica := result.Stores[0]
	if ica.StoreName != "ICA Maxi" || ica.VisitCount != 2 {
		t.Fatalf("expected ICA Maxi with 2 visits first, got %s with %d", ica.StoreName, ica.VisitCount)
	}
	if !almostEqual(ica.TotalSpent, 68) || !almostEqual(ica.AverageSpent, 34) {
		t.Errorf("ICA Maxi spend: got total %v avg %v", ica.TotalSpent, ica.AverageSpent)
	}
	if ica.LastVisit != "2024-01-05" {
		t.Errorf("expected last visit 2024-01-05, got %s", ica.LastVisit)
	}

	if result.Stores[1].StoreName != "Willys" || !almostEqual(result.Stores[1].TotalSpent, 20) {
		t.Errorf("unexpected second store: %+v", result.Stores[1])
	}
}

func TestListStoresDateFilter(t *testing.T) {
	svc := newStoreService(fixtureFetcher())

	rng, err := aggregate.ParseDateRange("2024-01-06", "2024-01-31")
	if err != nil {
		t.Fatal(err)
	}
	result, err := svc.ListStores(context.Background(), rng)
	if err != nil {
		t.Fatalf("ListStores: %v", err)
	}

	// every ICA Maxi visit falls outside the window, so the store is dropped
	if len(result.Stores) != 1 || result.Stores[0].StoreName != "Willys" {
		t.Fatalf("expected only Willys, got %+v", result.Stores)
	}
	if result.Stores[0].VisitCount != 1 {
		t.Errorf("expected 1 surviving visit, got %d", result.Stores[0].VisitCount)
	}
}

func TestGetStore(t *testing.T) {
	svc := newStoreService(fixtureFetcher())

	details, err := svc.GetStore(context.Background(), "ICA Maxi", aggregate.DateRange{})
	if err != nil {
		t.Fatalf("GetStore: %v", err)
	}

	if details.VisitCount != 2 || !almostEqual(details.TotalSpent, 68) {
		t.Errorf("expected 2 visits total 68, got %d total %v", details.VisitCount, details.TotalSpent)
	}

	if len(details.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(details.Items))
	}
	if details.Items[0].Description != "Mellanmjölk" || !almostEqual(details.Items[0].TotalQuantity, 3) {
		t.Errorf("expected Mellanmjölk qty 3 first, got %s qty %v", details.Items[0].Description, details.Items[0].TotalQuantity)
	}
	// only the ICA Maxi purchases count toward the item aggregates
	if details.Items[1].Description != "Bananer" || !almostEqual(details.Items[1].TotalPrice, 30) {
		t.Errorf("unexpected second item: %+v", details.Items[1])
	}
}

func TestGetStoreNotFound(t *testing.T) {
	svc := newStoreService(fixtureFetcher())

	if _, err := svc.GetStore(context.Background(), "Lidl", aggregate.DateRange{}); err == nil {
		t.Fatal("expected error for unknown store")
	} else {
		wantStatus(t, err, http.StatusNotFound)
	}
}

func TestGetVisit(t *testing.T) {
	svc := newStoreService(fixtureFetcher())

	visit, err := svc.GetVisit(context.Background(), "ICA Maxi", "txn-a")
	if err != nil {
		t.Fatalf("GetVisit: %v", err)
	}

	if !almostEqual(visit.TotalAmount, 40) || visit.PaymentType != "Card" {
		t.Errorf("unexpected header fields: %+v", visit)
	}
	if len(visit.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(visit.Items))
	}
	// sorted by line price descending; the zero-quantity line is dropped
	if visit.Items[0].Description != "Bananer" || !almostEqual(visit.Items[0].Price, 30) {
		t.Errorf("expected Bananer 30 first, got %+v", visit.Items[0])
	}
	if !almostEqual(visit.Items[0].UnitPrice, 15) {
		t.Errorf("expected unit price 15, got %v", visit.Items[0].UnitPrice)
	}
}

func TestGetVisitNotFound(t *testing.T) {
	svc := newStoreService(fixtureFetcher())

	// the transaction exists but belongs to another store
	if _, err := svc.GetVisit(context.Background(), "Willys", "txn-a"); err == nil {
		t.Fatal("expected error for mismatched store")
	} else {
		wantStatus(t, err, http.StatusNotFound)
	}
}
