package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
	"github.com/kvittoapp/kvitto-api/pkg/apperror"
)

// StoreService analyzes shopping trips per store
type StoreService struct {
	fetcher ReceiptFetcher
	now     func() time.Time
}

// NewStoreService creates a new store analysis service
func NewStoreService(fetcher ReceiptFetcher) *StoreService {
	return &StoreService{fetcher: fetcher, now: time.Now}
}

// WithClock overrides the wall clock used for join fallbacks, for tests.
func (s *StoreService) WithClock(now func() time.Time) *StoreService {
	s.now = now
	return s
}

// Visit is one shopping trip to a store
type Visit struct {
	Date          string  `json:"date"`
	TransactionID string  `json:"transaction_id"`
	TotalAmount   float64 `json:"total_amount"`
}

// StoreStats aggregates the visits to one store
type StoreStats struct {
	StoreName    string  `json:"store_name"`
	VisitCount   int     `json:"visit_count"`
	TotalSpent   float64 `json:"total_spent"`
	AverageSpent float64 `json:"average_spent"`
	LastVisit    string  `json:"last_visit"`
	Visits       []Visit `json:"visits"`
}

// StoreListResult is the stores page payload
type StoreListResult struct {
	Stores   []StoreStats        `json:"stores"`
	Filter   aggregate.DateRange `json:"filter"`
	Warnings []string            `json:"warnings,omitempty"`
}

// StoreDetails is the store-detail page payload
type StoreDetails struct {
	StoreStats
	Items    []ItemStats         `json:"items"`
	Filter   aggregate.DateRange `json:"filter"`
	Warnings []string            `json:"warnings,omitempty"`
}

// VisitItem is one line of a receipt
type VisitItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	UnitPrice   float64 `json:"unit_price"`
}

// VisitDetails is the receipt-detail page payload
type VisitDetails struct {
	TransactionID string      `json:"transaction_id"`
	StoreName     string      `json:"store_name"`
	Date          string      `json:"date"`
	TotalAmount   float64     `json:"total_amount"`
	TotalDiscount float64     `json:"total_discount"`
	VATAmount     float64     `json:"vat_amount"`
	PaymentType   string      `json:"payment_type"`
	ReceiptType   string      `json:"receipt_type"`
	Items         []VisitItem `json:"items"`
	Warnings      []string    `json:"warnings,omitempty"`
}

// visitsByStore folds receipt headers into per-store visit lists.
// Headers without a positive total are not counted as visits.
func visitsByStore(headers []entity.RawReceiptHeader) map[string][]Visit {
	visits := make(map[string][]Visit)
	for _, h := range headers {
		if h.TransactionID == "" || h.TotalAmount <= 0 {
			continue
		}
		store := strings.TrimSpace(h.StoreName)
		if store == "" {
			store = entity.UnknownStore
		}
		date := aggregate.NormalizeDate(h.Timestamp)
		if date == "" {
			continue
		}
		visits[store] = append(visits[store], Visit{
			Date:          date,
			TransactionID: h.TransactionID,
			TotalAmount:   h.TotalAmount,
		})
	}
	return visits
}

// buildStoreStats recomputes the store statistics from the given
// visits; nil when no visit survives the filter.
func buildStoreStats(store string, visits []Visit, rng aggregate.DateRange) *StoreStats {
	kept := make([]Visit, 0, len(visits))
	for _, v := range visits {
		if rng.Contains(v.Date) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	stats := &StoreStats{StoreName: store, Visits: kept}
	for _, v := range kept {
		stats.VisitCount++
		stats.TotalSpent += v.TotalAmount
		if v.Date > stats.LastVisit {
			stats.LastVisit = v.Date
		}
	}
	stats.AverageSpent = stats.TotalSpent / float64(stats.VisitCount)
	return stats
}

// ListStores returns visit statistics per store, sorted by visit count
// descending.
func (s *StoreService) ListStores(ctx context.Context, rng aggregate.DateRange) (*StoreListResult, error) {
	headers, warnings := s.fetcher.FetchReceiptHeaders(ctx)

	stores := make([]StoreStats, 0)
	for store, visits := range visitsByStore(headers) {
		if stats := buildStoreStats(store, visits, rng); stats != nil {
			stores = append(stores, *stats)
		}
	}
	sort.Slice(stores, func(i, j int) bool {
		if stores[i].VisitCount != stores[j].VisitCount {
			return stores[i].VisitCount > stores[j].VisitCount
		}
		return stores[i].StoreName < stores[j].StoreName
	})

	return &StoreListResult{Stores: stores, Filter: rng, Warnings: warnings}, nil
}

// GetStore returns the visit statistics and per-item aggregates for
// one store.
func (s *StoreService) GetStore(ctx context.Context, name string, rng aggregate.DateRange) (*StoreDetails, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Store name is required")
	}

	purchases, headers, warnings := loadPurchases(ctx, s.fetcher, s.now())

	visits := visitsByStore(headers)[name]
	if len(visits) == 0 {
		return nil, apperror.NewNotFoundError("Store")
	}
	stats := buildStoreStats(name, visits, rng)
	if stats == nil {
		// the store exists but the window excludes every visit
		stats = &StoreStats{StoreName: name, Visits: []Visit{}}
	}

	storePurchases := make([]entity.NormalizedPurchase, 0)
	for _, p := range purchases {
		if p.Store == name {
			storePurchases = append(storePurchases, p)
		}
	}
	buckets := aggregate.FilterBuckets(aggregate.Group(storePurchases, aggregate.ByItem), rng)

	items := make([]ItemStats, 0, len(buckets))
	for _, b := range aggregate.SortBuckets(buckets, func(a, b *aggregate.Bucket) bool {
		return a.TotalQuantity > b.TotalQuantity
	}) {
		items = append(items, ItemStats{
			Description:   b.Key,
			TotalQuantity: b.TotalQuantity,
			TotalPrice:    b.TotalPrice,
			AveragePrice:  b.AveragePrice(),
			PurchaseCount: b.PurchaseCount,
		})
	}

	return &StoreDetails{
		StoreStats: *stats,
		Items:      items,
		Filter:     rng,
		Warnings:   warnings,
	}, nil
}

// GetVisit returns one receipt with its line items, sorted by line
// price descending.
func (s *StoreService) GetVisit(ctx context.Context, store, transactionID string) (*VisitDetails, error) {
	store = strings.TrimSpace(store)
	if store == "" || transactionID == "" {
		return nil, apperror.NewBadRequestError("Store name and visit id are required")
	}

	items, itemWarnings := s.fetcher.FetchLineItems(ctx)
	headers, headerWarnings := s.fetcher.FetchReceiptHeaders(ctx)
	warnings := append(itemWarnings, headerWarnings...)

	var header *entity.RawReceiptHeader
	for i := range headers {
		if headers[i].TransactionID == transactionID && strings.TrimSpace(headers[i].StoreName) == store {
			header = &headers[i]
			break
		}
	}
	if header == nil {
		return nil, apperror.NewNotFoundError("Visit")
	}

	lines := make([]VisitItem, 0)
	for _, it := range items {
		if it.TransactionID != transactionID || it.Quantity <= 0 || it.Price <= 0 {
			continue
		}
		desc := strings.TrimSpace(it.ItemDescription)
		if desc == "" {
			desc = entity.UnknownItem
		}
		lines = append(lines, VisitItem{
			Description: desc,
			Quantity:    it.Quantity,
			Price:       it.Price,
			UnitPrice:   it.Price / it.Quantity,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Price > lines[j].Price })

	return &VisitDetails{
		TransactionID: header.TransactionID,
		StoreName:     store,
		Date:          header.Timestamp,
		TotalAmount:   header.TotalAmount,
		TotalDiscount: header.TotalDiscount,
		VATAmount:     header.VATAmount,
		PaymentType:   header.PaymentType,
		ReceiptType:   header.ReceiptType,
		Items:         lines,
		Warnings:      warnings,
	}, nil
}
