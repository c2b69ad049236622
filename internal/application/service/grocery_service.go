package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/internal/domain/enum"
	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
	"github.com/kvittoapp/kvitto-api/pkg/apperror"
	"github.com/kvittoapp/kvitto-api/pkg/pagination"
)

// GroceryService analyzes purchased items across all receipts
type GroceryService struct {
	fetcher        ReceiptFetcher
	trendThreshold float64
	topItemsLimit  int
	now            func() time.Time
}

// NewGroceryService creates a new grocery analysis service
func NewGroceryService(fetcher ReceiptFetcher, trendThreshold float64, topItemsLimit int) *GroceryService {
	if topItemsLimit <= 0 {
		topItemsLimit = 50
	}
	return &GroceryService{
		fetcher:        fetcher,
		trendThreshold: trendThreshold,
		topItemsLimit:  topItemsLimit,
		now:            time.Now,
	}
}

// WithClock overrides the wall clock used for join fallbacks, for tests.
func (s *GroceryService) WithClock(now func() time.Time) *GroceryService {
	s.now = now
	return s
}

// ItemStats is one aggregate row of the item list
type ItemStats struct {
	Description   string  `json:"description"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalPrice    float64 `json:"total_price"`
	AveragePrice  float64 `json:"average_price"`
	PurchaseCount int     `json:"purchase_count"`
}

// ItemListSummary summarizes the listed items
type ItemListSummary struct {
	UniqueItems    int     `json:"unique_items"`
	TotalPurchases int     `json:"total_purchases"`
	TotalQuantity  float64 `json:"total_quantity"`
}

// ItemListResult is the item-analysis page payload
type ItemListResult struct {
	Summary  ItemListSummary                        `json:"summary"`
	Items    *pagination.PaginatedResult[ItemStats] `json:"items"`
	Filter   aggregate.DateRange                    `json:"filter"`
	Warnings []string                               `json:"warnings,omitempty"`
}

// PricePoint is one purchase of the item, used for the price history
type PricePoint struct {
	Date          string  `json:"date"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      float64 `json:"quantity"`
	TransactionID string  `json:"transaction_id"`
	Store         string  `json:"store"`
}

// ItemDetails is the item-detail page payload
type ItemDetails struct {
	Description   string              `json:"description"`
	TotalQuantity float64             `json:"total_quantity"`
	TotalPrice    float64             `json:"total_price"`
	AveragePrice  float64             `json:"average_price"`
	PurchaseCount int                 `json:"purchase_count"`
	MinUnitPrice  float64             `json:"min_unit_price"`
	MaxUnitPrice  float64             `json:"max_unit_price"`
	PriceTrend    enum.Trend          `json:"price_trend"`
	Stores        []string            `json:"stores"`
	PriceHistory  []PricePoint        `json:"price_history"`
	Chart         aggregate.Series    `json:"chart"`
	Filter        aggregate.DateRange `json:"filter"`
	Warnings      []string            `json:"warnings,omitempty"`
}

// ListItems returns the most purchased items, sorted by total quantity
// descending and capped at the configured limit.
func (s *GroceryService) ListItems(ctx context.Context, rng aggregate.DateRange, params *pagination.PaginationParams) (*ItemListResult, error) {
	purchases, _, warnings := loadPurchases(ctx, s.fetcher, s.now())
	purchases = aggregate.Filter(purchases, rng)

	buckets := aggregate.SortBuckets(aggregate.Group(purchases, aggregate.ByItem), func(a, b *aggregate.Bucket) bool {
		return a.TotalQuantity > b.TotalQuantity
	})
	if len(buckets) > s.topItemsLimit {
		buckets = buckets[:s.topItemsLimit]
	}

	summary := ItemListSummary{UniqueItems: len(buckets)}
	rows := make([]ItemStats, 0, len(buckets))
	for _, b := range buckets {
		summary.TotalPurchases += b.PurchaseCount
		summary.TotalQuantity += b.TotalQuantity
		rows = append(rows, ItemStats{
			Description:   b.Key,
			TotalQuantity: b.TotalQuantity,
			TotalPrice:    b.TotalPrice,
			AveragePrice:  b.AveragePrice(),
			PurchaseCount: b.PurchaseCount,
		})
	}

	page, pag := pagination.Slice(rows, params)
	return &ItemListResult{
		Summary:  summary,
		Items:    pagination.NewPaginatedResult(page, pag),
		Filter:   rng,
		Warnings: warnings,
	}, nil
}

// GetItem returns the full analysis for one item: totals, price
// history, trend classification and the chart series.
func (s *GroceryService) GetItem(ctx context.Context, name string, rng aggregate.DateRange) (*ItemDetails, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}

	purchases, _, warnings := loadPurchases(ctx, s.fetcher, s.now())

	matching := make([]entity.NormalizedPurchase, 0)
	for _, p := range purchases {
		if p.ItemDescription == name {
			matching = append(matching, p)
		}
	}
	matching = aggregate.Filter(matching, rng)
	if len(matching) == 0 {
		return nil, apperror.NewNotFoundError("Item")
	}

	bucket := aggregate.Rebuild(name, matching)

	history := make([]PricePoint, 0, len(matching))
	for _, p := range matching {
		history = append(history, PricePoint{
			Date:          p.Date,
			UnitPrice:     p.UnitPrice,
			Quantity:      p.Quantity,
			TransactionID: p.TransactionID,
			Store:         p.Store,
		})
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].Date < history[j].Date })

	prices := make([]float64, len(history))
	storeSet := make(map[string]struct{})
	for i, h := range history {
		prices[i] = h.UnitPrice
		storeSet[h.Store] = struct{}{}
	}
	stores := make([]string, 0, len(storeSet))
	for st := range storeSet {
		stores = append(stores, st)
	}
	sort.Strings(stores)

	return &ItemDetails{
		Description:   name,
		TotalQuantity: bucket.TotalQuantity,
		TotalPrice:    bucket.TotalPrice,
		AveragePrice:  bucket.AveragePrice(),
		PurchaseCount: bucket.PurchaseCount,
		MinUnitPrice:  bucket.MinUnitPrice,
		MaxUnitPrice:  bucket.MaxUnitPrice,
		PriceTrend:    aggregate.ClassifyTrend(prices, s.trendThreshold),
		Stores:        stores,
		PriceHistory:  history,
		Chart:         aggregate.BuildSeries(matching),
		Filter:        rng,
		Warnings:      warnings,
	}, nil
}
