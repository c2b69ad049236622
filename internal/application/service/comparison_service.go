package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
	"github.com/kvittoapp/kvitto-api/pkg/apperror"
)

// ComparisonService compares item prices between two stores
type ComparisonService struct {
	fetcher ReceiptFetcher
	now     func() time.Time
}

// NewComparisonService creates a new price comparison service
func NewComparisonService(fetcher ReceiptFetcher) *ComparisonService {
	return &ComparisonService{fetcher: fetcher, now: time.Now}
}

// WithClock overrides the wall clock used for join fallbacks, for tests.
func (s *ComparisonService) WithClock(now func() time.Time) *ComparisonService {
	s.now = now
	return s
}

// StorePriceStats describes one item's price history at one store
type StorePriceStats struct {
	AveragePrice    float64 `json:"average_price"`
	MinPrice        float64 `json:"min_price"`
	MaxPrice        float64 `json:"max_price"`
	PurchaseCount   int     `json:"purchase_count"`
	MostRecentPrice float64 `json:"most_recent_price"`
	MostRecentDate  string  `json:"most_recent_date"`
}

// ComparisonRow is one item bought at both stores
type ComparisonRow struct {
	Description       string          `json:"description"`
	Store1            StorePriceStats `json:"store1"`
	Store2            StorePriceStats `json:"store2"`
	CheaperStore      string          `json:"cheaper_store"`
	PriceDifference   float64         `json:"price_difference"`
	PercentDifference float64         `json:"percent_difference"`
}

// ComparisonResult is the store-comparison payload
type ComparisonResult struct {
	Store1   string              `json:"store1"`
	Store2   string              `json:"store2"`
	Rows     []ComparisonRow     `json:"rows"`
	Filter   aggregate.DateRange `json:"filter"`
	Warnings []string            `json:"warnings,omitempty"`
}

func priceStats(b *aggregate.Bucket) StorePriceStats {
	stats := StorePriceStats{
		AveragePrice:  b.AveragePrice(),
		MinPrice:      b.MinUnitPrice,
		MaxPrice:      b.MaxUnitPrice,
		PurchaseCount: b.PurchaseCount,
	}
	if latest, ok := aggregate.MostRecent(b.Purchases); ok {
		stats.MostRecentPrice = latest.UnitPrice
		stats.MostRecentDate = latest.Date
	}
	return stats
}

// CompareStores joins the item catalogs of two stores. Only items
// bought at both stores within the window appear in the result.
func (s *ComparisonService) CompareStores(ctx context.Context, store1, store2 string, rng aggregate.DateRange) (*ComparisonResult, error) {
	store1 = strings.TrimSpace(store1)
	store2 = strings.TrimSpace(store2)
	if store1 == "" || store2 == "" {
		return nil, apperror.NewBadRequestError("Two store names are required")
	}
	if store1 == store2 {
		return nil, apperror.NewBadRequestError("Pick two different stores to compare")
	}

	purchases, _, warnings := loadPurchases(ctx, s.fetcher, s.now())
	purchases = aggregate.Filter(purchases, rng)

	perStore := func(store string) map[string]*aggregate.Bucket {
		mine := make([]entity.NormalizedPurchase, 0)
		for _, p := range purchases {
			if p.Store == store {
				mine = append(mine, p)
			}
		}
		return aggregate.Group(mine, aggregate.ByItem)
	}
	left := perStore(store1)
	right := perStore(store2)

	rows := make([]ComparisonRow, 0)
	for item, b1 := range left {
		b2, ok := right[item]
		if !ok {
			continue
		}
		s1 := priceStats(b1)
		s2 := priceStats(b2)

		row := ComparisonRow{Description: item, Store1: s1, Store2: s2}
		row.PriceDifference = math.Abs(s1.MostRecentPrice - s2.MostRecentPrice)
		switch {
		case s1.MostRecentPrice < s2.MostRecentPrice:
			row.CheaperStore = store1
		case s2.MostRecentPrice < s1.MostRecentPrice:
			row.CheaperStore = store2
		}
		if higher := math.Max(s1.MostRecentPrice, s2.MostRecentPrice); higher > 0 {
			row.PercentDifference = row.PriceDifference / higher * 100
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PriceDifference != rows[j].PriceDifference {
			return rows[i].PriceDifference > rows[j].PriceDifference
		}
		return rows[i].Description < rows[j].Description
	})

	return &ComparisonResult{
		Store1:   store1,
		Store2:   store2,
		Rows:     rows,
		Filter:   rng,
		Warnings: warnings,
	}, nil
}
