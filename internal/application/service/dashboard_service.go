package service

import (
	"context"
	"sort"
	"time"

	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
)

// DashboardService composes the landing-page overview
type DashboardService struct {
	fetcher ReceiptFetcher
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(fetcher ReceiptFetcher) *DashboardService {
	return &DashboardService{fetcher: fetcher, now: time.Now}
}

// WithClock overrides the wall clock used for join fallbacks, for tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// DashboardOverview is the landing page payload
type DashboardOverview struct {
	TotalSpent    float64             `json:"total_spent"`
	TotalVisits   int                 `json:"total_visits"`
	StoreCount    int                 `json:"store_count"`
	UniqueItems   int                 `json:"unique_items"`
	TopItems      []ItemStats         `json:"top_items"`
	TopStores     []StoreStats        `json:"top_stores"`
	RecentVisits  []Visit             `json:"recent_visits"`
	Filter        aggregate.DateRange `json:"filter"`
	Warnings      []string            `json:"warnings,omitempty"`
}

const (
	dashboardTopItems  = 5
	dashboardTopStores = 5
	dashboardRecent    = 10
)

// Overview summarizes the window: spend and visit totals from receipt
// headers, top items from line-item aggregates.
func (s *DashboardService) Overview(ctx context.Context, rng aggregate.DateRange) (*DashboardOverview, error) {
	purchases, headers, warnings := loadPurchases(ctx, s.fetcher, s.now())

	out := &DashboardOverview{Filter: rng, Warnings: warnings}

	stores := make([]StoreStats, 0)
	recent := make([]Visit, 0)
	for store, visits := range visitsByStore(headers) {
		stats := buildStoreStats(store, visits, rng)
		if stats == nil {
			continue
		}
		out.TotalSpent += stats.TotalSpent
		out.TotalVisits += stats.VisitCount
		out.StoreCount++
		recent = append(recent, stats.Visits...)
		stats.Visits = nil
		stores = append(stores, *stats)
	}
	sort.Slice(stores, func(i, j int) bool {
		if stores[i].VisitCount != stores[j].VisitCount {
			return stores[i].VisitCount > stores[j].VisitCount
		}
		return stores[i].StoreName < stores[j].StoreName
	})
	if len(stores) > dashboardTopStores {
		stores = stores[:dashboardTopStores]
	}
	out.TopStores = stores

	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > dashboardRecent {
		recent = recent[:dashboardRecent]
	}
	out.RecentVisits = recent

	buckets := aggregate.SortBuckets(
		aggregate.FilterBuckets(aggregate.Group(purchases, aggregate.ByItem), rng),
		func(a, b *aggregate.Bucket) bool { return a.TotalQuantity > b.TotalQuantity },
	)
	out.UniqueItems = len(buckets)
	if len(buckets) > dashboardTopItems {
		buckets = buckets[:dashboardTopItems]
	}
	for _, b := range buckets {
		out.TopItems = append(out.TopItems, ItemStats{
			Description:   b.Key,
			TotalQuantity: b.TotalQuantity,
			TotalPrice:    b.TotalPrice,
			AveragePrice:  b.AveragePrice(),
			PurchaseCount: b.PurchaseCount,
		})
	}

	return out, nil
}
