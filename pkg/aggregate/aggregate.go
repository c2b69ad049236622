package aggregate

import (
	"math"
	"sort"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

// KeyFunc extracts the grouping key from a purchase.
type KeyFunc func(entity.NormalizedPurchase) string

// ByItem groups purchases by item description.
func ByItem(p entity.NormalizedPurchase) string { return p.ItemDescription }

// ByStore groups purchases by store name.
func ByStore(p entity.NormalizedPurchase) string { return p.Store }

// ByItemStore groups purchases by the (item, store) pair. The key is
// only used for map identity; callers that need the parts keep them on
// the member purchases.
func ByItemStore(p entity.NormalizedPurchase) string {
	return p.ItemDescription + "\x00" + p.Store
}

// Bucket accumulates statistics for one grouping key. Member purchases
// are retained so that date filtering can rebuild the statistics from
// scratch instead of adjusting them incrementally.
type Bucket struct {
	Key           string                      `json:"key"`
	TotalQuantity float64                     `json:"total_quantity"`
	TotalPrice    float64                     `json:"total_price"`
	PurchaseCount int                         `json:"purchase_count"`
	MinUnitPrice  float64                     `json:"min_unit_price"`
	MaxUnitPrice  float64                     `json:"max_unit_price"`
	TotalDiscount float64                     `json:"total_discount"`
	TotalSavings  float64                     `json:"total_savings"`
	Purchases     []entity.NormalizedPurchase `json:"-"`
}

// add folds one purchase into the bucket.
func (b *Bucket) add(p entity.NormalizedPurchase) {
	if b.PurchaseCount == 0 {
		b.MinUnitPrice = p.UnitPrice
		b.MaxUnitPrice = p.UnitPrice
	} else {
		b.MinUnitPrice = math.Min(b.MinUnitPrice, p.UnitPrice)
		b.MaxUnitPrice = math.Max(b.MaxUnitPrice, p.UnitPrice)
	}
	b.TotalQuantity += p.Quantity
	b.TotalPrice += p.TotalPrice()
	b.PurchaseCount++
	b.TotalDiscount += p.DiscountValue
	b.TotalSavings += p.DiscountValue + p.VoucherValue
	b.Purchases = append(b.Purchases, p)
}

// AveragePrice is always derived from the accumulated totals, never
// stored, so it cannot drift from them.
func (b *Bucket) AveragePrice() float64 {
	if b.TotalQuantity == 0 {
		return 0
	}
	return b.TotalPrice / b.TotalQuantity
}

// Group buckets purchases by the given key function. Map iteration
// order is unspecified; consumers sort explicitly by a stated field.
func Group(purchases []entity.NormalizedPurchase, key KeyFunc) map[string]*Bucket {
	buckets := make(map[string]*Bucket)
	for _, p := range purchases {
		k := key(p)
		b, ok := buckets[k]
		if !ok {
			b = &Bucket{Key: k}
			buckets[k] = b
		}
		b.add(p)
	}
	return buckets
}

// Rebuild recomputes a bucket from the given members. It returns nil
// when no members survive, in which case the bucket is dropped.
func Rebuild(key string, members []entity.NormalizedPurchase) *Bucket {
	if len(members) == 0 {
		return nil
	}
	b := &Bucket{Key: key}
	for _, p := range members {
		b.add(p)
	}
	return b
}

// SortBuckets flattens a bucket map into a slice ordered by the given
// less function (e.g. total quantity descending).
func SortBuckets(buckets map[string]*Bucket, less func(a, b *Bucket) bool) []*Bucket {
	out := make([]*Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// MostRecent returns the purchase with the latest date, the "current
// price" signal for store comparisons. Ties are broken by scan order.
// ok is false for an empty input.
func MostRecent(purchases []entity.NormalizedPurchase) (latest entity.NormalizedPurchase, ok bool) {
	for _, p := range purchases {
		if !ok || p.Date > latest.Date {
			latest = p
			ok = true
		}
	}
	return latest, ok
}
