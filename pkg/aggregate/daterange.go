package aggregate

import (
	"fmt"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

// DateRange is an inclusive calendar-date interval. Either bound may
// be empty, in which case it does not constrain.
type DateRange struct {
	Start string `json:"start_date,omitempty"` // YYYY-MM-DD
	End   string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// ParseDateRange validates caller-supplied bounds before they reach
// the aggregation core. Empty strings mean an open bound.
func ParseDateRange(start, end string) (DateRange, error) {
	r := DateRange{}
	if start != "" {
		t, err := time.Parse(DateFormat, start)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", start)
		}
		r.Start = t.Format(DateFormat)
	}
	if end != "" {
		t, err := time.Parse(DateFormat, end)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
		}
		r.End = t.Format(DateFormat)
	}
	if r.Start != "" && r.End != "" && r.Start > r.End {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s", r.Start, r.End)
	}
	return r, nil
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool { return r.Start == "" && r.End == "" }

// Contains reports whether the canonical YYYY-MM-DD date lies within
// the inclusive bounds. Lexicographic comparison is safe on the
// canonical layout.
func (r DateRange) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// Filter retains the purchases whose date lies within the range. With
// both bounds open the input is returned unchanged.
func Filter(purchases []entity.NormalizedPurchase, r DateRange) []entity.NormalizedPurchase {
	if r.IsZero() {
		return purchases
	}
	out := make([]entity.NormalizedPurchase, 0, len(purchases))
	for _, p := range purchases {
		if r.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out
}

// FilterBuckets narrows already-grouped buckets to the range. Each
// surviving bucket's statistics are rebuilt from its surviving member
// purchases; buckets with no survivors are dropped.
func FilterBuckets(buckets map[string]*Bucket, r DateRange) map[string]*Bucket {
	if r.IsZero() {
		return buckets
	}
	out := make(map[string]*Bucket, len(buckets))
	for key, b := range buckets {
		if nb := Rebuild(key, Filter(b.Purchases, r)); nb != nil {
			out[key] = nb
		}
	}
	return out
}
