package aggregate

import (
	"sort"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

// SeriesRow is one calendar day of a chart series. Values holds the
// unit price observed per store that day; a store absent from the map
// has no data for the day, which is not the same as zero. Renderers
// connect across such gaps.
type SeriesRow struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values,omitempty"`
}

// Series is a dense day-by-day chart series with one column per store.
type Series struct {
	Stores []string    `json:"stores"`
	Rows   []SeriesRow `json:"rows"`
}

// BuildSeries emits one row per calendar day spanning the purchases'
// full [minDate, maxDate] interval, so purchase-free days still appear
// as gap rows. When a store has several purchases on one day the
// last-processed one wins the cell, a known lossy simplification kept
// for compatibility with the dashboard's charts.
func BuildSeries(purchases []entity.NormalizedPurchase) Series {
	if len(purchases) == 0 {
		return Series{}
	}

	minDate, maxDate := purchases[0].Date, purchases[0].Date
	storeSet := make(map[string]struct{})
	for _, p := range purchases {
		if p.Date < minDate {
			minDate = p.Date
		}
		if p.Date > maxDate {
			maxDate = p.Date
		}
		storeSet[p.Store] = struct{}{}
	}

	stores := make([]string, 0, len(storeSet))
	for s := range storeSet {
		stores = append(stores, s)
	}
	sort.Strings(stores)

	start, err := time.Parse(DateFormat, minDate)
	if err != nil {
		return Series{Stores: stores}
	}
	end, err := time.Parse(DateFormat, maxDate)
	if err != nil {
		return Series{Stores: stores}
	}

	index := make(map[string]int)
	rows := make([]SeriesRow, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateFormat)
		index[date] = len(rows)
		rows = append(rows, SeriesRow{Date: date})
	}

	for _, p := range purchases {
		i, ok := index[p.Date]
		if !ok {
			continue
		}
		if rows[i].Values == nil {
			rows[i].Values = make(map[string]float64)
		}
		rows[i].Values[p.Store] = p.UnitPrice
	}

	return Series{Stores: stores, Rows: rows}
}
