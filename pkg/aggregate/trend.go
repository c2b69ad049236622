package aggregate

import (
	"github.com/kvittoapp/kvitto-api/internal/domain/enum"
)

// DefaultTrendThreshold is the relative change below which a price
// series is considered stable.
const DefaultTrendThreshold = 0.10

// ClassifyTrend labels a date-ordered series of unit prices by
// comparing the arithmetic mean of its first half against its second
// half. It is a coarse two-bucket comparison, not a regression.
// Fewer than two observations classify as stable. threshold <= 0
// falls back to DefaultTrendThreshold.
func ClassifyTrend(unitPrices []float64, threshold float64) enum.Trend {
	if len(unitPrices) < 2 {
		return enum.TrendStable
	}
	if threshold <= 0 {
		threshold = DefaultTrendThreshold
	}

	mid := len(unitPrices) / 2
	firstMean := mean(unitPrices[:mid])
	secondMean := mean(unitPrices[mid:])

	if firstMean == 0 {
		return enum.TrendStable
	}

	change := (secondMean - firstMean) / firstMean
	switch {
	case change > threshold:
		return enum.TrendUp
	case change < -threshold:
		return enum.TrendDown
	default:
		return enum.TrendStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
