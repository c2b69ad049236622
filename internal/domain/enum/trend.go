package enum

// Trend is the coarse price-direction classification for a
// date-ordered series of unit prices.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// String returns the string representation of the trend
func (t Trend) String() string {
	return string(t)
}

// IsValid checks if the trend value is valid
func (t Trend) IsValid() bool {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return true
	}
	return false
}
