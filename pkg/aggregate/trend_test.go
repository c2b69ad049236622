package aggregate

import (
	"testing"

	"github.com/kvittoapp/kvitto-api/internal/domain/enum"
)

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name   string
		prices []float64
		want   enum.Trend
	}{
		{"clear rise", []float64{10, 10, 10, 12, 12, 12}, enum.TrendUp},
		{"within threshold", []float64{10, 10, 10, 10.2, 10.1, 10.3}, enum.TrendStable},
		{"clear fall", []float64{12, 12, 12, 10, 10, 10}, enum.TrendDown},
		{"single point", []float64{10}, enum.TrendStable},
		{"empty", nil, enum.TrendStable},
		{"flat", []float64{10, 10, 10, 10}, enum.TrendStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyTrend(tc.prices, DefaultTrendThreshold); got != tc.want {
				t.Errorf("ClassifyTrend(%v) = %s, want %s", tc.prices, got, tc.want)
			}
		})
	}
}

func TestClassifyTrendOddLengthSplit(t *testing.T) {
	// n=5 splits 2|3: first mean 10, second mean 12
	if got := ClassifyTrend([]float64{10, 10, 12, 12, 12}, 0.10); got != enum.TrendUp {
		t.Errorf("odd-length split = %s, want up", got)
	}
}

func TestClassifyTrendCustomThreshold(t *testing.T) {
	prices := []float64{10, 10, 10.6, 10.6} // +6% change

	if got := ClassifyTrend(prices, 0.05); got != enum.TrendUp {
		t.Errorf("threshold 5%% = %s, want up", got)
	}
	if got := ClassifyTrend(prices, 0.10); got != enum.TrendStable {
		t.Errorf("threshold 10%% = %s, want stable", got)
	}
}
