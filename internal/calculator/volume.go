package calculator

import "github.com/qq173681019/JericoNewStockSystem/internal/model"

// VolumeTrend compares the mean volume of the most recent `period` bars
// against the mean of the `period` bars before them, returned as a relative
// change. Zero when there is not enough history or no prior volume.
func VolumeTrend(bars []model.OHLCV, period int) float64 {
	if period <= 0 || len(bars) < 2*period {
		return 0
	}

	recent, prior := 0.0, 0.0
	n := len(bars)
	for _, b := range bars[n-period:] {
		recent += b.Volume
	}
	for _, b := range bars[n-2*period : n-period] {
		prior += b.Volume
	}
	if prior == 0 {
		return 0
	}
	return (recent - prior) / prior
}
