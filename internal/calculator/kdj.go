package calculator

import (
	"errors"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// KDJ computes the stochastic oscillator over the given period using the
// standard 2/3 smoothing, returning the latest K, D, and J values.
// Returns the neutral 50/50/50 when data is insufficient.
func KDJ(bars []model.OHLCV, period int) (k, d, j float64, err error) {
	if period <= 0 {
		return 0, 0, 0, errors.New("period must be positive")
	}
	if len(bars) < period {
		return 50, 50, 50, nil
	}

	k, d = 50, 50
	for i := period - 1; i < len(bars); i++ {
		high := bars[i-period+1].High
		low := bars[i-period+1].Low
		for _, b := range bars[i-period+1 : i+1] {
			if b.High > high {
				high = b.High
			}
			if b.Low < low {
				low = b.Low
			}
		}

		rsv := 50.0
		if high > low {
			rsv = (bars[i].Close - low) / (high - low) * 100
		}
		k = k*2/3 + rsv/3
		d = d*2/3 + k/3
	}
	j = 3*k - 2*d
	return k, d, j, nil
}
