package calculator

import "github.com/qq173681019/JericoNewStockSystem/internal/model"

// LocalExtrema scans the series for candidate support and resistance levels.
// A bar is resistance when its high is the maximum within ±radius samples,
// support when its low is the minimum. Falls back to the global high/low
// when no local extremum exists.
func LocalExtrema(bars []model.OHLCV, radius int) (supports, resistances []float64) {
	if len(bars) == 0 || radius <= 0 {
		return nil, nil
	}

	for i := radius; i < len(bars)-radius; i++ {
		isMax, isMin := true, true
		for j := i - radius; j <= i+radius; j++ {
			if bars[j].High > bars[i].High {
				isMax = false
			}
			if bars[j].Low < bars[i].Low {
				isMin = false
			}
		}
		if isMax {
			resistances = append(resistances, bars[i].High)
		}
		if isMin {
			supports = append(supports, bars[i].Low)
		}
	}

	if len(resistances) == 0 {
		max := bars[0].High
		for _, b := range bars {
			if b.High > max {
				max = b.High
			}
		}
		resistances = []float64{max}
	}
	if len(supports) == 0 {
		min := bars[0].Low
		for _, b := range bars {
			if b.Low < min {
				min = b.Low
			}
		}
		supports = []float64{min}
	}
	return supports, resistances
}

// LinearTrend returns the relative change over the last `window` prices.
// Zero for flat, short, or zero-priced series.
func LinearTrend(prices []float64, window int) float64 {
	if len(prices) < 2 {
		return 0
	}
	if window > len(prices) {
		window = len(prices)
	}
	tail := prices[len(prices)-window:]
	first := tail[0]
	if first == 0 {
		return 0
	}
	return (tail[len(tail)-1] - first) / first
}
