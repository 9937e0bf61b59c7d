package predictor

import (
	"math/rand"

	"github.com/qq173681019/JericoNewStockSystem/internal/calculator"
	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// supportResistancePrediction walks the price toward the nearest level:
// an uptrend pulls toward the next resistance, a downtrend toward the next
// support, each step covering 30% of the remaining distance. A flat trend
// produces a small bounded fluctuation instead.
func supportResistancePrediction(bars []model.OHLCV, points int, rng *rand.Rand) []float64 {
	supports, resistances := calculator.LocalExtrema(bars, 2)
	closes := calculator.Closes(bars)
	current := closes[len(closes)-1]
	trend := calculator.LinearTrend(closes, 10)

	target := current
	switch {
	case trend > 0:
		target = nextAbove(resistances, current)
	case trend < 0:
		target = nextBelow(supports, current)
	}

	out := make([]float64, 0, points)
	price := current
	for i := 0; i < points; i++ {
		if trend == 0 {
			price *= 1 + (rng.Float64()-0.5)*0.004
		} else {
			price += (target - price) * 0.3
		}
		out = append(out, price)
	}
	return out
}

// nextAbove picks the lowest level above price, or the highest level when
// price already exceeds them all.
func nextAbove(levels []float64, price float64) float64 {
	if len(levels) == 0 {
		return price
	}
	best, found := 0.0, false
	max := levels[0]
	for _, l := range levels {
		if l > max {
			max = l
		}
		if l > price && (!found || l < best) {
			best, found = l, true
		}
	}
	if found {
		return best
	}
	return max
}

// nextBelow picks the highest level below price, or the lowest level when
// price is already under them all.
func nextBelow(levels []float64, price float64) float64 {
	if len(levels) == 0 {
		return price
	}
	best, found := 0.0, false
	min := levels[0]
	for _, l := range levels {
		if l < min {
			min = l
		}
		if l < price && (!found || l > best) {
			best, found = l, true
		}
	}
	if found {
		return best
	}
	return min
}
