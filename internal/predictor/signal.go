package predictor

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/qq173681019/JericoNewStockSystem/internal/calculator"
	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// newRNG seeds the prediction noise from the timeframe and a fingerprint
// of the series, so repeated calls on the same input agree.
func newRNG(bars []model.OHLCV, tf model.Timeframe) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", tf, len(bars))
	if len(bars) > 0 {
		fmt.Fprintf(h, ":%x:%x",
			math.Float64bits(bars[0].Close),
			math.Float64bits(bars[len(bars)-1].Close))
	}
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// linearTrendPrediction extrapolates the average per-bar return of the
// last ten closes. Empty input yields zeros.
func linearTrendPrediction(bars []model.OHLCV, points int) []float64 {
	out := make([]float64, points)
	if len(bars) == 0 {
		return out
	}
	closes := calculator.Closes(bars)

	n := 10
	if n > len(closes) {
		n = len(closes)
	}
	tail := closes[len(closes)-n:]
	step := 0.0
	if n > 1 && tail[0] != 0 {
		step = (tail[n-1] - tail[0]) / tail[0] / float64(n)
	}

	price := closes[len(closes)-1]
	for i := range out {
		price *= 1 + step
		out[i] = price
	}
	return out
}

// confidenceFrom measures how much the sub-models agree: the average
// per-step standard deviation across models, normalized by the mean price,
// mapped to [0.5, 0.95].
func confidenceFrom(paths ...[]float64) float64 {
	if len(paths) == 0 || len(paths[0]) == 0 {
		return 0.5
	}
	points := len(paths[0])

	totalStd, totalMean := 0.0, 0.0
	for i := 0; i < points; i++ {
		m := 0.0
		for _, p := range paths {
			m += p[i]
		}
		m /= float64(len(paths))

		variance := 0.0
		for _, p := range paths {
			d := p[i] - m
			variance += d * d
		}
		totalStd += math.Sqrt(variance / float64(len(paths)))
		totalMean += m
	}
	avgStd := totalStd / float64(points)
	avgMean := totalMean / float64(points)
	if avgMean <= 0 {
		return 0.5
	}

	conf := 1 - (avgStd/avgMean)*10
	if conf < 0.5 {
		conf = 0.5
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

// tradingSignal maps the expected end-of-horizon change and the ensemble
// confidence onto a recommendation. The threshold ladder is evaluated top
// to bottom: confident moves beyond ±5% are strong signals, beyond ±2%
// regular ones, anything inside (-2%, +2%] holds.
func tradingSignal(current float64, ensemble []float64, confidence float64) model.TradingSignal {
	change := 0.0
	if current > 0 && len(ensemble) > 0 {
		change = (ensemble[len(ensemble)-1] - current) / current * 100
	}

	var action model.Action
	var recommendation string
	switch {
	case change > 5 && confidence > 0.7:
		action, recommendation = model.ActionStrongBuy, "强烈买入"
	case change > 2 && confidence > 0.6:
		action, recommendation = model.ActionBuy, "买入"
	case change > -2 && change <= 2:
		action, recommendation = model.ActionHold, "持有"
	case change > -5 && confidence > 0.6:
		action, recommendation = model.ActionSell, "卖出"
	default:
		action, recommendation = model.ActionStrongSell, "强烈卖出"
	}

	return model.TradingSignal{
		Recommendation: recommendation,
		Action:         action,
		Confidence:     confidence,
		ExpectedChange: change,
	}
}
