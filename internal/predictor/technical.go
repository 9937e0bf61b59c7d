package predictor

import (
	"math/rand"

	"github.com/qq173681019/JericoNewStockSystem/internal/calculator"
	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// indicatorWeights distributes the technical vote across the five
// indicators. The mix shifts with the horizon: oscillators dominate
// intraday, trend and volume dominate the monthly view.
type indicatorWeights struct {
	MACD   float64
	RSI    float64
	Boll   float64
	KDJ    float64
	Volume float64
}

func indicatorWeightsFor(tf model.Timeframe) indicatorWeights {
	switch tf {
	case model.Timeframe30Min, model.Timeframe1Hour:
		return indicatorWeights{MACD: 0.15, RSI: 0.20, Boll: 0.25, KDJ: 0.25, Volume: 0.15}
	case model.Timeframe30Day:
		return indicatorWeights{MACD: 0.35, RSI: 0.20, Boll: 0.15, KDJ: 0.10, Volume: 0.20}
	default:
		return indicatorWeights{MACD: 0.25, RSI: 0.20, Boll: 0.20, KDJ: 0.15, Volume: 0.20}
	}
}

// technicalPrediction turns the latest indicator readings into a signed
// strength in [-1, 1] and walks the price forward with geometric decay.
func technicalPrediction(bars []model.OHLCV, spec timeframeSpec, tf model.Timeframe, rng *rand.Rand) []float64 {
	closes := calculator.Closes(bars)
	current := closes[len(closes)-1]

	macd, signal, _ := calculator.MACD(closes)
	rsi, rsiErr := calculator.RSI(closes, 14)
	upper, _, lower, bollErr := calculator.Bollinger(closes, 20, 2)
	k, _, _, kdjErr := calculator.KDJ(bars, 14)
	volTrend := calculator.VolumeTrend(bars, 5)
	priceTrend := calculator.LinearTrend(closes, 10)

	macdSig := -1.0
	if macd > signal {
		macdSig = 1.0
	}

	rsiSig := 0.0
	if rsiErr == nil {
		switch {
		case rsi > 70:
			rsiSig = -1.0
		case rsi < 30:
			rsiSig = 1.0
		}
	}

	bollSig := 0.0
	if bollErr == nil {
		switch {
		case current > upper:
			bollSig = -1.0
		case current < lower:
			bollSig = 1.0
		}
	}

	kdjSig := 0.0
	if kdjErr == nil {
		switch {
		case k > 80:
			kdjSig = -1.0
		case k < 20:
			kdjSig = 1.0
		}
	}

	// Volume expansion confirms the price trend; a quiet tape stays neutral.
	volSig := 0.0
	if volTrend > 0.2 {
		switch {
		case priceTrend > 0:
			volSig = 1.0
		case priceTrend < 0:
			volSig = -1.0
		}
	}

	w := indicatorWeightsFor(tf)
	strength := macdSig*w.MACD + rsiSig*w.RSI + bollSig*w.Boll + kdjSig*w.KDJ + volSig*w.Volume

	out := make([]float64, 0, spec.Points)
	price := current
	for i := 0; i < spec.Points; i++ {
		change := strength * spec.BaseVol
		change += (rng.Float64() - 0.5) * spec.BaseVol * 0.4
		change = clampChange(change, spec.BaseVol)
		price *= 1 + change
		out = append(out, price)
		// Signal fades as the horizon extends.
		strength *= 0.9
	}
	return out
}

// clampChange bounds a single-step change to twice the base volatility.
func clampChange(change, baseVol float64) float64 {
	limit := 2 * baseVol
	if change > limit {
		return limit
	}
	if change < -limit {
		return -limit
	}
	return change
}
