package predictor

import (
	"fmt"
	"log"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// Predictor blends three heuristic sub-models into a short-horizon price
// path estimate. It is a best-effort estimator, not a trained or validated
// forecasting model; confidence never leaves [0.5, 0.95] and the whole
// pipeline degrades to "last close, hold" instead of returning errors.
type Predictor struct {
	weights Weights
}

// Weights controls the blend of the three sub-models.
type Weights struct {
	Technical         float64
	ML                float64
	SupportResistance float64
}

// DefaultWeights is the fixed production blend.
var DefaultWeights = Weights{Technical: 0.3, ML: 0.4, SupportResistance: 0.3}

// normalized scales the weights to sum to 1. Zero-sum input falls back to
// the defaults.
func (w Weights) normalized() Weights {
	sum := w.Technical + w.ML + w.SupportResistance
	if sum <= 0 {
		return DefaultWeights
	}
	return Weights{
		Technical:         w.Technical / sum,
		ML:                w.ML / sum,
		SupportResistance: w.SupportResistance / sum,
	}
}

// timeframeSpec fixes how many points a timeframe predicts, how much
// lookback it requires, and its per-step base volatility.
type timeframeSpec struct {
	Points   int
	Lookback int
	BaseVol  float64
}

var timeframeSpecs = map[model.Timeframe]timeframeSpec{
	model.Timeframe30Min: {Points: 6, Lookback: 60, BaseVol: 0.001},
	model.Timeframe1Hour: {Points: 12, Lookback: 60, BaseVol: 0.002},
	model.Timeframe1Day:  {Points: 1, Lookback: 10, BaseVol: 0.005},
	model.Timeframe3Day:  {Points: 3, Lookback: 10, BaseVol: 0.01},
	model.Timeframe30Day: {Points: 90, Lookback: 30, BaseVol: 0.03},
}

// specFor resolves a timeframe token. Unknown tokens use the 3-day mapping.
func specFor(tf model.Timeframe) timeframeSpec {
	if s, ok := timeframeSpecs[tf]; ok {
		return s
	}
	return timeframeSpecs[model.Timeframe3Day]
}

// New creates a predictor. A nil weights pointer selects the defaults;
// custom weights are normalized to sum to 1.
func New(weights *Weights) *Predictor {
	w := DefaultWeights
	if weights != nil {
		w = weights.normalized()
	}
	return &Predictor{weights: w}
}

// Predict produces the blended price path for the requested timeframe.
// Never returns an error: insufficient input or a sub-model failure
// degrades to documented fallbacks.
func (p *Predictor) Predict(bars []model.OHLCV, tf model.Timeframe) *model.PredictionResult {
	spec := specFor(tf)
	if len(bars) < spec.Lookback {
		log.Printf("[WARN] series too short for %s (%d < %d), using degenerate prediction",
			tf, len(bars), spec.Lookback)
		return fallbackResult(bars, spec.Points)
	}

	rng := newRNG(bars, tf)

	tech := runGuarded(bars, spec.Points, "technical_indicators", func() []float64 {
		return technicalPrediction(bars, spec, tf, rng)
	})
	ml := runGuarded(bars, spec.Points, "random_forest", func() []float64 {
		return regressionPrediction(bars, spec.Points, spec.Lookback)
	})
	sr := runGuarded(bars, spec.Points, "support_resistance", func() []float64 {
		return supportResistancePrediction(bars, spec.Points, rng)
	})

	ensemble := make([]float64, spec.Points)
	for i := 0; i < spec.Points; i++ {
		ensemble[i] = tech.Prices[i]*p.weights.Technical +
			ml.Prices[i]*p.weights.ML +
			sr.Prices[i]*p.weights.SupportResistance
	}

	confidence := confidenceFrom(tech.Prices, ml.Prices, sr.Prices)
	current := bars[len(bars)-1].Close

	changes := make([]float64, spec.Points)
	if current > 0 {
		for i, price := range ensemble {
			changes[i] = (price - current) / current * 100
		}
	}

	return &model.PredictionResult{
		Technical:         tech,
		MachineLearning:   ml,
		SupportResistance: sr,
		Ensemble:          model.SubPrediction{Prices: ensemble, Method: "ensemble"},
		Confidence:        confidence,
		PriceChangePcts:   changes,
		Signal:            tradingSignal(current, ensemble, confidence),
	}
}

// runGuarded isolates one sub-model: a panic or a wrong-length result
// degrades that model to the linear-trend fallback without failing the
// ensemble.
func runGuarded(bars []model.OHLCV, points int, method string, fn func() []float64) model.SubPrediction {
	prices, err := func() (out []float64, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn(), nil
	}()
	if err == nil && len(prices) != points {
		err = fmt.Errorf("expected %d prices, got %d", points, len(prices))
	}
	if err != nil {
		log.Printf("[WARN] %s sub-model failed: %v, using linear trend", method, err)
		return model.SubPrediction{Prices: linearTrendPrediction(bars, points), Method: "simple_trend"}
	}
	return model.SubPrediction{Prices: prices, Method: method}
}

// fallbackResult is the degenerate prediction: every price equals the last
// observed close (zero sentinel for empty input), confidence pinned at 0.5,
// recommendation hold.
func fallbackResult(bars []model.OHLCV, points int) *model.PredictionResult {
	last := 0.0
	if len(bars) > 0 {
		last = bars[len(bars)-1].Close
	}
	flat := make([]float64, points)
	for i := range flat {
		flat[i] = last
	}
	sub := func() model.SubPrediction {
		return model.SubPrediction{Prices: append([]float64(nil), flat...), Method: "fallback"}
	}

	return &model.PredictionResult{
		Technical:         sub(),
		MachineLearning:   sub(),
		SupportResistance: sub(),
		Ensemble:          sub(),
		Confidence:        0.5,
		PriceChangePcts:   make([]float64, points),
		Signal: model.TradingSignal{
			Recommendation: "持有",
			Action:         model.ActionHold,
			Confidence:     0.5,
		},
	}
}
