package predictor

import (
	"math"
	"testing"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// trendBars builds n daily bars starting at base with a fixed per-bar
// drift, plus a small deterministic wiggle so indicators have texture.
func trendBars(n int, base, drift float64) []model.OHLCV {
	bars := make([]model.OHLCV, 0, n)
	t := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	price := base
	for i := 0; i < n; i++ {
		wiggle := 0.003 * math.Sin(float64(i))
		open := price
		price *= 1 + drift + wiggle
		high := math.Max(open, price) * 1.005
		low := math.Min(open, price) * 0.995
		bars = append(bars, model.OHLCV{
			Time:   t.Add(time.Duration(i) * 24 * time.Hour),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: 2_000_000 + float64(i%7)*100_000,
		})
	}
	return bars
}

func TestPredictPointCounts(t *testing.T) {
	bars := trendBars(80, 20, 0.001)
	p := New(nil)

	tests := []struct {
		timeframe model.Timeframe
		points    int
	}{
		{model.Timeframe30Min, 6},
		{model.Timeframe1Hour, 12},
		{model.Timeframe1Day, 1},
		{model.Timeframe3Day, 3},
		{model.Timeframe30Day, 90},
	}

	for _, tt := range tests {
		result := p.Predict(bars, tt.timeframe)
		for name, sub := range map[string]model.SubPrediction{
			"technical": result.Technical,
			"ml":        result.MachineLearning,
			"sr":        result.SupportResistance,
			"ensemble":  result.Ensemble,
		} {
			if len(sub.Prices) != tt.points {
				t.Errorf("%s %s: got %d prices, want %d", tt.timeframe, name, len(sub.Prices), tt.points)
			}
		}
		if len(result.PriceChangePcts) != tt.points {
			t.Errorf("%s: got %d change pcts, want %d", tt.timeframe, len(result.PriceChangePcts), tt.points)
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	bars := trendBars(40, 15, 0.002)
	p := New(nil)

	a := p.Predict(bars, model.Timeframe3Day)
	b := p.Predict(bars, model.Timeframe3Day)

	for i := range a.Ensemble.Prices {
		if a.Ensemble.Prices[i] != b.Ensemble.Prices[i] {
			t.Fatalf("prediction not repeatable at step %d: %v vs %v",
				i, a.Ensemble.Prices[i], b.Ensemble.Prices[i])
		}
	}
	if a.Confidence != b.Confidence {
		t.Errorf("confidence not repeatable: %v vs %v", a.Confidence, b.Confidence)
	}
}

func TestPredictConfidenceRange(t *testing.T) {
	p := New(nil)
	for _, tf := range []model.Timeframe{model.Timeframe1Day, model.Timeframe3Day, model.Timeframe30Day} {
		result := p.Predict(trendBars(60, 30, 0.001), tf)
		if result.Confidence < 0.5 || result.Confidence > 0.95 {
			t.Errorf("%s: confidence %v outside [0.5, 0.95]", tf, result.Confidence)
		}
	}
}

func TestPredictShortSeriesFallback(t *testing.T) {
	bars := trendBars(5, 12, 0.001) // 3day needs 10 bars
	p := New(nil)

	result := p.Predict(bars, model.Timeframe3Day)

	last := bars[len(bars)-1].Close
	for i, price := range result.Ensemble.Prices {
		if price != last {
			t.Errorf("step %d: got %v, want last close %v", i, price, last)
		}
	}
	if result.Confidence != 0.5 {
		t.Errorf("got confidence %v, want 0.5", result.Confidence)
	}
	if result.Signal.Action != model.ActionHold {
		t.Errorf("got action %q, want hold", result.Signal.Action)
	}
}

func TestPredictEmptySeries(t *testing.T) {
	result := New(nil).Predict(nil, model.Timeframe1Day)

	if len(result.Ensemble.Prices) != 1 || result.Ensemble.Prices[0] != 0 {
		t.Errorf("got %v, want single zero price", result.Ensemble.Prices)
	}
	if result.Signal.Action != model.ActionHold {
		t.Errorf("got action %q, want hold", result.Signal.Action)
	}
}

func TestPredictExactLookbackBoundary(t *testing.T) {
	p := New(nil)

	// One bar short degrades, exactly enough runs the full ensemble.
	short := p.Predict(trendBars(9, 20, 0.001), model.Timeframe3Day)
	if short.Ensemble.Method != "fallback" {
		t.Errorf("9 bars: got method %q, want fallback", short.Ensemble.Method)
	}

	exact := p.Predict(trendBars(10, 20, 0.001), model.Timeframe3Day)
	if exact.Ensemble.Method != "ensemble" {
		t.Errorf("10 bars: got method %q, want ensemble", exact.Ensemble.Method)
	}
}

func TestPredictUnknownTimeframeDefaults(t *testing.T) {
	result := New(nil).Predict(trendBars(40, 20, 0.001), model.Timeframe("7day"))
	if len(result.Ensemble.Prices) != 3 {
		t.Errorf("unknown timeframe: got %d points, want 3-day default of 3", len(result.Ensemble.Prices))
	}
}

func TestPredictUpwardSeriesStaysPositive(t *testing.T) {
	result := New(nil).Predict(trendBars(60, 25, 0.004), model.Timeframe3Day)
	for i, price := range result.Ensemble.Prices {
		if price <= 0 {
			t.Errorf("step %d: non-positive predicted price %v", i, price)
		}
	}
}

func TestPredictOneDaySteadyUptrend(t *testing.T) {
	bars := trendBars(60, 25, 0.004)
	last := bars[len(bars)-1].Close
	result := New(nil).Predict(bars, model.Timeframe1Day)

	if len(result.Ensemble.Prices) != 1 {
		t.Fatalf("1day ensemble: got %d prices, want 1", len(result.Ensemble.Prices))
	}
	// One trading day out on a steady series stays close to the
	// latest close; the low-volatility clamp keeps it within a few percent.
	diff := math.Abs(result.Ensemble.Prices[0]-last) / last * 100
	if diff > 3 {
		t.Errorf("next-day prediction drifted %.2f%% from close %v", diff, last)
	}
	if a := result.Signal.Action; a != model.ActionHold && a != model.ActionBuy {
		t.Errorf("action = %s, want hold or buy on a mild uptrend", a)
	}
}

func TestWeightsNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Weights
		want Weights
	}{
		{"already unit", Weights{0.3, 0.4, 0.3}, Weights{0.3, 0.4, 0.3}},
		{"scaled", Weights{3, 4, 3}, Weights{0.3, 0.4, 0.3}},
		{"zero falls back", Weights{}, DefaultWeights},
	}
	for _, tt := range tests {
		got := tt.in.normalized()
		if math.Abs(got.Technical-tt.want.Technical) > 1e-9 ||
			math.Abs(got.ML-tt.want.ML) > 1e-9 ||
			math.Abs(got.SupportResistance-tt.want.SupportResistance) > 1e-9 {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestTradingSignalThresholds(t *testing.T) {
	tests := []struct {
		name       string
		change     float64
		confidence float64
		want       model.Action
	}{
		{"big confident gain", 6, 0.8, model.ActionStrongBuy},
		{"moderate confident gain", 3, 0.65, model.ActionBuy},
		{"flat", 0.5, 0.9, model.ActionHold},
		{"lower hold boundary", -2, 0.9, model.ActionSell},
		{"moderate confident loss", -3, 0.65, model.ActionSell},
		{"moderate loss low confidence", -3, 0.5, model.ActionStrongSell},
		{"big confident loss", -7, 0.8, model.ActionStrongSell},
	}
	for _, tt := range tests {
		sig := tradingSignal(100, []float64{100 + tt.change}, tt.confidence)
		if sig.Action != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, sig.Action, tt.want)
		}
	}
}

func TestLinearTrendPrediction(t *testing.T) {
	bars := trendBars(20, 10, 0.01)
	got := linearTrendPrediction(bars, 3)
	if len(got) != 3 {
		t.Fatalf("got %d points, want 3", len(got))
	}
	last := bars[len(bars)-1].Close
	if got[0] <= last {
		t.Errorf("rising series: first predicted price %v should exceed last close %v", got[0], last)
	}
	if got[1] <= got[0] || got[2] <= got[1] {
		t.Errorf("rising series: path should keep rising, got %v", got)
	}
}
