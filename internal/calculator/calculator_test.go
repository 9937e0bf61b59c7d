package calculator

import (
	"math"
	"testing"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	got, err := SMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("SMA(3) = %v, want 4", got)
	}

	if _, err := SMA(prices, 10); err == nil {
		t.Error("expected error for insufficient data")
	}
	if _, err := SMA(prices, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestEMA(t *testing.T) {
	prices := []float64{10, 11, 12}
	got := EMA(prices, 3) // alpha = 0.5

	if got[0] != 10 {
		t.Errorf("EMA seed = %v, want first price 10", got[0])
	}
	if got[1] != 10.5 {
		t.Errorf("EMA[1] = %v, want 10.5", got[1])
	}
	if got[2] != 11.25 {
		t.Errorf("EMA[2] = %v, want 11.25", got[2])
	}

	if EMA(nil, 3) != nil {
		t.Error("empty input should yield nil")
	}
}

func TestRSIBounds(t *testing.T) {
	rising := make([]float64, 30)
	falling := make([]float64, 30)
	for i := range rising {
		rising[i] = 10 + float64(i)
		falling[i] = 40 - float64(i)
	}

	up, err := RSI(rising, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up != 100 {
		t.Errorf("monotonic gains: RSI = %v, want 100", up)
	}

	down, err := RSI(falling, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if down != 0 {
		t.Errorf("monotonic losses: RSI = %v, want 0", down)
	}
}

func TestRSIInsufficientData(t *testing.T) {
	got, err := RSI([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50 {
		t.Errorf("short series: RSI = %v, want neutral 50", got)
	}
}

func TestMACDCrossover(t *testing.T) {
	// Long flat stretch then a sharp rally: MACD must sit above the
	// slower signal line.
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 10
		if i >= 50 {
			prices[i] = 10 + float64(i-49)*0.5
		}
	}
	macd, signal, hist := MACD(prices)
	if macd <= signal {
		t.Errorf("rally: macd %v should exceed signal %v", macd, signal)
	}
	if math.Abs(hist-(macd-signal)) > 1e-12 {
		t.Errorf("hist %v != macd-signal %v", hist, macd-signal)
	}
}

func TestBollinger(t *testing.T) {
	prices := []float64{10, 10, 10, 10}
	upper, middle, lower, err := Bollinger(prices, 4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upper != 10 || middle != 10 || lower != 10 {
		t.Errorf("flat series: got (%v, %v, %v), want all 10", upper, middle, lower)
	}

	upper, middle, lower, err = Bollinger([]float64{8, 12}, 20, 2)
	if err != nil {
		t.Fatalf("window should shrink, got error: %v", err)
	}
	if middle != 10 || upper <= middle || lower >= middle {
		t.Errorf("got (%v, %v, %v), want bands around 10", upper, middle, lower)
	}

	if _, _, _, err := Bollinger(nil, 20, 2); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestKDJNeutralWhenShort(t *testing.T) {
	bars := []model.OHLCV{{High: 11, Low: 9, Close: 10}}
	k, d, j, err := KDJ(bars, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != 50 || d != 50 || j != 50 {
		t.Errorf("short series: got (%v, %v, %v), want neutral 50s", k, d, j)
	}
}

func TestKDJHighCloseRaisesK(t *testing.T) {
	// Closes pinned at the top of each range push K well above neutral.
	var bars []model.OHLCV
	for i := 0; i < 30; i++ {
		base := 10 + float64(i)*0.1
		bars = append(bars, model.OHLCV{High: base + 0.5, Low: base - 0.5, Close: base + 0.5})
	}
	k, d, j, err := KDJ(bars, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k < 70 {
		t.Errorf("top-of-range closes: K = %v, want above 70", k)
	}
	if j < d {
		t.Errorf("rising K: J %v should lead D %v", j, d)
	}
}

func TestVolumeTrend(t *testing.T) {
	var bars []model.OHLCV
	for i := 0; i < 5; i++ {
		bars = append(bars, model.OHLCV{Volume: 100})
	}
	for i := 0; i < 5; i++ {
		bars = append(bars, model.OHLCV{Volume: 150})
	}

	if got := VolumeTrend(bars, 5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("VolumeTrend = %v, want 0.5", got)
	}
	if got := VolumeTrend(bars[:6], 5); got != 0 {
		t.Errorf("insufficient history: got %v, want 0", got)
	}
}

func TestLocalExtrema(t *testing.T) {
	// A valley at index 3 and a peak at index 7.
	highs := []float64{12, 11.5, 11, 10.5, 11, 12, 13, 14, 13, 12}
	lows := []float64{11, 10.5, 10, 9.5, 10, 11, 12, 13, 12, 11}
	var bars []model.OHLCV
	for i := range highs {
		bars = append(bars, model.OHLCV{High: highs[i], Low: lows[i], Close: lows[i] + 0.5})
	}

	supports, resistances := LocalExtrema(bars, 2)
	if len(supports) == 0 || supports[0] != 9.5 {
		t.Errorf("supports = %v, want valley low 9.5", supports)
	}
	if len(resistances) == 0 || resistances[0] != 14 {
		t.Errorf("resistances = %v, want peak high 14", resistances)
	}
}

func TestLocalExtremaGlobalFallback(t *testing.T) {
	// Monotonic series has no interior extremum; the global high/low serve.
	var bars []model.OHLCV
	for i := 0; i < 8; i++ {
		p := 10 + float64(i)
		bars = append(bars, model.OHLCV{High: p + 0.5, Low: p - 0.5, Close: p})
	}
	supports, resistances := LocalExtrema(bars, 2)
	if len(supports) != 1 || supports[0] != 9.5 {
		t.Errorf("supports = %v, want global low 9.5", supports)
	}
	if len(resistances) != 1 || resistances[0] != 17.5 {
		t.Errorf("resistances = %v, want global high 17.5", resistances)
	}
}

func TestLinearTrend(t *testing.T) {
	if got := LinearTrend([]float64{10, 11, 12}, 3); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("LinearTrend = %v, want 0.2", got)
	}
	if got := LinearTrend([]float64{10}, 3); got != 0 {
		t.Errorf("single price: got %v, want 0", got)
	}
	if got := LinearTrend([]float64{0, 5}, 2); got != 0 {
		t.Errorf("zero base price: got %v, want 0", got)
	}
}
