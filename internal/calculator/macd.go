package calculator

// MACD computes the 12/26/9 moving average convergence divergence and
// returns the latest MACD line, signal line, and histogram values.
func MACD(prices []float64) (macd, signal, hist float64) {
	if len(prices) == 0 {
		return 0, 0, 0
	}
	ema12 := EMA(prices, 12)
	ema26 := EMA(prices, 26)

	macdSeries := make([]float64, len(prices))
	for i := range prices {
		macdSeries[i] = ema12[i] - ema26[i]
	}
	signalSeries := EMA(macdSeries, 9)

	last := len(prices) - 1
	macd = macdSeries[last]
	signal = signalSeries[last]
	hist = macd - signal
	return macd, signal, hist
}
