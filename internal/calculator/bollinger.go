package calculator

import (
	"errors"
	"math"
)

// Bollinger computes the Bollinger Bands over the trailing window with the
// given standard deviation multiplier. Window shrinks to the series length
// when fewer prices exist.
func Bollinger(prices []float64, window int, k float64) (upper, middle, lower float64, err error) {
	if window <= 0 {
		return 0, 0, 0, errors.New("window must be positive")
	}
	if len(prices) == 0 {
		return 0, 0, 0, errors.New("no prices provided")
	}
	if len(prices) < window {
		window = len(prices)
	}

	tail := prices[len(prices)-window:]
	sum := 0.0
	for _, p := range tail {
		sum += p
	}
	middle = sum / float64(window)

	variance := 0.0
	for _, p := range tail {
		d := p - middle
		variance += d * d
	}
	std := math.Sqrt(variance / float64(window))

	return middle + k*std, middle, middle - k*std, nil
}
