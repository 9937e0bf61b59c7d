package predictor

import (
	"math"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

const (
	forestTrees    = 50
	forestMaxDepth = 10
	forestSeed     = 42
	minTrainRows   = 5
)

// regressionPrediction fits a random forest on sliding-window summary
// features and predicts iteratively, appending each predicted close as a
// synthetic bar so later steps see the earlier ones. Fewer than
// minTrainRows training rows falls back to the linear trend.
func regressionPrediction(bars []model.OHLCV, points, window int) []float64 {
	X, y := slidingDataset(bars, window)
	if len(X) < minTrainRows {
		return linearTrendPrediction(bars, points)
	}

	sc := fitScaler(X)
	f := fitForest(sc.transformAll(X), y, forestTrees, forestMaxDepth, forestSeed)

	work := model.CloneBars(bars)
	out := make([]float64, 0, points)
	for i := 0; i < points; i++ {
		feat := windowFeatures(work[len(work)-window:])
		pred := f.predict(sc.transform(feat))
		out = append(out, pred)

		last := work[len(work)-1]
		work = append(work, model.OHLCV{
			Time:   last.Time.Add(24 * time.Hour),
			Open:   pred,
			High:   pred,
			Low:    pred,
			Close:  pred,
			Volume: last.Volume,
		})
	}
	return out
}

// slidingDataset builds one training row per bar beyond the window: the
// window's summary features against the next bar's close.
func slidingDataset(bars []model.OHLCV, window int) (X [][]float64, y []float64) {
	for i := window; i < len(bars); i++ {
		X = append(X, windowFeatures(bars[i-window:i]))
		y = append(y, bars[i].Close)
	}
	return X, y
}

// windowFeatures summarizes a window as mean close, close stddev, max high,
// min low, mean volume, and the window return.
func windowFeatures(win []model.OHLCV) []float64 {
	n := float64(len(win))
	meanClose, high, low, meanVol := 0.0, win[0].High, win[0].Low, 0.0
	for _, b := range win {
		meanClose += b.Close
		meanVol += b.Volume
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	meanClose /= n
	meanVol /= n

	variance := 0.0
	for _, b := range win {
		d := b.Close - meanClose
		variance += d * d
	}
	stdClose := math.Sqrt(variance / n)

	windowReturn := 0.0
	if first := win[0].Close; first > 0 {
		windowReturn = (win[len(win)-1].Close - first) / first
	}

	return []float64{meanClose, stdClose, high, low, meanVol, windowReturn}
}

// scaler standardizes features column-wise so volume does not dominate the
// split search.
type scaler struct {
	mean []float64
	std  []float64
}

func fitScaler(X [][]float64) *scaler {
	cols := len(X[0])
	s := &scaler{mean: make([]float64, cols), std: make([]float64, cols)}
	for c := 0; c < cols; c++ {
		for _, row := range X {
			s.mean[c] += row[c]
		}
		s.mean[c] /= float64(len(X))
		for _, row := range X {
			d := row[c] - s.mean[c]
			s.std[c] += d * d
		}
		s.std[c] = math.Sqrt(s.std[c] / float64(len(X)))
		if s.std[c] == 0 {
			s.std[c] = 1
		}
	}
	return s
}

func (s *scaler) transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for c, v := range row {
		out[c] = (v - s.mean[c]) / s.std[c]
	}
	return out
}

func (s *scaler) transformAll(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.transform(row)
	}
	return out
}
