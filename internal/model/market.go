package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// DataSource labels whether a series came from a real provider or was
// synthesized as placeholder data.
type DataSource string

const (
	DataSourceReal DataSource = "real"
	DataSourceDemo DataSource = "demo"
)

// CloneBars returns a fresh copy of a bar slice so callers own their series.
func CloneBars(bars []OHLCV) []OHLCV {
	if bars == nil {
		return nil
	}
	out := make([]OHLCV, len(bars))
	copy(out, bars)
	return out
}
