package fetcher

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// SynthesizeSeries generates labeled placeholder bars for a symbol when no
// provider has real history. The walk is driven by a PRNG seeded from the
// symbol, so the same code always yields the same demo series. Callers must
// surface model.DataSourceDemo alongside anything derived from it.
func SynthesizeSeries(code string, days int) []model.OHLCV {
	if days <= 0 {
		return nil
	}

	h := fnv.New64a()
	h.Write([]byte(code))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	// Base price between 5 and 55, deterministic per symbol.
	price := 5 + rng.Float64()*50
	start := time.Now().AddDate(0, 0, -days)

	bars := make([]model.OHLCV, 0, days)
	for i := 0; i < days; i++ {
		change := (rng.Float64() - 0.48) * 0.02 // slight upward drift
		open := price
		price = price * (1 + change)
		high := open
		if price > high {
			high = price
		}
		high *= 1 + rng.Float64()*0.005
		low := open
		if price < low {
			low = price
		}
		low *= 1 - rng.Float64()*0.005

		bars = append(bars, model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: float64(1_000_000 + rng.Intn(9_000_000)),
		})
	}
	return bars
}
