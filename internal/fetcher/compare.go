package fetcher

import (
	"log"
	"math"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// Compare fetches every symbol from all available providers and reports how
// far each provider deviates from the per-symbol mean price. Symbols with
// fewer than two responding sources carry no comparison value and are
// skipped. Intended for offline reliability auditing, not the request path.
func (f *Fetcher) Compare(codes []string) []model.Comparison {
	// Non-nil so an empty result serializes as [] rather than null.
	table := []model.Comparison{}

	for _, code := range codes {
		results := f.FetchAll(code)
		if len(results) < 2 {
			log.Printf("[WARN] not enough sources for %s (%d)", code, len(results))
			continue
		}

		sum := 0.0
		for _, q := range results {
			sum += q.Price
		}
		avg := sum / float64(len(results))

		row := model.Comparison{
			Code:       code,
			Sources:    len(results),
			AvgPrice:   avg,
			Prices:     make(map[model.Source]float64, len(results)),
			Deviations: make(map[model.Source]float64, len(results)),
		}
		for src, q := range results {
			row.Prices[src] = q.Price
			diff := math.Abs(q.Price - avg)
			if diff > row.MaxDiff {
				row.MaxDiff = diff
			}
			if avg > 0 {
				row.Deviations[src] = diff / avg * 100
			}
		}
		if avg > 0 {
			row.MaxDiffPct = row.MaxDiff / avg * 100
		}
		table = append(table, row)
	}
	return table
}
