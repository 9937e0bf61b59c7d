package model

// Comparison holds one symbol's cross-provider reliability figures.
// Deviations are percentage distances from the mean price per source.
type Comparison struct {
	Code       string             `json:"code"`
	Sources    int                `json:"sources_available"`
	AvgPrice   float64            `json:"avg_price"`
	MaxDiff    float64            `json:"max_diff"`
	MaxDiffPct float64            `json:"max_diff_pct"`
	Prices     map[Source]float64 `json:"prices"`
	Deviations map[Source]float64 `json:"deviations"`
}
