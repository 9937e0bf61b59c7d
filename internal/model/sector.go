package model

// SectorHeat is one industry board with its normalized heat score.
// Curated marks entries force-included by the keyword policy rather than
// by organic ranking.
type SectorHeat struct {
	Name      string  `json:"name"`
	ChangePct float64 `json:"change_pct"`
	Heat      float64 `json:"heat"`
	Curated   bool    `json:"curated,omitempty"`
}
