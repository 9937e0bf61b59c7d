package fetcher

import (
	"log"
	"sort"
	"strings"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// heatScore maps a day change percentage into the [0,100] heat range.
// The constants are fixed heuristics inherited from the product, not
// tunable parameters.
func heatScore(changePct float64) float64 {
	h := 50 + changePct*5
	if h < 0 {
		return 0
	}
	if h > 100 {
		return 100
	}
	return h
}

// SectorHeat returns the hottest industry boards ranked by heat score.
// Boards matching the configured force-include keywords are inserted after
// the top two ranked entries (at most two of them) even when they did not
// rank organically. Curated entries are flagged as such.
func (f *Fetcher) SectorHeat() []model.SectorHeat {
	if f.Sectors == nil {
		log.Printf("[WARN] no sector provider available")
		return nil
	}
	boards, err := f.Sectors.FetchSectorBoards()
	if err != nil {
		log.Printf("[WARN] fetch sector boards: %v", err)
		return nil
	}

	all := make([]model.SectorHeat, 0, len(boards))
	for _, b := range boards {
		all = append(all, model.SectorHeat{
			Name:      b.Name,
			ChangePct: b.ChangePct,
			Heat:      heatScore(b.ChangePct),
		})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Heat > all[j].Heat })

	n := f.TopN
	if n <= 0 || n > len(all) {
		n = len(all)
	}
	return f.forceInclude(all[:n:n], all)
}

// forceInclude inserts up to two curated boards after the top two ranked
// entries when the keyword policy matches boards missing from the top list.
func (f *Fetcher) forceInclude(top, all []model.SectorHeat) []model.SectorHeat {
	if len(f.Curated) == 0 {
		return top
	}

	present := make(map[string]bool, len(top))
	for _, s := range top {
		present[s.Name] = true
	}

	var extra []model.SectorHeat
	for _, s := range all {
		if len(extra) == 2 {
			break
		}
		if present[s.Name] || !f.matchesCurated(s.Name) {
			continue
		}
		s.Curated = true
		extra = append(extra, s)
		present[s.Name] = true
	}
	if len(extra) == 0 {
		return top
	}

	pos := 2
	if pos > len(top) {
		pos = len(top)
	}
	out := make([]model.SectorHeat, 0, len(top)+len(extra))
	out = append(out, top[:pos]...)
	out = append(out, extra...)
	out = append(out, top[pos:]...)
	return out
}

func (f *Fetcher) matchesCurated(name string) bool {
	for _, kw := range f.Curated {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
