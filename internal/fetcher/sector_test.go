package fetcher

import (
	"fmt"
	"testing"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
	"github.com/qq173681019/JericoNewStockSystem/internal/provider"
)

func TestHeatScore(t *testing.T) {
	tests := []struct {
		changePct float64
		want      float64
	}{
		{0, 50},
		{2, 60},
		{-2, 40},
		{10, 100},
		{15, 100},  // clamped
		{-10, 0},   // floor
		{-99, 0},   // clamped
		{5.5, 77.5},
	}
	for _, tt := range tests {
		if got := heatScore(tt.changePct); got != tt.want {
			t.Errorf("heatScore(%v) = %v, want %v", tt.changePct, got, tt.want)
		}
	}
}

func TestSectorHeatRanking(t *testing.T) {
	boards := []provider.Board{
		{Name: "半导体", ChangePct: 3.2},
		{Name: "白酒", ChangePct: -1.1},
		{Name: "新能源", ChangePct: 5.8},
		{Name: "银行", ChangePct: 0.4},
	}
	f := New(nil, nil, &provider.MockProvider{Boards: boards})
	f.TopN = 3

	got := f.SectorHeat()
	if len(got) != 3 {
		t.Fatalf("expected top 3, got %d", len(got))
	}
	if got[0].Name != "新能源" || got[1].Name != "半导体" || got[2].Name != "银行" {
		t.Errorf("wrong ranking: %v", names(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Heat > got[i-1].Heat {
			t.Errorf("heat not descending at %d: %v", i, names(got))
		}
	}
}

func TestSectorHeatForceInclude(t *testing.T) {
	boards := []provider.Board{
		{Name: "半导体", ChangePct: 6},
		{Name: "白酒", ChangePct: 5},
		{Name: "银行", ChangePct: 4},
		{Name: "军工", ChangePct: 3},
		{Name: "人工智能", ChangePct: -2},
		{Name: "AI应用", ChangePct: -3},
		{Name: "AI算力", ChangePct: -4},
	}
	f := New(nil, nil, &provider.MockProvider{Boards: boards})
	f.TopN = 4
	f.Curated = []string{"人工智能", "AI"}

	got := f.SectorHeat()
	// Top 4 organic plus at most 2 curated, inserted after the top two.
	if len(got) != 6 {
		t.Fatalf("expected 6 entries, got %d: %v", len(got), names(got))
	}
	if got[0].Name != "半导体" || got[1].Name != "白酒" {
		t.Errorf("top two must stay organic: %v", names(got))
	}
	if got[2].Name != "人工智能" || !got[2].Curated {
		t.Errorf("expected curated 人工智能 at position 2: %v", names(got))
	}
	if got[3].Name != "AI应用" || !got[3].Curated {
		t.Errorf("expected curated AI应用 at position 3: %v", names(got))
	}
	if got[4].Name != "银行" || got[5].Name != "军工" {
		t.Errorf("remaining organic entries must follow: %v", names(got))
	}
}

func TestSectorHeatCuratedAlreadyRanked(t *testing.T) {
	boards := []provider.Board{
		{Name: "人工智能", ChangePct: 6},
		{Name: "白酒", ChangePct: 5},
		{Name: "银行", ChangePct: 4},
	}
	f := New(nil, nil, &provider.MockProvider{Boards: boards})
	f.TopN = 3
	f.Curated = []string{"人工智能"}

	got := f.SectorHeat()
	if len(got) != 3 {
		t.Fatalf("organically ranked curated board must not be duplicated, got %d", len(got))
	}
	if got[0].Curated {
		t.Error("organically ranked board must not carry the curated flag")
	}
}

func TestSectorHeatProviderFailure(t *testing.T) {
	f := New(nil, nil, &provider.MockProvider{Err: fmt.Errorf("scrape blocked")})
	if got := f.SectorHeat(); got != nil {
		t.Errorf("expected nil on provider failure, got %v", names(got))
	}

	none := New(nil, nil, nil)
	if got := none.SectorHeat(); got != nil {
		t.Errorf("expected nil without a sector provider, got %v", names(got))
	}
}

func names(sectors []model.SectorHeat) []string {
	out := make([]string, len(sectors))
	for i, s := range sectors {
		out[i] = s.Name
	}
	return out
}
