package scheduler

import (
	"context"
	"strings"
	"testing"

	"github.com/qq173681019/JericoNewStockSystem/internal/fetcher"
	"github.com/qq173681019/JericoNewStockSystem/internal/model"
	"github.com/qq173681019/JericoNewStockSystem/internal/predictor"
	"github.com/qq173681019/JericoNewStockSystem/internal/provider"
)

// recordingNotifier captures sent messages.
type recordingNotifier struct {
	sent []string
}

func (r *recordingNotifier) Send(text string) error {
	r.sent = append(r.sent, text)
	return nil
}

func (r *recordingNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	return r.Send(text)
}

// fixedStore serves a fixed watchlist.
type fixedStore struct {
	items []model.WatchlistItem
}

func (f *fixedStore) AddWatch(_ *model.WatchlistItem) error                 { return nil }
func (f *fixedStore) UpdateWatch(_ *model.WatchlistItem) error              { return nil }
func (f *fixedStore) RemoveWatch(_ string) error                            { return nil }
func (f *fixedStore) GetWatch(_ string) (*model.WatchlistItem, error)       { return nil, nil }
func (f *fixedStore) ListWatchlist() ([]model.WatchlistItem, error)         { return f.items, nil }
func (f *fixedStore) RecordPrediction(_ *model.PredictionRecord) error      { return nil }
func (f *fixedStore) ListPredictions(_ string, _ int) ([]model.PredictionRecord, error) {
	return nil, nil
}
func (f *fixedStore) Close() error { return nil }

func newTestScheduler(price float64, items []model.WatchlistItem) (*Scheduler, *recordingNotifier) {
	quoteProvider := &provider.MockProvider{
		Source: model.SourceSina,
		Quote:  &model.Quote{Source: model.SourceSina, Name: "测试股票", Price: price},
	}
	f := fetcher.New([]provider.Provider{quoteProvider}, nil, nil)
	n := &recordingNotifier{}
	s := New(context.Background(), f, predictor.New(nil), &fixedStore{items: items}, n)
	return s, n
}

func TestRefreshFiresStopLossAlert(t *testing.T) {
	items := []model.WatchlistItem{{Code: "600519", Name: "贵州茅台", StopLoss: 11.0}}
	s, n := newTestScheduler(10.5, items)

	s.RunRefreshNow()

	if len(n.sent) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(n.sent))
	}
	if !strings.Contains(n.sent[0], "止损") {
		t.Errorf("alert should mention stop loss: %q", n.sent[0])
	}
}

func TestRefreshStopLossBeatsStopProfit(t *testing.T) {
	// Degenerate levels where the price satisfies both: stop-loss wins.
	items := []model.WatchlistItem{{Code: "600519", StopLoss: 11, StopProfit: 10}}
	s, n := newTestScheduler(10.5, items)

	s.RunRefreshNow()

	if len(n.sent) != 1 || !strings.Contains(n.sent[0], "止损") {
		t.Fatalf("expected a single stop-loss alert, got %v", n.sent)
	}
}

func TestRefreshAlertCooldown(t *testing.T) {
	items := []model.WatchlistItem{{Code: "600519", StopLoss: 11.0}}
	s, n := newTestScheduler(10.5, items)

	s.RunRefreshNow()
	s.RunRefreshNow()

	if len(n.sent) != 1 {
		t.Errorf("repeated trigger within cooldown must not re-alert, got %d", len(n.sent))
	}
}

func TestRefreshNoTrigger(t *testing.T) {
	items := []model.WatchlistItem{{Code: "600519", StopLoss: 9, StopProfit: 15, TargetPrice: 14}}
	s, n := newTestScheduler(10.5, items)

	s.RunRefreshNow()

	if len(n.sent) != 0 {
		t.Errorf("price inside all levels must not alert, got %v", n.sent)
	}
}

func TestHandleCommandHelp(t *testing.T) {
	s, _ := newTestScheduler(10.5, nil)

	for _, cmd := range []string{"", "无效命令", "/unknown"} {
		reply := s.HandleCommand(cmd)
		if !strings.Contains(reply, "可用命令") {
			t.Errorf("command %q: expected help text, got %q", cmd, reply)
		}
	}
}

func TestHandleCommandQuote(t *testing.T) {
	s, _ := newTestScheduler(10.5, nil)

	reply := s.HandleCommand("/quote 600519")
	if !strings.Contains(reply, "10.50") {
		t.Errorf("expected price in reply, got %q", reply)
	}

	if reply := s.HandleCommand("/quote"); !strings.Contains(reply, "用法") {
		t.Errorf("expected usage hint, got %q", reply)
	}
}

func TestHandleCommandPredictUsesDemoSeries(t *testing.T) {
	// No history provider configured: the reply still carries a prediction.
	s, _ := newTestScheduler(10.5, nil)

	reply := s.HandleCommand("/predict 600519 3day")
	if !strings.Contains(reply, "走势预测") {
		t.Errorf("expected prediction reply, got %q", reply)
	}
	if !strings.Contains(reply, "置信度") {
		t.Errorf("expected confidence in reply, got %q", reply)
	}
	if !strings.Contains(reply, "演示数据") {
		t.Errorf("reply from a synthesized series must carry the demo notice, got %q", reply)
	}
}

func TestRegisterBadCron(t *testing.T) {
	s, _ := newTestScheduler(10.5, nil)
	if err := s.Register("not a cron spec"); err == nil {
		t.Error("expected error for malformed cron expression")
	}
}
