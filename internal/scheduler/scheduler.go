package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/qq173681019/JericoNewStockSystem/internal/fetcher"
	"github.com/qq173681019/JericoNewStockSystem/internal/model"
	"github.com/qq173681019/JericoNewStockSystem/internal/notifier"
	"github.com/qq173681019/JericoNewStockSystem/internal/predictor"
	"github.com/qq173681019/JericoNewStockSystem/internal/store"
)

// alertCooldown suppresses repeated alerts for the same stock and trigger
// while the price stays past the level.
const alertCooldown = 4 * time.Hour

// Scheduler periodically refreshes quotes for the watchlist and fires
// price-level alerts.
type Scheduler struct {
	Cron      *cron.Cron
	Fetcher   *fetcher.Fetcher
	Predictor *predictor.Predictor
	Store     store.Store
	Notifier  notifier.Notifier
	Ctx       context.Context

	mu        sync.Mutex
	lastAlert map[string]time.Time
}

// New creates a Scheduler.
func New(ctx context.Context, f *fetcher.Fetcher, p *predictor.Predictor, st store.Store, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Fetcher:   f,
		Predictor: p,
		Store:     st,
		Notifier:  n,
		Ctx:       ctx,
		lastAlert: make(map[string]time.Time),
	}
}

// Register registers the watchlist refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	items, err := s.Store.ListWatchlist()
	if err != nil {
		log.Printf("[ERROR] refresh: list watchlist: %v", err)
		return
	}
	if len(items) == 0 {
		return
	}
	log.Printf("[INFO] refreshing %d watched stocks", len(items))

	for i := range items {
		item := &items[i]
		quote := s.Fetcher.FetchQuote(item.Code)
		if quote == nil {
			log.Printf("[WARN] refresh: no quote for %s", item.Code)
			continue
		}
		s.checkTriggers(item, quote)
	}
}

// checkTriggers fires at most one alert per stock, stop-loss taking
// priority over stop-profit and target price.
func (s *Scheduler) checkTriggers(item *model.WatchlistItem, quote *model.Quote) {
	var kind notifier.AlertKind
	switch {
	case item.StopLoss > 0 && quote.Price <= item.StopLoss:
		kind = notifier.AlertStopLoss
	case item.StopProfit > 0 && quote.Price >= item.StopProfit:
		kind = notifier.AlertStopProfit
	case item.TargetPrice > 0 && quote.Price >= item.TargetPrice:
		kind = notifier.AlertTargetPrice
	default:
		return
	}

	if !s.shouldAlert(item.Code, kind) {
		return
	}
	s.trySend(notifier.FormatWatchAlert(kind, item, quote))
}

func (s *Scheduler) shouldAlert(code string, kind notifier.AlertKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := code + ":" + string(kind)
	if last, ok := s.lastAlert[key]; ok && time.Since(last) < alertCooldown {
		return false
	}
	s.lastAlert[key] = time.Now()
	return true
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch fields[0] {
	case "查看自选股", "/watchlist":
		return s.watchlistSummary()
	case "/quote":
		if len(fields) < 2 {
			return "用法: /quote 股票代码"
		}
		return s.quoteReply(fields[1])
	case "/predict":
		if len(fields) < 2 {
			return "用法: /predict 股票代码 [周期]"
		}
		tf := model.Timeframe3Day
		if len(fields) >= 3 {
			tf = model.Timeframe(fields[2])
		}
		return s.predictReply(fields[1], tf)
	default:
		return helpText
	}
}

const helpText = "可用命令:\n• 查看自选股\n• /quote 股票代码\n• /predict 股票代码 [周期]"

func (s *Scheduler) watchlistSummary() string {
	items, err := s.Store.ListWatchlist()
	if err != nil {
		return fmt.Sprintf("读取自选股失败: %v", err)
	}
	quotes := make(map[string]*model.Quote, len(items))
	for _, item := range items {
		quotes[item.Code] = s.Fetcher.FetchQuote(item.Code)
	}
	return notifier.FormatWatchlistSummary(items, quotes)
}

func (s *Scheduler) quoteReply(code string) string {
	quote := s.Fetcher.FetchQuote(code)
	if quote == nil {
		return fmt.Sprintf("未能获取 %s 的行情", code)
	}
	return fmt.Sprintf("%s (%s): %.2f (%+.2f%%)\n来源: %s",
		quote.Name, quote.Code, quote.Price, quote.ChangePct, quote.Source)
}

func (s *Scheduler) predictReply(code string, tf model.Timeframe) string {
	end := time.Now()
	start := end.AddDate(0, 0, -120)
	source := model.DataSourceReal
	bars := s.Fetcher.FetchHistory(code, start, end)
	if len(bars) == 0 {
		bars = fetcher.SynthesizeSeries(code, 120)
		source = model.DataSourceDemo
	}
	result := s.Predictor.Predict(bars, tf)
	return notifier.FormatPrediction(code, tf, result, source)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
