package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/qq173681019/JericoNewStockSystem/internal/config"
	"github.com/qq173681019/JericoNewStockSystem/internal/fetcher"
	"github.com/qq173681019/JericoNewStockSystem/internal/notifier"
	"github.com/qq173681019/JericoNewStockSystem/internal/predictor"
	"github.com/qq173681019/JericoNewStockSystem/internal/scheduler"
	"github.com/qq173681019/JericoNewStockSystem/internal/store"
	"github.com/qq173681019/JericoNewStockSystem/internal/web"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stock system starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher with the full provider fallback chain
	f := fetcher.NewFromConfig(cfg)
	log.Printf("[INFO] providers available: %v", f.Available())

	// Init predictor
	weights := &predictor.Weights{
		Technical:         cfg.Predictor.TechnicalWeight,
		ML:                cfg.Predictor.MLWeight,
		SupportResistance: cfg.Predictor.SupportResistanceWeight,
	}
	p := predictor.New(weights)

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init notifier
	var n notifier.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		n = notifier.NewNoopNotifier()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.New(ctx, f, p, st, n)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling when configured
	if tn, ok := n.(*notifier.TelegramNotifier); ok {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: refresh the watchlist immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunRefreshNow()
	}

	// Start web server
	srv := web.NewServer(f, p, st, cfg.Server.StaticDir)
	go func() {
		if err := srv.ListenAndServe(cfg.Server.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] web server: %v", err)
		}
	}()

	log.Println("[INFO] stock system is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] stock system stopped")
}
