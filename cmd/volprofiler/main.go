package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"VolProfiler/internal/calculator"
	"VolProfiler/internal/collector"
	"VolProfiler/internal/config"
	"VolProfiler/internal/notifier"
	"VolProfiler/internal/pipeline"
	"VolProfiler/internal/recorder"
	"VolProfiler/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] VolProfiler starting...")

	once := flag.Bool("once", false, "run the pipeline once for yesterday and exit")
	flag.Parse()

	// Local .env, if present, before reading overrides.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

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

	// Init fetcher and collector
	fetcher := collector.NewCoinGeckoFetcher(
		cfg.DataSource.BaseURL, cfg.DataSource.APIKey,
		cfg.DataSource.Asset, cfg.DataSource.Currency, cfg.Proxy)
	log.Printf("[INFO] data source: %s (%s/%s)", fetcher.Name(), cfg.DataSource.Asset, cfg.DataSource.Currency)
	col := collector.NewCollector(fetcher)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	haveStore := false
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, cfg.Database.KeepHistory)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			haveStore = true
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	runner := pipeline.NewRunner(col, rec, tn, calculator.EstimatorOptions{
		AlignBuckets: cfg.Volatility.AlignBuckets,
	})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot mode: single run, exit code carries the outcome.
	if *once {
		if _, err := runner.Run(ctx); err != nil {
			log.Fatalf("[FATAL] volatility run: %v", err)
		}
		log.Println("[INFO] run complete")
		return
	}

	// Daemon mode: cron + command polling.
	sched := scheduler.NewScheduler(ctx, runner, rec, haveStore)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily task now")
		go sched.RunNow()
	}

	log.Println("[INFO] VolProfiler is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] VolProfiler stopped")
}
