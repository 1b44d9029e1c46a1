package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"VolProfiler/internal/notifier"
	"VolProfiler/internal/pipeline"
	"VolProfiler/internal/recorder"
)

// Scheduler runs the daily pipeline on a cron schedule and answers bot
// commands in daemon mode.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *pipeline.Runner
	Recorder recorder.Recorder
	Ctx      context.Context

	haveStore bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *pipeline.Runner, rec recorder.Recorder, haveStore bool) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Runner:    runner,
		Recorder:  rec,
		Ctx:       ctx,
		haveStore: haveStore,
	}
}

// Register registers the daily pipeline task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
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

// RunNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	if _, err := s.Runner.Run(s.Ctx); err != nil {
		log.Printf("[ERROR] daily volatility run: %v", err)
	}
}

// HandleCommand processes a bot command and returns the reply text.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		go s.dailyTask()
		return "Started a volatility run for yesterday."
	case "/report":
		day, err := s.Recorder.LatestDay()
		if err != nil {
			return "No volatility record stored yet."
		}
		if err := s.Runner.Report(day); err != nil {
			log.Printf("[ERROR] replay report: %v", err)
			return fmt.Sprintf("Failed to resend report for %s.", day)
		}
		return ""
	case "/status":
		day, err := s.Recorder.LatestDay()
		if err != nil {
			day = ""
		}
		return notifier.FormatStatus(day, s.haveStore)
	default:
		return "Commands:\n• /run – compute yesterday now\n• /report – resend latest report\n• /status – recorder status"
	}
}
