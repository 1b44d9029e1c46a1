// Package pipeline sequences one full daily run: fetch, resample, estimate,
// persist, report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"VolProfiler/internal/calculator"
	"VolProfiler/internal/chart"
	"VolProfiler/internal/collector"
	"VolProfiler/internal/model"
	"VolProfiler/internal/notifier"
	"VolProfiler/internal/recorder"
)

// Notifier is the push channel the pipeline reports to.
type Notifier interface {
	Send(text string) error
	SendPhoto(photoPath, caption string) error
}

// Runner executes the daily volatility run. Every step before the
// notification is fatal for the run; a failed notification (or chart render)
// is logged and the run still succeeds, since the persisted record is the
// valuable side effect.
type Runner struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Notifier  Notifier
	Options   calculator.EstimatorOptions
}

// NewRunner creates a Runner.
func NewRunner(col *collector.Collector, rec recorder.Recorder, n Notifier, opts calculator.EstimatorOptions) *Runner {
	return &Runner{Collector: col, Recorder: rec, Notifier: n, Options: opts}
}

// Run processes yesterday (UTC): the fixed target-day rule of the daily job.
func (r *Runner) Run(ctx context.Context) (*model.DailyVolatilityRecord, error) {
	now := time.Now().UTC()
	target := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return r.RunDay(ctx, target)
}

// RunDay processes one specific UTC day, strictly sequentially, no retries.
func (r *Runner) RunDay(ctx context.Context, day time.Time) (*model.DailyVolatilityRecord, error) {
	dayKey := day.UTC().Format(model.DayFormat)
	log.Printf("[INFO] running volatility pipeline for %s (source: %s)", dayKey, r.Collector.Fetcher.Name())

	series, err := r.Collector.CollectDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", dayKey, err)
	}
	log.Printf("[INFO] fetched %d observations for %s", series.Len(), dayKey)

	resampled := calculator.Resample(series)
	slots := calculator.Estimate(resampled, r.Options)
	rec := model.NewDailyVolatilityRecord(day, slots)

	if err := r.Recorder.SaveDaily(rec); err != nil {
		return nil, fmt.Errorf("persist %s: %w", dayKey, err)
	}
	log.Printf("[INFO] persisted %s: mean volatility %.6f", dayKey, rec.Mean())

	// Report from the stored row so the message reflects exactly what was
	// persisted. The noop recorder stores nothing; fall back to the computed
	// record then.
	stored, err := r.Recorder.LoadDaily(rec.Day)
	if errors.Is(err, recorder.ErrNotFound) {
		stored = rec
	} else if err != nil {
		return nil, fmt.Errorf("read back %s: %w", dayKey, err)
	}

	r.report(stored)
	return rec, nil
}

// Report re-sends the notification for an already-stored day. Used by the
// /report bot command.
func (r *Runner) Report(day string) error {
	stored, err := r.Recorder.LoadDaily(day)
	if err != nil {
		return fmt.Errorf("load %s: %w", day, err)
	}
	r.report(stored)
	return nil
}

func (r *Runner) report(rec *model.DailyVolatilityRecord) {
	msg := notifier.FormatDailyReport(rec)

	plotPath, err := chart.RenderTemp(rec)
	if err != nil {
		log.Printf("[WARN] render chart: %v, sending text only", err)
		if err := r.Notifier.Send(msg); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
		return
	}
	defer func() {
		if err := os.Remove(plotPath); err != nil {
			log.Printf("[WARN] remove chart file: %v", err)
		}
	}()

	if err := r.Notifier.SendPhoto(plotPath, msg); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
		return
	}
	log.Printf("[INFO] notification sent for %s", rec.Day)
}
