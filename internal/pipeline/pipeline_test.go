package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"VolProfiler/internal/calculator"
	"VolProfiler/internal/collector"
	"VolProfiler/internal/model"
	"VolProfiler/internal/recorder"
)

type stubNotifier struct {
	sent     []string
	captions []string
	fail     bool
}

func (s *stubNotifier) Send(text string) error {
	if s.fail {
		return errors.New("channel unreachable")
	}
	s.sent = append(s.sent, text)
	return nil
}

func (s *stubNotifier) SendPhoto(_, caption string) error {
	if s.fail {
		return errors.New("channel unreachable")
	}
	s.captions = append(s.captions, caption)
	return nil
}

func testRunner(t *testing.T, fetcher collector.Fetcher, n Notifier) (*Runner, *recorder.SQLiteRecorder) {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "vol.db"), false)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	return NewRunner(collector.NewCollector(fetcher), rec, n, calculator.EstimatorOptions{}), rec
}

func TestRunDay_EndToEnd(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	n := &stubNotifier{}
	runner, store := testRunner(t, &collector.MockFetcher{}, n)

	rec, err := runner.RunDay(context.Background(), day)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Day != "2026-08-30" {
		t.Errorf("record day = %q", rec.Day)
	}
	if rec.ComputedAt.IsZero() {
		t.Error("record not stamped at persistence time")
	}

	stored, err := store.LoadDaily("2026-08-30")
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.Slots != rec.Slots {
		t.Error("stored slots differ from computed slots")
	}

	if len(n.captions) != 1 {
		t.Fatalf("expected 1 photo notification, got %d", len(n.captions))
	}
	if !strings.Contains(n.captions[0], "2026-08-30") {
		t.Errorf("caption missing day: %s", n.captions[0])
	}
}

func TestRunDay_FetchFailureAborts(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	n := &stubNotifier{}
	runner, store := testRunner(t, &collector.MockFetcher{Err: errors.New("boom")}, n)

	if _, err := runner.RunDay(context.Background(), day); err == nil {
		t.Fatal("expected fetch failure to abort the run")
	}
	if _, err := store.LatestDay(); !errors.Is(err, recorder.ErrNotFound) {
		t.Errorf("nothing should be persisted after a fetch failure, err = %v", err)
	}
	if len(n.sent) != 0 || len(n.captions) != 0 {
		t.Error("no notification should be sent after a fetch failure")
	}
}

func TestRunDay_NotificationFailureIsNotFatal(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	runner, store := testRunner(t, &collector.MockFetcher{}, &stubNotifier{fail: true})

	if _, err := runner.RunDay(context.Background(), day); err != nil {
		t.Fatalf("notification failure must not fail the run: %v", err)
	}
	if _, err := store.LoadDaily("2026-08-30"); err != nil {
		t.Errorf("record should still be persisted: %v", err)
	}
}

func TestRunDay_EmptyDayProducesAllZeroRecord(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	runner, _ := testRunner(t, &collector.MockFetcher{Observations: []model.PriceObservation{}}, &stubNotifier{})

	rec, err := runner.RunDay(context.Background(), day)
	if err != nil {
		t.Fatalf("empty day must not fail: %v", err)
	}
	for i, v := range rec.Slots {
		if v != 0 {
			t.Fatalf("expected all-zero vector for empty day, slot %d = %v", i, v)
		}
	}
}
