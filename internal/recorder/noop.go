package recorder

import (
	"time"

	"VolProfiler/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) SaveDaily(rec *model.DailyVolatilityRecord) error {
	rec.ComputedAt = time.Now().UTC()
	return nil
}

func (n *NoopRecorder) LoadDaily(_ string) (*model.DailyVolatilityRecord, error) {
	return nil, ErrNotFound
}

func (n *NoopRecorder) LatestDay() (string, error) { return "", ErrNotFound }

func (n *NoopRecorder) Close() error { return nil }
