package recorder

import (
	"errors"

	"VolProfiler/internal/model"
)

// ErrNotFound is returned by LoadDaily when no record exists for the day.
var ErrNotFound = errors.New("no record for day")

// Recorder persists the daily volatility record and reads it back for
// reporting. SaveDaily stamps the record's ComputedAt at write time.
type Recorder interface {
	SaveDaily(rec *model.DailyVolatilityRecord) error
	LoadDaily(day string) (*model.DailyVolatilityRecord, error)
	// LatestDay returns the day key of the most recently stored record.
	LatestDay() (string, error)
	Close() error
}
