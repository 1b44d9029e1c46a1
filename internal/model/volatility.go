package model

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

// SlotCount is the number of 15-minute buckets in one UTC day.
const SlotCount = 96

// BucketDuration is the width of one volatility bucket.
const BucketDuration = 15 * time.Minute

// DayFormat is the day-key layout used for persistence and reporting.
const DayFormat = "2006-01-02"

// DailyVolatilityRecord is one day's 96-slot volatility vector. Slots is a
// fixed array so the 96-length invariant holds by construction. ComputedAt
// is assigned by the recorder when the record is written, not when it is
// computed.
type DailyVolatilityRecord struct {
	Day        string
	Slots      [SlotCount]float64
	ComputedAt time.Time
}

// NewDailyVolatilityRecord wraps a slot vector with its day key.
func NewDailyVolatilityRecord(day time.Time, slots [SlotCount]float64) *DailyVolatilityRecord {
	return &DailyVolatilityRecord{
		Day:   day.UTC().Format(DayFormat),
		Slots: slots,
	}
}

// Slot returns the volatility value for bucket index 0..95.
func (r *DailyVolatilityRecord) Slot(i int) (float64, error) {
	if i < 0 || i >= SlotCount {
		return 0, fmt.Errorf("slot index %d out of range [0,%d)", i, SlotCount)
	}
	return r.Slots[i], nil
}

// Mean returns the arithmetic mean over all 96 slots.
func (r *DailyVolatilityRecord) Mean() float64 {
	return stat.Mean(r.Slots[:], nil)
}

// BucketStart returns the UTC start time of bucket i on the record's day.
func (r *DailyVolatilityRecord) BucketStart(i int) (time.Time, error) {
	if i < 0 || i >= SlotCount {
		return time.Time{}, fmt.Errorf("slot index %d out of range [0,%d)", i, SlotCount)
	}
	day, err := time.ParseInLocation(DayFormat, r.Day, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", r.Day, err)
	}
	return day.Add(time.Duration(i) * BucketDuration), nil
}
