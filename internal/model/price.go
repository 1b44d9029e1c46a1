package model

import (
	"sort"
	"time"
)

// PriceObservation is a single raw price sample.
type PriceObservation struct {
	Time  time.Time
	Price float64
}

// PriceSeries holds the raw, irregular minute-level observations for one UTC day.
type PriceSeries struct {
	day time.Time // midnight UTC of the covered day
	obs []PriceObservation
}

// NewPriceSeries builds a series for the given day. Observations outside the
// day (00:00:00 to 23:59:59 UTC) are dropped, the rest are sorted by
// timestamp, and duplicate timestamps are resolved last-write-wins.
func NewPriceSeries(day time.Time, obs []PriceObservation) PriceSeries {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	kept := make([]PriceObservation, 0, len(obs))
	for _, o := range obs {
		t := o.Time.UTC()
		if t.Before(dayStart) || !t.Before(dayEnd) {
			continue
		}
		kept = append(kept, PriceObservation{Time: t, Price: o.Price})
	}

	// Stable sort so that for equal timestamps the later input entry survives
	// the dedup pass below.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Time.Before(kept[j].Time) })

	deduped := kept[:0]
	for _, o := range kept {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(o.Time) {
			deduped[n-1] = o
			continue
		}
		deduped = append(deduped, o)
	}

	return PriceSeries{day: dayStart, obs: deduped}
}

// Day returns midnight UTC of the day the series covers.
func (s PriceSeries) Day() time.Time { return s.day }

// Len returns the number of observations after normalization.
func (s PriceSeries) Len() int { return len(s.obs) }

// Observations returns the normalized observations in chronological order.
// The returned slice must not be modified.
func (s PriceSeries) Observations() []PriceObservation { return s.obs }
