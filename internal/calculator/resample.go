package calculator

import (
	"time"

	"VolProfiler/internal/model"
)

// ResampledPoint is one 15-minute bucket's representative price.
type ResampledPoint struct {
	Bucket int       // bucket index 0..95
	Start  time.Time // bucket start, UTC
	Price  float64
}

// ResampledSeries holds at most 96 points, sorted by time, one per bucket
// that had at least one observation. Buckets with no observations are
// absent, not zero-filled.
type ResampledSeries []ResampledPoint

// Resample reduces an irregular one-day price series to a 15-minute grid.
// Each bucket [start, start+15m) takes the price of the chronologically last
// observation inside it; an observation exactly on a boundary belongs to the
// bucket it starts. An empty series resamples to an empty result.
func Resample(series model.PriceSeries) ResampledSeries {
	obs := series.Observations()
	if len(obs) == 0 {
		return nil
	}

	dayStart := series.Day()
	out := make(ResampledSeries, 0, model.SlotCount)
	for _, o := range obs {
		bucket := int(o.Time.Sub(dayStart) / model.BucketDuration)
		if bucket < 0 || bucket >= model.SlotCount {
			continue
		}
		p := ResampledPoint{
			Bucket: bucket,
			Start:  dayStart.Add(time.Duration(bucket) * model.BucketDuration),
			Price:  o.Price,
		}
		// Observations arrive sorted, so the last one seen for a bucket wins.
		if n := len(out); n > 0 && out[n-1].Bucket == bucket {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
