package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"VolProfiler/internal/model"
)

// BucketReturn is one log-return, assigned to the bucket of its later
// endpoint. When intermediate buckets are missing the return spans the gap;
// that is the legacy behavior and is kept for compatibility with the stored
// history, not a true 15-minute return.
type BucketReturn struct {
	Bucket int
	Value  float64
}

// EstimatorOptions controls the volatility estimator.
type EstimatorOptions struct {
	// AlignBuckets places each bucket's deviation at its true slot index,
	// leaving genuinely empty buckets at 0.0. The default (false) reproduces
	// the legacy padding law: deviations are emitted in time order and the
	// vector is padded with zeros by count, so slot index and time-of-day
	// drift apart once the series has interior gaps. Downstream consumers
	// were built against the legacy vector, hence the default.
	AlignBuckets bool
}

// LogReturns computes one natural-log return per adjacent pair of present
// resampled entries. Pairs whose earlier price is zero or negative are
// excluded rather than producing Inf/NaN.
func LogReturns(rs ResampledSeries) []BucketReturn {
	if len(rs) < 2 {
		return nil
	}
	out := make([]BucketReturn, 0, len(rs)-1)
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		if prev.Price <= 0 || cur.Price <= 0 {
			continue
		}
		out = append(out, BucketReturn{
			Bucket: cur.Bucket,
			Value:  math.Log(cur.Price / prev.Price),
		})
	}
	return out
}

// Estimate converts a resampled series into the 96-slot volatility vector.
// Per bucket with at least one return it takes the sample standard deviation
// of the returns assigned there; a single return yields 0.0, and NaN from
// the deviation step is coerced to 0.0. The result always has exactly 96
// finite, non-negative entries.
func Estimate(rs ResampledSeries, opts EstimatorOptions) [model.SlotCount]float64 {
	var slots [model.SlotCount]float64

	grouped := make(map[int][]float64)
	order := make([]int, 0, model.SlotCount)
	for _, r := range LogReturns(rs) {
		if _, seen := grouped[r.Bucket]; !seen {
			order = append(order, r.Bucket)
		}
		grouped[r.Bucket] = append(grouped[r.Bucket], r.Value)
	}

	if opts.AlignBuckets {
		for bucket, vals := range grouped {
			slots[bucket] = bucketStdDev(vals)
		}
		return slots
	}

	// Legacy padding law: computed deviations in increasing time order, then
	// zeros up to 96 regardless of which buckets were actually missing.
	for i, bucket := range order {
		if i >= model.SlotCount {
			break
		}
		slots[i] = bucketStdDev(grouped[bucket])
	}
	return slots
}

func bucketStdDev(vals []float64) float64 {
	if len(vals) < 2 {
		// No variance with one sample; the legacy system stored 0.0 here.
		return 0
	}
	sd := stat.StdDev(vals, nil)
	if math.IsNaN(sd) || math.IsInf(sd, 0) {
		return 0
	}
	return sd
}
