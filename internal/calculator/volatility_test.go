package calculator

import (
	"math"
	"testing"

	"VolProfiler/internal/model"
)

func checkAllFinite(t *testing.T, slots [model.SlotCount]float64) {
	t.Helper()
	for i, v := range slots {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("slot %d is not finite: %v", i, v)
		}
		if v < 0 {
			t.Fatalf("slot %d is negative: %v", i, v)
		}
	}
}

func TestEstimate_EmptySeriesAllZeros(t *testing.T) {
	slots := Estimate(nil, EstimatorOptions{})
	checkAllFinite(t, slots)
	for i, v := range slots {
		if v != 0 {
			t.Fatalf("expected slot %d to be 0, got %v", i, v)
		}
	}
}

func TestEstimate_SingleObservationAllZeros(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{obsAt(7, 50000)})
	slots := Estimate(Resample(series), EstimatorOptions{})
	for i, v := range slots {
		if v != 0 {
			t.Fatalf("single observation has no returns; slot %d = %v", i, v)
		}
	}
}

func TestLogReturns_BoundaryScenario(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(0, 100),
		obsAt(15, 110),
		obsAt(30, 99),
	})
	returns := LogReturns(Resample(series))
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if returns[0].Bucket != 1 || returns[1].Bucket != 2 {
		t.Errorf("returns assigned to buckets %d,%d; want 1,2", returns[0].Bucket, returns[1].Bucket)
	}
	if got, want := returns[0].Value, math.Log(1.1); math.Abs(got-want) > 1e-12 {
		t.Errorf("first return %v, want ln(1.1)=%v", got, want)
	}
	if got, want := returns[1].Value, math.Log(99.0/110.0); math.Abs(got-want) > 1e-12 {
		t.Errorf("second return %v, want ln(99/110)=%v", got, want)
	}

	// Single-sample buckets yield deviation 0.0, so the whole vector is zero.
	slots := Estimate(Resample(series), EstimatorOptions{})
	checkAllFinite(t, slots)
	for i, v := range slots {
		if v != 0 {
			t.Fatalf("expected all-zero vector, slot %d = %v", i, v)
		}
	}
}

func TestLogReturns_SpansGaps(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(0, 100),
		obsAt(60, 120), // bucket 4; buckets 1-3 empty
	})
	returns := LogReturns(Resample(series))
	if len(returns) != 1 {
		t.Fatalf("expected 1 gap-spanning return, got %d", len(returns))
	}
	if returns[0].Bucket != 4 {
		t.Errorf("gap-spanning return assigned to bucket %d, want 4 (later endpoint)", returns[0].Bucket)
	}
	if got, want := returns[0].Value, math.Log(1.2); math.Abs(got-want) > 1e-12 {
		t.Errorf("return %v, want ln(1.2)=%v", got, want)
	}
}

func TestLogReturns_NonpositivePriceExcluded(t *testing.T) {
	rs := ResampledSeries{
		{Bucket: 0, Price: 0},
		{Bucket: 1, Price: 100},
		{Bucket: 2, Price: 110},
	}
	returns := LogReturns(rs)
	if len(returns) != 1 {
		t.Fatalf("expected pair with zero price excluded, got %d returns", len(returns))
	}
	if returns[0].Bucket != 2 {
		t.Errorf("surviving return in bucket %d, want 2", returns[0].Bucket)
	}
}

func TestEstimate_MultipleReturnsPerBucket(t *testing.T) {
	// Resampling normally collapses to one price per bucket, but the
	// estimator must handle a denser series defensively.
	rs := ResampledSeries{
		{Bucket: 0, Price: 100},
		{Bucket: 1, Price: 110},
		{Bucket: 1, Price: 115.5},
	}
	slots := Estimate(rs, EstimatorOptions{})
	checkAllFinite(t, slots)

	a := math.Log(110.0 / 100.0)
	b := math.Log(115.5 / 110.0)
	mean := (a + b) / 2
	want := math.Sqrt((a-mean)*(a-mean) + (b-mean)*(b-mean)) // sample stddev, n-1 = 1

	if math.Abs(slots[0]-want) > 1e-12 {
		t.Errorf("bucket deviation %v, want %v", slots[0], want)
	}
	for i := 1; i < model.SlotCount; i++ {
		if slots[i] != 0 {
			t.Errorf("slot %d should be padding 0.0, got %v", i, slots[i])
		}
	}
}

func TestEstimate_LegacyPaddingByCount(t *testing.T) {
	// Returns end in buckets 4 and 8; the legacy law emits them at slots 0
	// and 1 and pads the rest, losing bucket-index alignment on purpose.
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(50, 100),
		obsAt(65, 110),
		obsAt(125, 99),
	})
	rs := Resample(series)

	legacy := Estimate(rs, EstimatorOptions{})
	checkAllFinite(t, legacy)

	aligned := Estimate(rs, EstimatorOptions{AlignBuckets: true})
	checkAllFinite(t, aligned)

	// All deviations here are single-sample zeros, so compare structurally
	// with a denser input instead.
	dense := ResampledSeries{
		{Bucket: 2, Price: 100},
		{Bucket: 4, Price: 110},
		{Bucket: 8, Price: 110},
		{Bucket: 8, Price: 100},
	}
	legacyDense := Estimate(dense, EstimatorOptions{})
	alignedDense := Estimate(dense, EstimatorOptions{AlignBuckets: true})

	if legacyDense[1] == 0 {
		t.Error("legacy mode should place bucket 8's deviation at slot 1")
	}
	if legacyDense[8] != 0 {
		t.Error("legacy mode must not place anything at slot 8")
	}
	if alignedDense[8] == 0 {
		t.Error("aligned mode should place bucket 8's deviation at slot 8")
	}
	if alignedDense[1] != 0 {
		t.Error("aligned mode must leave slot 1 empty")
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(0, 50000), obsAt(14, 50100), obsAt(16, 49900),
		obsAt(31, 50200), obsAt(47, 50500), obsAt(200, 50300),
	})
	first := Estimate(Resample(series), EstimatorOptions{})
	second := Estimate(Resample(series), EstimatorOptions{})
	if first != second {
		t.Fatal("estimator is not deterministic for identical input")
	}
}
