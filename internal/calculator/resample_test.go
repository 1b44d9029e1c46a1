package calculator

import (
	"testing"
	"time"

	"VolProfiler/internal/model"
)

var testDay = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

func obsAt(min int, price float64) model.PriceObservation {
	return model.PriceObservation{Time: testDay.Add(time.Duration(min) * time.Minute), Price: price}
}

func TestResample_LastObservationWins(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(3, 100),
		obsAt(11, 105),
	})
	rs := Resample(series)
	if len(rs) != 1 {
		t.Fatalf("expected 1 resampled point, got %d", len(rs))
	}
	if rs[0].Bucket != 0 {
		t.Errorf("expected bucket 0, got %d", rs[0].Bucket)
	}
	if rs[0].Price != 105 {
		t.Errorf("expected later price 105, got %v", rs[0].Price)
	}
}

func TestResample_BoundaryBelongsToStartedBucket(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(0, 100),
		obsAt(15, 110), // exactly on the bucket 1 boundary
	})
	rs := Resample(series)
	if len(rs) != 2 {
		t.Fatalf("expected 2 resampled points, got %d", len(rs))
	}
	if rs[1].Bucket != 1 {
		t.Errorf("boundary observation should open bucket 1, got bucket %d", rs[1].Bucket)
	}
	if !rs[1].Start.Equal(testDay.Add(15 * time.Minute)) {
		t.Errorf("unexpected bucket start %v", rs[1].Start)
	}
}

func TestResample_EmptySeries(t *testing.T) {
	series := model.NewPriceSeries(testDay, nil)
	if rs := Resample(series); len(rs) != 0 {
		t.Fatalf("expected empty resampled series, got %d points", len(rs))
	}
}

func TestResample_MissingBucketsAbsent(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(1, 100),
		obsAt(61, 101), // bucket 4, buckets 1-3 have no data
	})
	rs := Resample(series)
	if len(rs) != 2 {
		t.Fatalf("expected 2 points (gaps absent, not zero-filled), got %d", len(rs))
	}
	if rs[0].Bucket != 0 || rs[1].Bucket != 4 {
		t.Errorf("expected buckets 0 and 4, got %d and %d", rs[0].Bucket, rs[1].Bucket)
	}
}

func TestResample_SortedByTime(t *testing.T) {
	series := model.NewPriceSeries(testDay, []model.PriceObservation{
		obsAt(200, 102),
		obsAt(10, 100),
		obsAt(100, 101),
	})
	rs := Resample(series)
	for i := 1; i < len(rs); i++ {
		if !rs[i-1].Start.Before(rs[i].Start) {
			t.Fatalf("resampled series not sorted at index %d", i)
		}
	}
}
