package collector

import (
	"context"
	"fmt"
	"time"

	"VolProfiler/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Observations []model.PriceObservation
	Err          error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPrices(_ context.Context, from, to time.Time) ([]model.PriceObservation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Observations != nil {
		return m.Observations, nil
	}
	return GenerateMockPrices(from, to, 60000), nil
}

// GenerateMockPrices produces one observation per minute over [from, to]
// with a gentle drift around basePrice.
func GenerateMockPrices(from, to time.Time, basePrice float64) []model.PriceObservation {
	var obs []model.PriceObservation
	i := 0
	for t := from; !t.After(to); t = t.Add(time.Minute) {
		obs = append(obs, model.PriceObservation{
			Time:  t,
			Price: basePrice * (1 + float64(i%30-15)*0.0001),
		})
		i++
	}
	return obs
}

// Collector turns a target day into a fetch range and a normalized series.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// CollectDay fetches the raw observations for one UTC calendar day and
// builds the normalized PriceSeries. The range runs from 00:00:00 through
// 23:59:59 of the day, inclusive.
func (c *Collector) CollectDay(ctx context.Context, day time.Time) (model.PriceSeries, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	obs, err := c.Fetcher.FetchPrices(ctx, dayStart, dayEnd)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("fetch prices: %w", err)
	}
	return model.NewPriceSeries(dayStart, obs), nil
}
