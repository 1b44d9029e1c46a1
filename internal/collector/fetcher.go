package collector

import (
	"context"
	"time"

	"VolProfiler/internal/model"
)

// Fetcher defines the interface for fetching raw price observations.
type Fetcher interface {
	// FetchPrices returns all observations for one asset in the inclusive
	// UTC range [from, to], in no particular order.
	FetchPrices(ctx context.Context, from, to time.Time) ([]model.PriceObservation, error)
	Name() string
}
