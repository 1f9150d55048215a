package weather

import (
	"context"
	"time"
)

// Provider abstracts an hourly weather data source (e.g. Meteostat).
type Provider interface {
	Name() string

	// FetchHourly returns the station's observation series for [start, end],
	// both bounds inclusive. Timestamps are UTC.
	FetchHourly(ctx context.Context, station string, start, end time.Time) (Series, error)
}
