package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/config"
	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/fetch"
	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/weather"
	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/weather/providers"
)

// Central Park, NY. The whole pipeline is anchored to this station and year,
// so both are constants rather than flags.
const station = "72505"

var (
	rangeStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewMeteostatProvider(fetch.NewClient("meteostat", httpClient))
	service := weather.NewService(provider)

	// Cancel the fetch on termination signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("INFO: fetching hourly weather for station %s, %s to %s",
		station, rangeStart.Format("2006-01-02"), rangeEnd.Format("2006-01-02"))

	series, err := service.Export(ctx, station, rangeStart, rangeEnd, cfg.WeatherOutput)
	if err != nil {
		log.Fatalf("failed to export weather data: %v", err)
	}

	fmt.Printf("File created with the following columns: %v\n", series.Fields)
	weather.WriteHead(os.Stdout, series, cfg.PreviewRows)
}
