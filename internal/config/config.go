package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// HTTPTimeout bounds the whole weather provider call, body included.
	HTTPTimeout time.Duration

	// DownloadTimeout bounds a whole dataset transfer. Zero means no overall
	// limit; monthly trip files run to hundreds of MB and the transport's own
	// timeouts still apply.
	DownloadTimeout time.Duration

	// DataDir is where downloaded datasets land.
	DataDir string

	// WeatherOutput is the path of the exported weather CSV.
	WeatherOutput string

	// PreviewRows is how many rows of the weather export are echoed back.
	PreviewRows int
}

// Load reads configuration from environment with sensible defaults.
// Dataset URLs, the station identifier and the date range are compile-time
// constants in their packages, not configuration.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	httpTimeout, err := getenvDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = httpTimeout

	downloadTimeout, err := getenvDuration("DOWNLOAD_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DOWNLOAD_TIMEOUT: %w", err)
	}
	cfg.DownloadTimeout = downloadTimeout

	cfg.DataDir = getenvDefault("DATA_DIR", "data/raw/Nyc_Taxi")
	cfg.WeatherOutput = getenvDefault("WEATHER_OUTPUT", "central_park_weather_2024.csv")
	cfg.PreviewRows = getenvInt("PREVIEW_ROWS", 5)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
