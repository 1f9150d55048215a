package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/config"
	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/datasets"
	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/fetch"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	resources := datasets.Catalog()
	if err := datasets.Validate(resources); err != nil {
		log.Fatalf("bad dataset catalog: %v", err)
	}

	// Shared HTTP client for dataset transfers. Monthly trip files run to
	// hundreds of MB, so the default is no overall deadline.
	httpClient := &http.Client{
		Timeout: cfg.DownloadTimeout,
	}

	downloader := datasets.NewDownloader(fetch.NewClient("tlc-datasets", httpClient), cfg.DataDir)

	// Cancel in-flight transfers on termination signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := downloader.Run(ctx, resources)
	if err != nil {
		log.Fatalf("failed to run downloads: %v", err)
	}
	report.WriteRecap(os.Stdout)

	// Summarize whatever columnar files are on disk, from this run or earlier.
	fmt.Println("\n=== Downloaded dataset info ===")
	entries, err := datasets.ScanDir(ctx, downloader.Dir())
	if err != nil {
		log.Fatalf("failed to scan %s: %v", downloader.Dir(), err)
	}
	for _, e := range entries {
		if e.Err != nil {
			log.Printf("could not summarize %s: %v", e.File, e.Err)
			continue
		}
		datasets.WriteSummary(os.Stdout, e.Summary)
	}
}
