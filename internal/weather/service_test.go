package weather

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeProvider struct {
	series Series
	err    error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FetchHourly(ctx context.Context, station string, start, end time.Time) (Series, error) {
	if f.err != nil {
		return Series{}, f.err
	}
	return f.series, nil
}

// TestExportWritesSelectedColumns runs the full fetch, select and write path
// and checks the CSV that lands on disk.
func TestExportWritesSelectedColumns(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{series: Series{
		Station: "72505",
		Fields:  []Field{FieldTemp, FieldWdir, FieldPrcp},
		Rows: []Observation{
			{Timestamp: start, Values: map[Field]float64{FieldTemp: 5.4, FieldWdir: 250, FieldPrcp: 0}},
			{Timestamp: start.Add(time.Hour), Values: map[Field]float64{FieldTemp: 5.1}},
		},
	}}

	path := filepath.Join(t.TempDir(), "weather.csv")
	svc := NewService(provider)

	series, err := svc.Export(context.Background(), "72505", start, start.Add(time.Hour), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// wdir is not a kept column and must not survive the selection.
	if len(series.Fields) != 2 || series.Fields[0] != FieldTemp || series.Fields[1] != FieldPrcp {
		t.Fatalf("expected columns [temp prcp], got %v", series.Fields)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,temp,prcp" {
		t.Fatalf("expected header %q, got %q", "time,temp,prcp", lines[0])
	}
	if lines[1] != "2024-01-01 00:00:00,5.4,0" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	// The second hour has no precipitation reading, so its cell is empty.
	if lines[2] != "2024-01-01 01:00:00,5.1," {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

// TestExportFetchFailure verifies a provider failure aborts the export and
// leaves no file behind.
func TestExportFetchFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("remote down")}
	svc := NewService(provider)

	path := filepath.Join(t.TempDir(), "weather.csv")
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Export(context.Background(), "72505", start, start, path); err == nil {
		t.Fatal("expected error when the provider fails")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat returned %v", err)
	}
}

// TestWriteHead verifies the preview is capped at the requested row count and
// tolerates asking for more rows than exist.
func TestWriteHead(t *testing.T) {
	start := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	s := Series{
		Fields: []Field{FieldTemp},
		Rows: []Observation{
			{Timestamp: start, Values: map[Field]float64{FieldTemp: 21}},
			{Timestamp: start.Add(time.Hour), Values: map[Field]float64{FieldTemp: 22.5}},
			{Timestamp: start.Add(2 * time.Hour), Values: map[Field]float64{FieldTemp: 23}},
		},
	}

	var buf bytes.Buffer
	WriteHead(&buf, s, 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "21") || !strings.Contains(lines[2], "22.5") {
		t.Fatalf("unexpected preview rows: %q", lines[1:])
	}

	buf.Reset()
	WriteHead(&buf, s, 10)
	if got := len(strings.Split(strings.TrimSpace(buf.String()), "\n")); got != 4 {
		t.Fatalf("expected header plus all 3 rows, got %d lines", got)
	}

	// A negative count, e.g. from a misconfigured PREVIEW_ROWS, prints only
	// the header.
	buf.Reset()
	WriteHead(&buf, s, -1)
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "time") {
		t.Fatalf("expected only the header for a negative count, got %q", buf.String())
	}
}
