package weather

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"
)

// timeLayout matches the exported CSV's timestamp index format.
const timeLayout = "2006-01-02 15:04:05"

// Service orchestrates fetching a station series and persisting the kept
// columns as CSV.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Export fetches the hourly series for the station and range, restricts it to
// TargetFields, and writes it to path as CSV with a "time" index column. It
// returns the kept series so callers can echo columns and a row preview.
// Fetch and write failures propagate to the caller; there is no recovery.
func (s *Service) Export(ctx context.Context, station string, start, end time.Time, path string) (Series, error) {
	series, err := s.provider.FetchHourly(ctx, station, start, end)
	if err != nil {
		return Series{}, fmt.Errorf("failed to fetch hourly series for station %s: %w", station, err)
	}

	kept := series.Select(TargetFields)

	f, err := os.Create(path)
	if err != nil {
		return Series{}, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, kept); err != nil {
		f.Close()
		return Series{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Series{}, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return kept, nil
}

// WriteCSV writes the series as delimited text: a "time" index column first,
// then the series' columns in order. Hours with no reading for a column get
// an empty cell.
func WriteCSV(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(s.Fields)+1)
	header = append(header, "time")
	for _, f := range s.Fields {
		header = append(header, string(f))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range s.Rows {
		record[0] = row.Timestamp.Format(timeLayout)
		for i, f := range s.Fields {
			if v, ok := row.Values[f]; ok {
				record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
			} else {
				record[i+1] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteHead prints the first n rows of the series as an aligned table, in the
// spirit of a dataframe head. If n is negative, it is treated as zero and only
// the header is printed.
func WriteHead(w io.Writer, s Series, n int) {
	if n < 0 {
		n = 0
	}
	if n > len(s.Rows) {
		n = len(s.Rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "time")
	for _, f := range s.Fields {
		fmt.Fprintf(tw, "\t%s", f)
	}
	fmt.Fprintln(tw)

	for _, row := range s.Rows[:n] {
		fmt.Fprint(tw, row.Timestamp.Format(timeLayout))
		for _, f := range s.Fields {
			if v, ok := row.Values[f]; ok {
				fmt.Fprintf(tw, "\t%s", strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				fmt.Fprint(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}

	tw.Flush()
}
