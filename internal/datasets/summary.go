package datasets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/common"
)

// pickupField is the trip-start timestamp column of yellow-cab trip files.
const pickupField = "tpep_pickup_datetime"

const timeLayout = "2006-01-02 15:04:05"

var printer = message.NewPrinter(language.English)

// Summary describes one columnar file: its shape plus the time range of the
// pickup column.
type Summary struct {
	File      string
	Rows      int64
	Columns   []string
	PickupMin time.Time
	PickupMax time.Time
}

// Entry pairs a scanned file with its summary or the error that prevented
// one. A file that cannot be summarized never aborts the scan.
type Entry struct {
	File    string
	Summary *Summary
	Err     error
}

// ScanDir summarizes every columnar file (parquet or CSV) directly inside
// dir, in name order. Per-file failures are captured on the entry; the only
// error returned is failing to list the directory.
func ScanDir(ctx context.Context, dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !common.HasAnySuffix(de.Name(), ".parquet", ".csv") {
			continue
		}

		path := filepath.Join(dir, de.Name())
		var (
			s      *Summary
			sumErr error
		)
		if strings.HasSuffix(de.Name(), ".parquet") {
			s, sumErr = SummarizeParquet(ctx, path)
		} else {
			s, sumErr = SummarizeCSV(path)
		}

		entries = append(entries, Entry{File: de.Name(), Summary: s, Err: sumErr})
	}

	return entries, nil
}

// SummarizeParquet reads a parquet file's shape from its metadata and the
// pickup time range from a column-projected read of just that column.
func SummarizeParquet(ctx context.Context, path string) (*Summary, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{BatchSize: 64 * 1024}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	schema, err := fr.Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to read schema of %s: %w", filepath.Base(path), err)
	}

	columns := make([]string, len(schema.Fields()))
	for i, f := range schema.Fields() {
		columns[i] = f.Name
	}

	colIdx := -1
	pqSchema := rdr.MetaData().Schema
	for i := 0; i < pqSchema.NumColumns(); i++ {
		if pqSchema.Column(i).Name() == pickupField {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("%s has no %s column", filepath.Base(path), pickupField)
	}

	minTS, maxTS, err := timestampRange(ctx, fr, colIdx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s of %s: %w", pickupField, filepath.Base(path), err)
	}

	return &Summary{
		File:      filepath.Base(path),
		Rows:      rdr.NumRows(),
		Columns:   columns,
		PickupMin: minTS,
		PickupMax: maxTS,
	}, nil
}

// timestampRange streams one timestamp column and returns its min and max.
func timestampRange(ctx context.Context, fr *pqarrow.FileReader, colIdx int) (time.Time, time.Time, error) {
	rr, err := fr.GetRecordReader(ctx, []int{colIdx}, nil)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	defer rr.Release()

	var (
		have       bool
		minV, maxV arrow.Timestamp
		unit       arrow.TimeUnit
	)
	for rr.Next() {
		col, ok := rr.Record().Column(0).(*array.Timestamp)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("column is %s, not a timestamp", rr.Record().Column(0).DataType())
		}
		unit = col.DataType().(*arrow.TimestampType).Unit

		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			v := col.Value(i)
			if !have || v < minV {
				minV = v
			}
			if !have || v > maxV {
				maxV = v
			}
			have = true
		}
	}
	if err := rr.Err(); err != nil && err != io.EOF {
		return time.Time{}, time.Time{}, err
	}
	if !have {
		return time.Time{}, time.Time{}, nil
	}

	return minV.ToTime(unit).UTC(), maxV.ToTime(unit).UTC(), nil
}

// SummarizeCSV reads a CSV file's header and rows. The pickup column must be
// present, like in the parquet case; cells in it parse as either
// "2006-01-02 15:04:05" or RFC 3339, and empty cells are skipped.
func SummarizeCSV(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", filepath.Base(path), err)
	}

	colIdx := -1
	for i, name := range header {
		if name == pickupField {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("%s has no %s column", filepath.Base(path), pickupField)
	}

	var (
		rows       int64
		have       bool
		minT, maxT time.Time
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		rows++

		cell := rec[colIdx]
		if cell == "" {
			continue
		}
		ts, err := parseTimestamp(cell)
		if err != nil {
			return nil, fmt.Errorf("bad %s value in %s: %w", pickupField, filepath.Base(path), err)
		}
		if !have || ts.Before(minT) {
			minT = ts
		}
		if !have || ts.After(maxT) {
			maxT = ts
		}
		have = true
	}

	return &Summary{
		File:      filepath.Base(path),
		Rows:      rows,
		Columns:   header,
		PickupMin: minT,
		PickupMax: maxT,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.ParseInLocation(timeLayout, s, time.UTC); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}

// WriteSummary prints one file's summary in the report format, with
// thousands-grouped row counts.
func WriteSummary(w io.Writer, s *Summary) {
	printer.Fprintf(w, "%s: %d rows, %d columns\n", s.File, s.Rows, len(s.Columns))
	fmt.Fprintf(w, "  Columns: %v\n", s.Columns)
	if !s.PickupMin.IsZero() {
		fmt.Fprintf(w, "  Period: %s to %s\n", s.PickupMin.Format(timeLayout), s.PickupMax.Format(timeLayout))
	}
}
