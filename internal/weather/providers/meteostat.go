package providers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/klauspost/compress/gzip"

	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/fetch"
	"github.com/speedy237/NYC-Taxi-Analytics-Platform/internal/weather"
)

// bulkHeader is the fixed column order of Meteostat v2 hourly bulk files,
// which carry no header row of their own.
var bulkHeader = []string{
	"date", "hour",
	"temp", "dwpt", "rhum", "prcp", "snow",
	"wdir", "wspd", "wpgt", "pres", "tsun", "coco",
}

// bulkFields are the measurement columns of the bulk schema, in file order.
var bulkFields = []weather.Field{
	weather.FieldTemp,
	weather.FieldDwpt,
	weather.FieldRhum,
	weather.FieldPrcp,
	weather.FieldSnow,
	weather.FieldWdir,
	weather.FieldWspd,
	weather.FieldWpgt,
	weather.FieldPres,
	weather.FieldTsun,
	weather.FieldCoco,
}

const bulkDateLayout = "2006-01-02"

// bulkRecord is one row of a bulk file. Pointer fields stay nil for empty
// cells, which is how Meteostat encodes a missing reading.
type bulkRecord struct {
	Date string   `csv:"date"`
	Hour int      `csv:"hour"`
	Temp *float64 `csv:"temp"`
	Dwpt *float64 `csv:"dwpt"`
	Rhum *float64 `csv:"rhum"`
	Prcp *float64 `csv:"prcp"`
	Snow *float64 `csv:"snow"`
	Wdir *float64 `csv:"wdir"`
	Wspd *float64 `csv:"wspd"`
	Wpgt *float64 `csv:"wpgt"`
	Pres *float64 `csv:"pres"`
	Tsun *float64 `csv:"tsun"`
	Coco *float64 `csv:"coco"`
}

// MeteostatProvider implements the weather.Provider interface against the
// Meteostat bulk data endpoint, which serves one gzipped CSV per station and
// year.
type MeteostatProvider struct {
	name    string
	baseURL string
	client  *fetch.Client
}

func NewMeteostatProvider(client *fetch.Client) *MeteostatProvider {
	return &MeteostatProvider{
		name:    "meteostat",
		baseURL: "https://bulk.meteostat.net/v2",
		client:  client,
	}
}

func (p *MeteostatProvider) Name() string {
	return p.name
}

// FetchHourly downloads the station's bulk file for the year of the requested
// range and keeps the rows inside [start, end]. Bulk files are chunked by
// calendar year, so the range must not cross a year boundary.
func (p *MeteostatProvider) FetchHourly(ctx context.Context, station string, start, end time.Time) (weather.Series, error) {
	if station == "" {
		return weather.Series{}, errors.New("meteostat requires a station identifier")
	}
	if start.Year() != end.Year() {
		return weather.Series{}, fmt.Errorf("meteostat bulk data is chunked by year; range %d-%d spans two", start.Year(), end.Year())
	}

	u := fmt.Sprintf("%s/hourly/%d/%s.csv.gz", p.baseURL, start.Year(), station)

	resp, err := p.client.Get(ctx, u)
	if err != nil {
		return weather.Series{}, err
	}
	defer resp.Body.Close()

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return weather.Series{}, fmt.Errorf("failed to open gzip stream from %s: %w", u, err)
	}
	defer gz.Close()

	rows, err := decodeBulk(gz, start, end)
	if err != nil {
		return weather.Series{}, fmt.Errorf("failed to decode bulk data from %s: %w", u, err)
	}

	return weather.Series{
		Station: station,
		Fields:  append([]weather.Field(nil), bulkFields...),
		Rows:    rows,
	}, nil
}

// decodeBulk reads bulk CSV rows from r and keeps those with a timestamp
// inside [start, end], both bounds inclusive.
func decodeBulk(r io.Reader, start, end time.Time) ([]weather.Observation, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r), bulkHeader...)
	if err != nil {
		return nil, err
	}

	var rows []weather.Observation
	for {
		var rec bulkRecord
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		day, err := time.ParseInLocation(bulkDateLayout, rec.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", rec.Date, err)
		}
		ts := day.Add(time.Duration(rec.Hour) * time.Hour)
		if ts.Before(start) || ts.After(end) {
			continue
		}

		rows = append(rows, weather.Observation{
			Timestamp: ts,
			Values:    recordValues(rec),
		})
	}

	return rows, nil
}

func recordValues(rec bulkRecord) map[weather.Field]float64 {
	cells := []struct {
		field weather.Field
		value *float64
	}{
		{weather.FieldTemp, rec.Temp},
		{weather.FieldDwpt, rec.Dwpt},
		{weather.FieldRhum, rec.Rhum},
		{weather.FieldPrcp, rec.Prcp},
		{weather.FieldSnow, rec.Snow},
		{weather.FieldWdir, rec.Wdir},
		{weather.FieldWspd, rec.Wspd},
		{weather.FieldWpgt, rec.Wpgt},
		{weather.FieldPres, rec.Pres},
		{weather.FieldTsun, rec.Tsun},
		{weather.FieldCoco, rec.Coco},
	}

	values := make(map[weather.Field]float64, len(cells))
	for _, c := range cells {
		if c.value != nil {
			values[c.field] = *c.value
		}
	}
	return values
}
