package weather

import (
	"time"
)

// Field names a measurement column of an hourly observation series.
// The constants follow the Meteostat hourly schema.
type Field string

const (
	FieldTemp Field = "temp" // air temperature, °C
	FieldDwpt Field = "dwpt" // dew point, °C
	FieldRhum Field = "rhum" // relative humidity, %
	FieldPrcp Field = "prcp" // precipitation, mm
	FieldSnow Field = "snow" // snow depth, mm
	FieldWdir Field = "wdir" // wind direction, °
	FieldWspd Field = "wspd" // wind speed, km/h
	FieldWpgt Field = "wpgt" // peak wind gust, km/h
	FieldPres Field = "pres" // sea-level air pressure, hPa
	FieldTsun Field = "tsun" // sunshine duration, min
	FieldCoco Field = "coco" // weather condition code
)

// TargetFields is the fixed whitelist of columns kept in the exported CSV.
// The export keeps the intersection of this list with whatever columns the
// provider actually returned, in this order.
var TargetFields = []Field{
	FieldTemp,
	FieldDwpt,
	FieldRhum,
	FieldPrcp,
	FieldSnow,
	FieldWspd,
	FieldPres,
}

// Observation is one hour of a station's series. A field missing from Values
// means the station reported no reading for that hour.
type Observation struct {
	Timestamp time.Time // always UTC
	Values    map[Field]float64
}

// Series is a time-indexed observation table for a single station.
// Fields is the set of measurement columns the provider reported, in provider
// order; rows may still have gaps within those columns.
type Series struct {
	Station string
	Fields  []Field
	Rows    []Observation
}

// HasField reports whether the provider returned the given column.
func (s Series) HasField(f Field) bool {
	for _, field := range s.Fields {
		if field == f {
			return true
		}
	}
	return false
}

// Select returns the series restricted to the target columns the provider
// actually reported, in target order. Rows are shared, not copied; only the
// column set changes.
func (s Series) Select(targets []Field) Series {
	kept := make([]Field, 0, len(targets))
	for _, f := range targets {
		if s.HasField(f) {
			kept = append(kept, f)
		}
	}

	out := s
	out.Fields = kept
	return out
}
