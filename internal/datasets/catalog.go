package datasets

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Resource names one remote dataset and where to get it. Entries are static;
// nothing mutates the catalog at runtime.
type Resource struct {
	Name string `validate:"required"`
	URL  string `validate:"required,url"`
}

// catalog is the NYC TLC 2024 dataset catalog, in download order: the twelve
// monthly yellow-cab trip files, the taxi zones archive, and the TLC Central
// Park weather series.
var catalog = []Resource{
	{Name: "yellow_2024_01", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-01.parquet"},
	{Name: "yellow_2024_02", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-02.parquet"},
	{Name: "yellow_2024_03", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-03.parquet"},
	{Name: "yellow_2024_04", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-04.parquet"},
	{Name: "yellow_2024_05", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-05.parquet"},
	{Name: "yellow_2024_06", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-06.parquet"},
	{Name: "yellow_2024_07", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-07.parquet"},
	{Name: "yellow_2024_08", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-08.parquet"},
	{Name: "yellow_2024_09", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-09.parquet"},
	{Name: "yellow_2024_10", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-10.parquet"},
	{Name: "yellow_2024_11", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-11.parquet"},
	{Name: "yellow_2024_12", URL: "https://d37ci6vzurychx.cloudfront.net/trip-data/yellow_tripdata_2024-12.parquet"},
	{Name: "taxi_zones", URL: "https://d37ci6vzurychx.cloudfront.net/misc/taxi_zones.zip"},
	{Name: "central_park_weather", URL: "https://d37ci6vzurychx.cloudfront.net/misc/central_park_weather.csv"},
}

// Catalog returns the resource catalog in download order.
func Catalog() []Resource {
	return append([]Resource(nil), catalog...)
}

// Validate checks every catalog entry. A failure means the catalog itself is
// broken and the program should not start downloading.
func Validate(resources []Resource) error {
	for _, r := range resources {
		if err := validate.Struct(r); err != nil {
			return fmt.Errorf("invalid resource %q: %w", r.Name, err)
		}
	}
	return nil
}

// DestPath computes the destination file for a resource: the resource name
// plus the extension of the URL's final path segment, inside dir.
func DestPath(dir string, r Resource) (string, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", fmt.Errorf("invalid URL for resource %q: %w", r.Name, err)
	}

	ext := path.Ext(u.Path)
	return filepath.Join(dir, r.Name+ext), nil
}
