package datasets

import (
	"fmt"
	"io"
)

// Outcome is the result of handling one catalog resource.
type Outcome struct {
	Resource Resource
	Dest     string
	Bytes    int64
	Skipped  bool
	Err      error
}

// Report collects per-resource outcomes for a single downloader run.
type Report struct {
	Outcomes []Outcome
}

// Record appends one outcome.
func (r *Report) Record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Counts returns how many resources were downloaded, skipped and failed.
func (r *Report) Counts() (downloaded, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch {
		case o.Err != nil:
			failed++
		case o.Skipped:
			skipped++
		default:
			downloaded++
		}
	}
	return downloaded, skipped, failed
}

// TotalBytes returns the number of bytes written during the run. Skipped
// resources contribute nothing.
func (r *Report) TotalBytes() int64 {
	var total int64
	for _, o := range r.Outcomes {
		total += o.Bytes
	}
	return total
}

// WriteRecap prints a one-line run summary.
func (r *Report) WriteRecap(w io.Writer) {
	downloaded, skipped, failed := r.Counts()
	fmt.Fprintf(w, "%d downloaded (%d bytes), %d already present, %d failed\n",
		downloaded, r.TotalBytes(), skipped, failed)
}
