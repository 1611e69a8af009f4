// Package export flattens record collections into timestamped CSV files.
// Files are placed all-or-nothing: each file is written to a temp path in
// the output directory and renamed into place, so a failed write never
// leaves a partial file under the final name.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteError wraps any failure to create the output directory or write a
// file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("csv write failed: %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Dataset is one flattened sub-collection ready for export: a kind name
// used in the filename, the fixed column header, and one row per record.
// An empty Rows slice is valid and produces a header-only file.
type Dataset struct {
	Kind   string
	Header []string
	Rows   [][]string
}

// Exporter writes datasets into a single output directory.
type Exporter struct {
	Dir string
}

// NewExporter creates an exporter writing into dir. The directory is
// created on first export.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// Timestamp formats t for embedding in export filenames. Second
// granularity; exports of the same kind at the same instant are not
// expected.
func Timestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// Export writes one file per dataset, named uk_<kind>_<timestamp>.csv,
// and returns the base filenames in dataset order. Any failure aborts
// the whole export; no partial list is returned.
func (e *Exporter) Export(datasets []Dataset, timestamp string) ([]string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, &WriteError{Path: e.Dir, Err: err}
	}

	written := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		name := fmt.Sprintf("uk_%s_%s.csv", ds.Kind, timestamp)
		if err := e.writeFile(name, ds); err != nil {
			return nil, err
		}
		written = append(written, name)
	}
	return written, nil
}

func (e *Exporter) writeFile(name string, ds Dataset) (err error) {
	final := filepath.Join(e.Dir, name)
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return &WriteError{Path: tmp, Err: err}
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	w := csv.NewWriter(f)
	if werr := w.Write(ds.Header); werr != nil {
		return &WriteError{Path: tmp, Err: werr}
	}
	for _, row := range ds.Rows {
		if werr := w.Write(row); werr != nil {
			return &WriteError{Path: tmp, Err: werr}
		}
	}
	w.Flush()
	if werr := w.Error(); werr != nil {
		return &WriteError{Path: tmp, Err: werr}
	}

	if serr := f.Sync(); serr != nil {
		return &WriteError{Path: tmp, Err: serr}
	}
	if cerr := f.Close(); cerr != nil {
		return &WriteError{Path: tmp, Err: cerr}
	}
	if rerr := os.Rename(tmp, final); rerr != nil {
		return &WriteError{Path: final, Err: rerr}
	}
	return nil
}
