package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Shadab909/couchbase-cluster-report-automation/model"
)

var header = []string{
	"date", "period", "cluster",
	"HOSTNAME", "HEALTH",
	"DISK_UTIL", "MEM_UTIL", "SWAP_UTIL",
	"CB_UPTIME", "CB_SERVICE",
}

// Header returns the CSV header row.
func Header() []string {
	return append([]string(nil), header...)
}

// Row is one dataset entry: either a metric record or a blank marker
// separating two cluster groups.
type Row struct {
	Marker bool
	Record model.MetricRecord
}

// Builder accumulates the run's dataset in order: rows within a group follow
// node discovery order, groups follow cluster configuration order. Rows are
// never mutated once appended.
type Builder struct {
	rows    []Row
	started bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// StartGroup opens the next cluster group, emitting a blank marker after the
// previous group's rows. No marker precedes the first group.
func (b *Builder) StartGroup() {
	if b.started {
		b.rows = append(b.rows, Row{Marker: true})
	}
	b.started = true
}

func (b *Builder) Append(record model.MetricRecord) {
	b.rows = append(b.rows, Row{Record: record})
}

func (b *Builder) Rows() []Row {
	return append([]Row(nil), b.rows...)
}

// Records returns the data rows only, markers excluded.
func (b *Builder) Records() []model.MetricRecord {
	var records []model.MetricRecord
	for _, row := range b.rows {
		if !row.Marker {
			records = append(records, row.Record)
		}
	}
	return records
}

// WriteCSV serializes the dataset: header row, then data rows with markers
// written as empty lines.
func (b *Builder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range b.rows {
		var err error
		if row.Marker {
			err = cw.Write([]string{})
		} else {
			err = cw.Write(row.Record.Fields())
		}
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ArchivePath is the date-stamped location of the run's dataset file.
func ArchivePath(baseDir, date string) string {
	return filepath.Join(baseDir, date, fmt.Sprintf("cluster_health_%s.csv", date))
}

// Archive writes the dataset to its date-stamped archival file, creating the
// directory as needed, and returns the written path.
func (b *Builder) Archive(baseDir, date string) (string, error) {
	path := ArchivePath(baseDir, date)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("archive directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("archive file: %w", err)
	}
	if err := b.WriteCSV(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
