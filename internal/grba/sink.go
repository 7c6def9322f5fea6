package grba

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// sink consumes the tabulated rows of one run.
type sink interface {
	Write(rows []Row) error
	Close() error
	Files() []string
}

var csvHeader = []string{"table", "series", "x", "value", "kappa", "thetaV", "y", "sigma"}

func fmtReal(v Real) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// csvSink writes one <prefix>_<table>.csv per table.
type csvSink struct {
	dir    string
	prefix string
	files  []string
}

func newCSVSink(dir, prefix string) (*csvSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &csvSink{dir: dir, prefix: prefix}, nil
}

func (s *csvSink) Write(rows []Row) error {
	names, byTable := groupByTable(rows)
	for _, name := range names {
		path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.csv", s.prefix, name))
		if err := writeCSV(path, byTable[name]); err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
		s.files = append(s.files, path)
	}
	return nil
}

func (s *csvSink) Close() error    { return nil }
func (s *csvSink) Files() []string { return s.files }

func writeCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return err
	}
	for _, r := range rows {
		rec := []string{r.Table, r.Series, fmtReal(r.X), fmtReal(r.Value), fmtReal(r.Kappa), fmtReal(r.ThetaV), fmtReal(r.Y), fmtReal(r.Sigma)}
		if err := w.Write(rec); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
