package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Report collects the aggregated results of every source in one stats run.
type Report struct {
	Sources []SourceReport `yaml:"sources" msgpack:"sources"`
}

// SourceReport holds one source's results keyed by operation name.
type SourceReport struct {
	Label string              `yaml:"label" msgpack:"label"`
	Path  string              `yaml:"path" msgpack:"path"`
	Ops   map[string][]Result `yaml:"ops" msgpack:"ops"`
}

// NewSourceReport converts AggregateAll output into a SourceReport.
func NewSourceReport(label, path string, results map[Op][]Result) SourceReport {
	ops := make(map[string][]Result, len(results))
	for op, rs := range results {
		ops[op.String()] = rs
	}
	return SourceReport{Label: label, Path: path, Ops: ops}
}

// CSV column headers for the csv report format.
var reportColumns = []string{"source", "op", "threads", "avg", "var", "min", "max"}

// WriteReport writes r to path. The format follows the extension:
// .yaml/.yml, .msgpack or .csv.
func WriteReport(path string, r *Report) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	case ".msgpack":
		data, err = msgpack.Marshal(r)
	case ".csv":
		return writeReportCSV(path, r)
	default:
		return fmt.Errorf("unsupported report format %q; valid: .yaml, .yml, .msgpack, .csv", ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func writeReportCSV(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(reportColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, src := range r.Sources {
		for _, op := range Ops {
			for _, res := range src.Ops[op.String()] {
				row := []string{
					src.Label,
					op.String(),
					strconv.Itoa(res.Threads),
					strconv.FormatFloat(res.Avg, 'g', -1, 64),
					strconv.FormatFloat(res.Var, 'g', -1, 64),
					strconv.FormatFloat(res.Min, 'g', -1, 64),
					strconv.FormatFloat(res.Max, 'g', -1, 64),
				}
				if err := w.Write(row); err != nil {
					return fmt.Errorf("writing CSV row: %w", err)
				}
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return file.Close()
}
