// Package ingest parses CAN telemetry logs into raw samples for the
// pipeline. The core never reads files itself; this adapter is the
// ingestion collaborator for CSV-shaped logs.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// csvColumns is the canonical header of a CAN telemetry log. Matching is
// case-insensitive; extra columns are ignored.
var csvColumns = []string{"timestamp", "rpm", "tps", "map", "barometer", "lambda"}

// ReadCSV parses a telemetry log from r. A blank cell is an explicitly
// missing value, preserved as such so the normalizer can apply its
// drop/forward-fill policy. Row order is preserved.
func ReadCSV(r io.Reader) ([]model.RawSample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var samples []model.RawSample
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		s, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ReadFile parses the telemetry log at path.
func ReadFile(path string) ([]model.RawSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry log: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// mapColumns resolves each known column name to its index in the header.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(csvColumns))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range csvColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", want, ErrBadHeader)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int) (model.RawSample, error) {
	var s model.RawSample
	fields := []struct {
		name string
		dst  **float64
	}{
		{"timestamp", &s.Timestamp},
		{"rpm", &s.RPM},
		{"tps", &s.TPS},
		{"map", &s.MAP},
		{"barometer", &s.Barometer},
		{"lambda", &s.Lambda},
	}
	for _, f := range fields {
		idx := cols[f.name]
		if idx >= len(record) {
			continue // short row: treat the cell as missing
		}
		cell := strings.TrimSpace(record[idx])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return model.RawSample{}, fmt.Errorf("column %s: %w", f.name, err)
		}
		*f.dst = &v
	}
	return s, nil
}
