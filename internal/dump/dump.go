// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dump writes fetched authority records as a JSON array, a
// flattened CSV table, and an optional YAML run summary.
package dump

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gnd-harvest/pkg/types"
)

// CSVFile is where WriteCSV writes, whatever path it is given.
var CSVFile = "gnd_dump.csv"

// csvHeader lists the flattened columns in output order.
var csvHeader = []string{
	"id",
	"preferred_name",
	"variant_names",
	"date_of_birth",
	"date_of_death",
	"professions",
	"places_of_birth",
}

// WriteJSON writes records to path as a two-space indented JSON array.
// Non-ASCII and HTML characters are written literally.
func WriteJSON(records []types.Record, path string) error {
	if records == nil {
		records = []types.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}

	if err := os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("writing JSON dump: %w", err)
	}
	return nil
}

// WriteCSV writes one flattened row per record under a fixed header.
//
// The path argument is not used: the table always goes to CSVFile.
func WriteCSV(records []types.Record, path string) error {
	_ = path

	f, err := os.Create(CSVFile)
	if err != nil {
		return fmt.Errorf("creating CSV dump: %w", err)
	}

	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.GNDID.String(),
			rec.PreferredName.String(),
			nameVariants(rec),
			ListToString(rec.DateOfBirth),
			ListToString(rec.DateOfDeath),
			JoinNonEmpty(rec.Professions),
			JoinNonEmpty(rec.PlacesOfBirth),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing CSV dump: %w", err)
	}
	return f.Close()
}

// Summary describes one harvest run.
type Summary struct {
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	Requested  int       `yaml:"requested"`
	Fetched    int       `yaml:"fetched"`
	Failed     int       `yaml:"failed"`
	FailedIDs  []string  `yaml:"failed_ids,omitempty"`
	Outputs    []string  `yaml:"outputs"`
}

// WriteSummary writes s to path as YAML.
func WriteSummary(s Summary, path string) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
