// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors extracts GND identifiers from an author table and
// reads and writes the flat identifier list.
package authors

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// DefaultColumns are the author table columns that carry GND identifiers.
var DefaultColumns = []string{"gnd_id", "gnd_id_2"}

const utf8BOM = "\ufeff"

// ExtractIDs reads the CSV at path and returns the sorted, deduplicated,
// trimmed non-empty values found in the named columns across all rows.
// Rows that are too short to contain a column, or that hold only
// whitespace in it, contribute nothing for that column. A missing column
// in the header is not an error, and stray quotes inside unquoted fields
// are read literally.
func ExtractIDs(path string, columns []string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening author table: %w", err)
	}
	defer f.Close()

	ids, err := extract(f, columns)
	if err != nil {
		return nil, fmt.Errorf("reading author table %s: %w", path, err)
	}
	return ids, nil
}

func extract(r io.Reader, columns []string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	// Index columns by name; the last occurrence wins on duplicates.
	positions := make([]int, 0, len(columns))
	for _, col := range columns {
		for i := len(header) - 1; i >= 0; i-- {
			if header[i] == col {
				positions = append(positions, i)
				break
			}
		}
	}

	unique := make(map[string]struct{})
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, pos := range positions {
			if pos >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[pos]); v != "" {
				unique[v] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// WriteIDs writes ids to path joined by newlines, without a trailing newline.
func WriteIDs(ids []string, path string) error {
	if err := os.WriteFile(path, []byte(strings.Join(ids, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing identifier list: %w", err)
	}
	return nil
}

// ReadIDs reads an identifier list written by WriteIDs. Blank lines are
// skipped and surrounding whitespace is trimmed; order is preserved.
func ReadIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening identifier list: %w", err)
	}
	defer f.Close()

	ids := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier list %s: %w", path, err)
	}
	return ids, nil
}
