package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/gnd-harvest/internal/authors"
	"github.com/pdiddy/gnd-harvest/internal/dump"
	"github.com/pdiddy/gnd-harvest/internal/gnd"
	"github.com/pdiddy/gnd-harvest/internal/store"
	"github.com/pdiddy/gnd-harvest/pkg/types"
)

// runHarvest performs the whole pipeline. Only an unreadable author table
// or an unwritable output aborts the run; per-identifier fetch failures are
// reported and skipped.
func runHarvest(ctx context.Context, cfg types.HarvestConfig, w io.Writer) error {
	ids, err := extractIDs(cfg.Extraction, w)
	if err != nil {
		return err
	}
	return fetchAndWrite(ctx, ids, cfg, w)
}

func extractIDs(cfg types.ExtractionConfig, w io.Writer) ([]string, error) {
	ids, err := authors.ExtractIDs(cfg.AuthorsCSV, cfg.Columns)
	if err != nil {
		return nil, err
	}
	if err := authors.WriteIDs(ids, cfg.IDsFile); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Extracted %d GND identifier(s) to %s\n", len(ids), cfg.IDsFile)
	return ids, nil
}

func fetchAndWrite(ctx context.Context, ids []string, cfg types.HarvestConfig, w io.Writer) error {
	started := time.Now()

	client := &http.Client{
		Timeout: cfg.Fetch.Timeout,
	}
	result := gnd.FetchBatch(ctx, client, ids, cfg.Fetch, w)

	if err := dump.WriteJSON(result.Records, cfg.Output.JSONFile); err != nil {
		return err
	}
	if err := dump.WriteCSV(result.Records, dump.CSVFile); err != nil {
		return err
	}
	outputs := []string{cfg.Output.JSONFile, dump.CSVFile}

	if cfg.Output.DBFile != "" {
		if err := mirrorToDB(ctx, result.Records, cfg.Output.DBFile); err != nil {
			return err
		}
		outputs = append(outputs, cfg.Output.DBFile)
	}

	if cfg.Output.SummaryFile != "" {
		s := dump.Summary{
			StartedAt:  started.UTC(),
			FinishedAt: time.Now().UTC(),
			Requested:  len(ids),
			Fetched:    result.Fetched,
			Failed:     result.Failed,
			FailedIDs:  result.FailedIDs(),
			Outputs:    outputs,
		}
		if err := dump.WriteSummary(s, cfg.Output.SummaryFile); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		fmt.Fprintln(w, renderFailures(result.Failures))
	}
	fmt.Fprintln(w, "done")
	return ctx.Err()
}

func mirrorToDB(ctx context.Context, records []types.Record, path string) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Replace(ctx, records); err != nil {
		return fmt.Errorf("mirroring records to %s: %w", path, err)
	}
	return nil
}
