// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gnd fetches authority records from the lobid GND API and
// normalizes them into Records.
package gnd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/pdiddy/gnd-harvest/internal/httputil"
	"github.com/pdiddy/gnd-harvest/pkg/types"
)

// DefaultURLTemplate is the lobid GND record endpoint. "{}" is replaced
// by the identifier.
const DefaultURLTemplate = "https://lobid.org/gnd/{}.json"

// urlSlot marks where the identifier goes in a URL template.
const urlSlot = "{}"

// sleep pauses between fetches. Tests replace it to record delays
// without waiting.
var sleep = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Failure records why one identifier produced no record.
type Failure struct {
	ID     string
	Reason string
}

// BatchResult holds the outcome of a fetch run.
type BatchResult struct {
	Fetched  int
	Failed   int
	Failures []Failure
	Records  []types.Record
}

// FailedIDs returns the identifiers that produced no record, in fetch order.
func (r BatchResult) FailedIDs() []string {
	ids := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		ids[i] = f.ID
	}
	return ids
}

// Total returns the number of identifiers attempted.
func (r BatchResult) Total() int {
	return r.Fetched + r.Failed
}

// HasFailures reports whether any identifier failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// RecordURL substitutes id into the first "{}" of template.
func RecordURL(template, id string) string {
	return strings.Replace(template, urlSlot, id, 1)
}

// FetchRecord retrieves and normalizes the record for a single identifier.
func FetchRecord(ctx context.Context, client *http.Client, id string, cfg types.FetchConfig) (types.Record, error) {
	tmpl := cfg.URLTemplate
	if tmpl == "" {
		tmpl = DefaultURLTemplate
	}

	var payload map[string]types.Field
	if err := httputil.GetJSON(ctx, client, RecordURL(tmpl, id), cfg.UserAgent, &payload); err != nil {
		return types.Record{}, err
	}
	if payload == nil {
		return types.Record{}, fmt.Errorf("response for %s is not a JSON object", id)
	}
	return NormalizeRecord(payload), nil
}

// FetchBatch fetches identifiers strictly in order, one request at a
// time. A progress line is written to w before each request; on a
// terminal it is overwritten in place. A failed identifier is reported
// to w and skipped, and the batch continues. The configured delay is
// applied after each successful fetch only.
//
// FetchBatch stops early if ctx is cancelled; records fetched so far are
// returned.
func FetchBatch(ctx context.Context, client *http.Client, ids []string, cfg types.FetchConfig, w io.Writer) BatchResult {
	result := BatchResult{Records: []types.Record{}}
	eol := progressTerminator(w)

	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(w, "[%d/%d] Fetching %s...%s", i+1, len(ids), id, eol)

		rec, err := FetchRecord(ctx, client, id, cfg)
		if err != nil {
			fmt.Fprintf(w, "Error fetching %s: %v\n", id, err)
			result.Failed++
			result.Failures = append(result.Failures, Failure{ID: id, Reason: err.Error()})
			continue
		}
		result.Records = append(result.Records, rec)
		result.Fetched++

		if err := sleep(ctx, cfg.Delay); err != nil {
			break
		}
	}
	if eol == "\r" && len(ids) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Fetch summary: %d fetched, %d failed (total: %d)\n",
		result.Fetched, result.Failed, result.Total())
	return result
}

// progressTerminator ends progress lines with a carriage return when w is
// a terminal so each line replaces the previous one.
func progressTerminator(w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok {
		return "\n"
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "\r"
	}
	return "\n"
}
