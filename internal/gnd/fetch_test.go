// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gnd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/gnd-harvest/pkg/types"
)

const sampleGoethe = `{
  "gndIdentifier": "118540238",
  "preferredName": "Goethe, Johann Wolfgang von",
  "variantName": ["Goethe, J. W.", "Gête, Iogann Vol'fgang"],
  "dateOfBirth": ["1749-08-28"],
  "dateOfDeath": ["1832-03-22"],
  "professionOrOccupation": [
    {"id": "https://d-nb.info/gnd/4053309-8", "label": "Schriftsteller"},
    {"id": "https://d-nb.info/gnd/4129546-8", "label": "Dichter"}
  ],
  "placeOfBirth": [{"id": "https://d-nb.info/gnd/4018118-2", "label": "Frankfurt am Main"}]
}`

const sampleDoe = `{"gndIdentifier":"123","preferredName":"Doe, Jane","variantName":[{"label":"J. Doe"}],"dateOfBirth":"1900","professionOrOccupation":["Writer"]}`

// recordingSleep replaces the package sleep and returns the delays it saw.
func recordingSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var calls []time.Duration
	orig := sleep
	sleep = func(_ context.Context, d time.Duration) error {
		calls = append(calls, d)
		return nil
	}
	t.Cleanup(func() { sleep = orig })
	return &calls
}

// newLobidServer serves /gnd/<id>.json from bodies; unknown ids get 404.
func newLobidServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/gnd/"), ".json")
		body, ok := bodies[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(tsURL string) types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "gnd-harvest-test/0.1",
		},
		URLTemplate: tsURL + "/gnd/{}.json",
		Delay:       200 * time.Millisecond,
	}
}

func TestRecordURL(t *testing.T) {
	assert.Equal(t, "https://lobid.org/gnd/118540238.json", RecordURL(DefaultURLTemplate, "118540238"))
	assert.Equal(t, "http://x/a/{}", RecordURL("http://x/{}/{}", "a"), "only the first slot is filled")
	assert.Equal(t, "http://x/static", RecordURL("http://x/static", "a"))
}

func TestNormalizeRecord(t *testing.T) {
	var payload map[string]types.Field
	require.NoError(t, json.Unmarshal([]byte(sampleGoethe), &payload))

	rec := NormalizeRecord(payload)
	assert.Equal(t, "118540238", rec.GNDID.String())
	assert.Equal(t, "Goethe, Johann Wolfgang von", rec.PreferredName.String())
	assert.Equal(t, []string{"Goethe, J. W.", "Gête, Iogann Vol'fgang"}, rec.VariantNames)
	assert.Equal(t, types.FieldList, rec.DateOfBirth.Kind(), "dates are copied verbatim")
	assert.Equal(t, []string{"Schriftsteller", "Dichter"}, rec.Professions)
	assert.Equal(t, []string{"Frankfurt am Main"}, rec.PlacesOfBirth)
}

func TestNormalizeRecord_EmptyAndAbsentFields(t *testing.T) {
	var payload map[string]types.Field
	require.NoError(t, json.Unmarshal([]byte(`{"gndIdentifier": "1", "variantName": [], "placeOfBirth": null}`), &payload))

	rec := NormalizeRecord(payload)
	assert.Equal(t, "1", rec.GNDID.String())
	assert.True(t, rec.PreferredName.IsAbsent())
	assert.True(t, rec.DateOfBirth.IsAbsent())
	assert.Equal(t, []string{}, rec.VariantNames)
	assert.Equal(t, []string{}, rec.Professions)
	assert.Equal(t, []string{}, rec.PlacesOfBirth)
}

func TestFetchRecord(t *testing.T) {
	ts := newLobidServer(t, map[string]string{"123": sampleDoe})

	rec, err := FetchRecord(context.Background(), ts.Client(), "123", testConfig(ts.URL))
	require.NoError(t, err)
	assert.Equal(t, "123", rec.GNDID.String())
	assert.Equal(t, []string{"J. Doe"}, rec.VariantNames)
	assert.Equal(t, []string{"Writer"}, rec.Professions)
	assert.Equal(t, "1900", rec.DateOfBirth.String())
}

func TestFetchRecord_NormalizedIdentifier(t *testing.T) {
	ts := newLobidServer(t, map[string]string{"old": `{"gndIdentifier": "new"}`})

	rec, err := FetchRecord(context.Background(), ts.Client(), "old", testConfig(ts.URL))
	require.NoError(t, err)
	assert.Equal(t, "new", rec.GNDID.String())
}

func TestFetchRecord_Errors(t *testing.T) {
	ts := newLobidServer(t, map[string]string{
		"bad":   `{"gndIdentifier": `,
		"null":  `null`,
		"array": `[1, 2]`,
	})
	for _, id := range []string{"missing", "bad", "null", "array"} {
		t.Run(id, func(t *testing.T) {
			_, err := FetchRecord(context.Background(), ts.Client(), id, testConfig(ts.URL))
			assert.Error(t, err)
		})
	}
}

func TestFetchBatch_OrderAndDelay(t *testing.T) {
	delays := recordingSleep(t)
	ts := newLobidServer(t, map[string]string{
		"1": `{"gndIdentifier": "1"}`,
		"2": `{"gndIdentifier": "2"}`,
		"3": `{"gndIdentifier": "3"}`,
	})

	var buf bytes.Buffer
	result := FetchBatch(context.Background(), ts.Client(), []string{"1", "2", "3"}, testConfig(ts.URL), &buf)

	require.Len(t, result.Records, 3)
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, result.Records[i].GNDID.String())
	}
	assert.Equal(t, 3, result.Fetched)
	assert.False(t, result.HasFailures())
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 200 * time.Millisecond, 200 * time.Millisecond}, *delays)

	out := buf.String()
	assert.Contains(t, out, "[1/3] Fetching 1...\n")
	assert.Contains(t, out, "[3/3] Fetching 3...\n")
	assert.Contains(t, out, "Fetch summary: 3 fetched, 0 failed (total: 3)")
}

func TestFetchBatch_FailuresAreSkipped(t *testing.T) {
	delays := recordingSleep(t)
	ts := newLobidServer(t, map[string]string{
		"1": `{"gndIdentifier": "1", "professionOrOccupation": []}`,
		"3": `{"gndIdentifier": "3"}`,
	})

	var buf bytes.Buffer
	result := FetchBatch(context.Background(), ts.Client(), []string{"1", "2", "3"}, testConfig(ts.URL), &buf)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "1", result.Records[0].GNDID.String())
	assert.Equal(t, []string{}, result.Records[0].Professions)
	assert.Equal(t, "3", result.Records[1].GNDID.String())
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"2"}, result.FailedIDs())
	assert.Contains(t, result.Failures[0].Reason, "HTTP 404")
	assert.Len(t, *delays, 2, "no delay after a failed fetch")
	assert.Contains(t, buf.String(), "Error fetching 2: HTTP 404")
}

// failingTransport fails every request for the listed identifiers.
type failingTransport struct {
	fail map[string]bool
	next http.RoundTripper
}

func (ft failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for id := range ft.fail {
		if strings.Contains(req.URL.Path, "/"+id+".json") {
			return nil, errors.New("connection reset by peer")
		}
	}
	return ft.next.RoundTrip(req)
}

func TestFetchBatch_FailingTransport(t *testing.T) {
	recordingSleep(t)
	ts := newLobidServer(t, map[string]string{
		"a": `{"gndIdentifier": "a"}`,
		"b": `{"gndIdentifier": "b"}`,
		"c": `{"gndIdentifier": "c"}`,
	})
	client := &http.Client{Transport: failingTransport{
		fail: map[string]bool{"b": true},
		next: ts.Client().Transport,
	}}

	var buf bytes.Buffer
	result := FetchBatch(context.Background(), client, []string{"a", "b", "c"}, testConfig(ts.URL), &buf)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "a", result.Records[0].GNDID.String())
	assert.Equal(t, "c", result.Records[1].GNDID.String())
	assert.Contains(t, buf.String(), "Error fetching b:")
	assert.Contains(t, buf.String(), "connection reset by peer")
}

func TestFetchBatch_Empty(t *testing.T) {
	var buf bytes.Buffer
	result := FetchBatch(context.Background(), http.DefaultClient, nil, types.FetchConfig{}, &buf)

	assert.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
	assert.Equal(t, 0, result.Total())
}

func TestFetchBatch_StopsWhenCancelled(t *testing.T) {
	ts := newLobidServer(t, map[string]string{
		"1": `{"gndIdentifier": "1"}`,
		"2": `{"gndIdentifier": "2"}`,
	})
	ctx, cancel := context.WithCancel(context.Background())

	orig := sleep
	sleep = func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}
	t.Cleanup(func() { sleep = orig })

	var buf bytes.Buffer
	result := FetchBatch(ctx, ts.Client(), []string{"1", "2"}, testConfig(ts.URL), &buf)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "1", result.Records[0].GNDID.String())
	assert.NotContains(t, buf.String(), "Fetching 2")
}

func TestProgressTerminator(t *testing.T) {
	assert.Equal(t, "\n", progressTerminator(&bytes.Buffer{}))
}
