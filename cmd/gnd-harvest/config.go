package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/gnd-harvest/internal/authors"
	"github.com/pdiddy/gnd-harvest/internal/gnd"
	"github.com/pdiddy/gnd-harvest/pkg/types"
)

const (
	defaultAuthorsCSV  = "persistent_authors_gnd.csv"
	defaultIDsFile     = "gnd_ids.txt"
	defaultJSONFile    = "gnd_dump.json"
	defaultURLTemplate = gnd.DefaultURLTemplate
	defaultDelay       = 200 * time.Millisecond
	defaultUserAgent   = "gnd-harvest/0.1"
)

var defaultColumns = authors.DefaultColumns

// configKeys are the flags that can also be set from the config file or
// GND_HARVEST_* environment variables.
var configKeys = []string{
	"authors", "columns", "ids", "json", "url",
	"delay", "timeout", "user-agent", "db", "summary",
}

// loadConfig collects flag, environment, and config file settings.
func loadConfig() types.HarvestConfig {
	return types.HarvestConfig{
		Extraction: types.ExtractionConfig{
			AuthorsCSV: viper.GetString("authors"),
			Columns:    splitColumns(viper.GetStringSlice("columns")),
			IDsFile:    viper.GetString("ids"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("timeout"),
				UserAgent: viper.GetString("user-agent"),
			},
			URLTemplate: viper.GetString("url"),
			Delay:       viper.GetDuration("delay"),
		},
		Output: types.OutputConfig{
			JSONFile:    viper.GetString("json"),
			DBFile:      viper.GetString("db"),
			SummaryFile: viper.GetString("summary"),
		},
	}
}

// splitColumns accepts both list values and comma-separated strings, as
// environment variables and scalar config entries arrive unsplit.
func splitColumns(values []string) []string {
	cols := make([]string, 0, len(values))
	for _, v := range values {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
	}
	return cols
}
