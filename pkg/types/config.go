package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "gnd-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExtractionConfig holds settings for the identifier extraction stage.
type ExtractionConfig struct {
	// AuthorsCSV is the author table to read identifiers from.
	AuthorsCSV string `json:"authors_csv" yaml:"authors_csv"`

	// Columns names the CSV columns holding GND identifiers
	// (default gnd_id, gnd_id_2).
	Columns []string `json:"columns" yaml:"columns"`

	// IDsFile receives the sorted identifier list, one per line.
	IDsFile string `json:"ids_file" yaml:"ids_file"`
}

// FetchConfig holds settings for the authority fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// URLTemplate is the record URL with a single "{}" slot for the identifier.
	URLTemplate string `json:"url_template" yaml:"url_template"`

	// Delay is the pause after each successful fetch (default 200ms).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// OutputConfig holds the destinations for fetched records.
type OutputConfig struct {
	// JSONFile receives the pretty-printed record array.
	JSONFile string `json:"json_file" yaml:"json_file"`

	// DBFile, when set, receives a SQLite copy of the records.
	DBFile string `json:"db_file,omitempty" yaml:"db_file,omitempty"`

	// SummaryFile, when set, receives a YAML run summary.
	SummaryFile string `json:"summary_file,omitempty" yaml:"summary_file,omitempty"`
}

// HarvestConfig groups all stage configurations for one run.
type HarvestConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}
