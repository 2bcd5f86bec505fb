// Package config holds the enrichment settings that used to be hardcoded:
// the reconciliation threshold, search shape, pacing, and the note-template
// parameters. Defaults reproduce the historical rendered note text exactly.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the enrich pipeline configuration. Loadable from a YAML file;
// zero/empty fields fall back to the defaults.
type Config struct {
	// Threshold is the fuzzy-tier similarity ratio a candidate title must
	// exceed, together with an author match, to be auto-accepted.
	Threshold float64 `yaml:"threshold"`

	// Candidates is how many ranked search results to request. 1 reproduces
	// the first-result-only flow; larger values feed interactive review.
	Candidates int `yaml:"candidates"`

	// Language restricts search results (Google langRestrict code).
	Language string `yaml:"language"`

	// RequestDelaySeconds is the minimum pause between API calls.
	RequestDelaySeconds float64 `yaml:"request_delay_seconds"`

	// TimeoutSeconds bounds a single search request.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	// Github and BaseURL fill the "github.com/<github>/<base_url>" link in
	// the note templates. The defaults are the literal token strings the
	// notes have always rendered with.
	Github  string `yaml:"github"`
	BaseURL string `yaml:"base_url"`

	// VolumeID is the Google Books volume id in the attribution link.
	VolumeID string `yaml:"volume_id"`

	// Zotero switches checkpoint output to the Zotero interchange form
	// (UTF-8 BOM, all fields quoted, \n line endings).
	Zotero bool `yaml:"zotero"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threshold:           0.9,
		Candidates:          3,
		Language:            "en",
		RequestDelaySeconds: 1,
		TimeoutSeconds:      10,
		Github:              "{{github}}",
		BaseURL:             "{{BASE_URL}}",
		VolumeID:            "JK8VXK7QMNAC",
	}
}

// Load reads a YAML config file and overlays it on the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// RequestDelay returns the inter-call delay as a duration.
func (c Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySeconds * float64(time.Second))
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}
