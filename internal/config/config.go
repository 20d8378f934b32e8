// Package config loads the run configuration for the pedarprobe CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one analysis run.
type Config struct {
	// Guide is the path of the guiding spreadsheet; .asc trials live in
	// per-subject folders next to it.
	Guide string `yaml:"guide"`

	// Conditions is the experiment's condition list, used to validate the
	// guide entries.
	Conditions []string `yaml:"conditions"`

	// Output is the folder for exported spreadsheets and heatmaps.
	Output string `yaml:"output"`

	// Mask is the left-foot mask PNG used for heatmap rendering.
	Mask string `yaml:"mask"`

	// MaxReadRate caps the fraction of guide entries to load (dev knob,
	// 0 < rate <= 1; defaults to 1).
	MaxReadRate float64 `yaml:"max_read_rate"`

	// Addr is the listen address of the results server.
	Addr string `yaml:"addr"`
}

// Defaults returns the configuration used when a field is left unset.
func Defaults() Config {
	return Config{
		Output:      "output",
		Mask:        "data/left_foot_mask.png",
		MaxReadRate: 1.0,
		Addr:        ":8080",
	}
}

// Load reads a YAML config file and applies defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Guide == "" {
		return fmt.Errorf("config: guide path is required")
	}
	if len(c.Conditions) == 0 {
		return fmt.Errorf("config: condition list is required")
	}
	if c.MaxReadRate <= 0 || c.MaxReadRate > 1 {
		return fmt.Errorf("config: max_read_rate must be in (0, 1], got %v", c.MaxReadRate)
	}
	return nil
}
