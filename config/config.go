package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level run configuration.
type Config struct {
	Scenario ScenarioConfig `json:"scenario"`
	Paths    PathsConfig    `json:"paths"`
}

// PathsConfig locates the input datasets and the output file. File formats
// are inferred from extensions: ".nc" selects NetCDF, anything else CSV.
type PathsConfig struct {
	// Baseline is the hourly baseline load curve file.
	Baseline string `json:"baseline"`
	// BaselineVar is the NetCDF variable holding the curve.
	BaselineVar string `json:"baselineVar"`
	// Survey is the travel survey table CSV.
	Survey string `json:"survey"`
	// Output receives the computed charging-load curve.
	Output string `json:"output"`
	// OutputVar is the NetCDF variable name written to Output.
	OutputVar string `json:"outputVar"`
}

// SetDefaults applies sane defaults.
func (c *PathsConfig) SetDefaults() {
	if c.BaselineVar == "" {
		c.BaselineVar = "load_demand"
	}
	if c.OutputVar == "" {
		c.OutputVar = "charging_load"
	}
	if c.Output == "" {
		c.Output = "charging_load.csv"
	}
}

// Validate checks mandatory fields.
func (c PathsConfig) Validate() error {
	if c.Survey == "" {
		return fmt.Errorf("paths.survey is required")
	}
	return nil
}

// Load reads configuration from a YAML or JSON file with optional EVD_
// environment overrides (EVD_SCENARIO__MODEL_YEAR and so on).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("EVD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "evd_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Scenario.SetDefaults()
	cfg.Paths.SetDefaults()
	if err := cfg.Scenario.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Paths.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
