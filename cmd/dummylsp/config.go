package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is the optional on-disk configuration for dummylsp, loaded
// from lsprpc.yaml if present. This mirrors the pack's own CLIs
// (richard-senior-mcp, yunhoi129-moai-adk) loading a small YAML file
// for toggles rather than wiring a full config framework for a handful
// of booleans.
type config struct {
	// Metrics enables the Prometheus dispatch middleware.
	Metrics bool `yaml:"metrics"`

	// Verbose enables the logging middleware.
	Verbose bool `yaml:"verbose"`

	// MirrorAddr, if set, starts a wsmirror diagnostic relay listening
	// on this address (e.g. ":7777").
	MirrorAddr string `yaml:"mirrorAddr"`
}

// loadConfig reads path if it exists; a missing file yields the zero
// config rather than an error, since dummylsp is meant to run with no
// setup at all.
func loadConfig(path string) (config, error) {
	var cfg config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
