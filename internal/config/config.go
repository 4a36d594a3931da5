// Package config loads the engine's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/routing"
)

// Config is the full process configuration: where the building map
// lives, how to weigh routes, and where to serve.
type Config struct {
	ListenAddr string          `yaml:"listen_addr"`
	MapPath    string          `yaml:"map_path"`
	Scorer     cost.Params     `yaml:"scorer"`
	Engine     routing.Options `yaml:"engine"`
}

// Default returns the configuration used when no file is given,
// mirroring the original deployment constants.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		MapPath:    "data/building.yaml",
		Scorer:     cost.DefaultParams(),
		Engine:     routing.DefaultOptions(),
	}
}

// Load reads a YAML config file over the defaults. Missing fields keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MapPath == "" {
		return cfg, fmt.Errorf("config: map_path is required")
	}
	return cfg, nil
}
