// Package cli wires the navigator commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfindr/indoornav/internal/config"
)

type rootOptions struct {
	configPath string
	mapPath    string
}

func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "navigator",
		Short:         "Indoor route guidance engine",
		Long:          "navigator computes accessible indoor routes with turn-by-turn instructions over a building map.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config file")
	root.PersistentFlags().StringVarP(&opts.mapPath, "map", "m", "", "path to the building map file (overrides config)")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newRouteCommand(opts))
	root.AddCommand(newLocationsCommand(opts))
	return root
}

func (o *rootOptions) load() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if o.mapPath != "" {
		cfg.MapPath = o.mapPath
	}
	if cfg.MapPath == "" {
		return cfg, fmt.Errorf("no building map configured; pass --map or set map_path")
	}
	return cfg, nil
}
