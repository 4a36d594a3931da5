package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfindr/indoornav/pkg/graph"
	"github.com/wayfindr/indoornav/pkg/registry"
)

func newLocationsCommand(opts *rootOptions) *cobra.Command {
	var floor int

	cmd := &cobra.Command{
		Use:   "locations [query]",
		Short: "List or search the building's locations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			m, err := graph.ReadMapFile(cfg.MapPath)
			if err != nil {
				return err
			}
			reg, err := m.Registry()
			if err != nil {
				return err
			}

			var locations []registry.Location
			switch {
			case len(args) == 1:
				locations = reg.Search(args[0])
			case floor >= 0:
				locations = reg.OnFloor(floor)
			default:
				locations = reg.All()
			}

			for _, loc := range locations {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s floor=%d type=%-12s %s\n", loc.ID, loc.Floor, loc.Type, loc.Description)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&floor, "floor", -1, "only list locations on this floor")
	return cmd
}
