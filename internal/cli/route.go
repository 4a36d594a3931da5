package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/guidance"
	"github.com/wayfindr/indoornav/pkg/routing"
)

func newRouteCommand(opts *rootOptions) *cobra.Command {
	var stepFree bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "route <origin> <destination>",
		Short: "Compute a route between two locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			scorer := cost.NewScorer(cfg.Scorer)
			engine, err := routing.Open(cfg.MapPath, scorer, cfg.Engine, nil)
			if err != nil {
				return err
			}

			mode := cost.ModeStandard
			if stepFree {
				mode = cost.ModeStepFree
			}
			rt, err := engine.Route(args[0], args[1], mode)
			if err != nil {
				return err
			}

			gen := guidance.NewGenerator(engine.Registry(), scorer)
			gen.TurnPenalty = cfg.Engine.TurnPenalty
			instructions, err := gen.Generate(rt)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Route        routing.Route          `json:"route"`
					Instructions []guidance.Instruction `json:"instructions"`
				}{rt, instructions})
			}
			fmt.Fprint(cmd.OutOrStdout(), gen.Summary(rt, instructions))
			return nil
		},
	}
	cmd.Flags().BoolVar(&stepFree, "step-free", false, "require a step-free route")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the route as JSON")
	return cmd
}
