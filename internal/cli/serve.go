package cli

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/routing"
	"github.com/wayfindr/indoornav/pkg/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route guidance API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}

			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			engine, err := routing.Open(cfg.MapPath, cost.NewScorer(cfg.Scorer), cfg.Engine, log)
			if err != nil {
				return err
			}

			srv := server.NewServer(engine, cfg.MapPath, log)
			log.Info("serving route guidance API", zap.String("addr", cfg.ListenAddr))
			return http.ListenAndServe(cfg.ListenAddr, srv.Handler())
		},
	}
	cmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides config)")
	return cmd
}
