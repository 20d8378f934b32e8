package main

import (
	"net/http"

	"github.com/spf13/cobra"

	httpadapter "github.com/pedarprobe/pedarprobe/internal/adapters/http"
	"github.com/pedarprobe/pedarprobe/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Aggregate the experiment and serve results over HTTP",
	Long: `Serve loads the experiment, computes peak pressure and pressure-time
integral for every node, and exposes the aggregated tree as a read-only JSON
API together with Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set := metrics.New()
		session, cfg, err := loadSession(cmd.Context(), cmd, set)
		if err != nil {
			return err
		}
		if err := session.Peak(); err != nil {
			return err
		}
		if err := session.PTI(); err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr
		}
		logger := newLogger(cmd)
		logger.Info("serving results", "addr", addr)
		return http.ListenAndServe(addr, httpadapter.NewHandler(session, set.Handler()))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}
