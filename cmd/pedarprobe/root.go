package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedarprobe/pedarprobe"
	"github.com/pedarprobe/pedarprobe/internal/config"
	"github.com/pedarprobe/pedarprobe/internal/logging"
	"github.com/pedarprobe/pedarprobe/internal/metrics"
	"github.com/pedarprobe/pedarprobe/pkg/parse"
	"github.com/pedarprobe/pedarprobe/internal/presentation"
)

var rootCmd = &cobra.Command{
	Use:   "pedarprobe",
	Short: "pedarprobe analyses pedar plantar-pressure experiments",
	Long: `pedarprobe ingests pedar plantar-pressure recordings guided by the experiment
spreadsheet, organizes them into a subject/condition/trial/foot/stance tree,
and computes per-sensor aggregate statistics bottom-up through that tree.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "run.yaml", "Run configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// loadSession builds the pipeline from the run configuration and drains the
// source into a fresh data tree.
func loadSession(ctx context.Context, cmd *cobra.Command, set *metrics.Set) (*pedarprobe.Session, config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, cfg, err
	}

	logger := newLogger(cmd)
	bar := presentation.NewProgressBar()
	src := parse.NewSource(parse.Options{
		GuidePath:   cfg.Guide,
		Conditions:  cfg.Conditions,
		MaxReadRate: cfg.MaxReadRate,
		Progress:    bar.Update,
		Logger:      logger,
	})

	opts := []pedarprobe.Option{pedarprobe.WithLogger(logger)}
	if set != nil {
		opts = append(opts, pedarprobe.WithMetrics(set))
	}
	session, err := pedarprobe.New(src, opts...)
	if err != nil {
		return nil, cfg, err
	}
	if err := session.Load(ctx); err != nil {
		return nil, cfg, err
	}
	return session, cfg, nil
}
