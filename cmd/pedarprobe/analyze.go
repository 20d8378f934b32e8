package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pedarprobe/pedarprobe"
	"github.com/pedarprobe/pedarprobe/internal/config"
	"github.com/pedarprobe/pedarprobe/internal/export"
	"github.com/pedarprobe/pedarprobe/pkg/analyse"
	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Load the experiment and export aggregated statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cfg, err := loadSession(cmd.Context(), cmd, nil)
		if err != nil {
			return err
		}
		return runStats(cmd, session, cfg)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addStatFlags(analyzeCmd)
}

func addStatFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("stat", []string{"peak"}, "Statistics to compute: peak, pti")
	cmd.Flags().String("export-level", domain.RootLevel, "Level whose nodes are exported")
	cmd.Flags().String("suffix", "", "Suffix appended to export file names")
	cmd.Flags().Bool("heatmap", false, "Also render a foot heatmap of the root node")
}

// runStats aggregates the requested statistics and writes one workbook (and
// optionally one heatmap) per statistic.
func runStats(cmd *cobra.Command, session *pedarprobe.Session, cfg config.Config) error {
	stats, _ := cmd.Flags().GetStringSlice("stat")
	level, _ := cmd.Flags().GetString("export-level")
	suffix, _ := cmd.Flags().GetString("suffix")
	heatmap, _ := cmd.Flags().GetBool("heatmap")

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return err
	}

	for _, stat := range stats {
		var name string
		var err error
		switch stat {
		case "peak":
			name, err = analyse.StatPeak, session.Peak()
		case "pti":
			name, err = analyse.StatPTI, session.PTI()
		default:
			return fmt.Errorf("unknown statistic %q (want peak or pti)", stat)
		}
		if err != nil {
			return err
		}

		out := filepath.Join(cfg.Output, name+suffix+".xlsx")
		if err := export.WriteStat(out, session.Root(), session.Levels(), level, name); err != nil {
			return err
		}
		cmd.Printf("exported %s\n", out)

		if heatmap {
			if err := renderHeatmap(cmd, session, cfg, name, suffix); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderHeatmap(cmd *cobra.Command, session *pedarprobe.Session, cfg config.Config, stat, suffix string) error {
	mask, err := export.LoadMask(cfg.Mask)
	if err != nil {
		return err
	}
	values, ok := session.Root().Computed(stat)
	if !ok {
		return fmt.Errorf("statistic %q has not been computed", stat)
	}
	out := filepath.Join(cfg.Output, "foot_heatmap_"+stat+suffix+".png")
	if err := export.NewHeatmap(mask, values).WriteFile(out, 0, 0); err != nil {
		return err
	}
	cmd.Printf("exported %s\n", out)
	return nil
}
