package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pedarprobe/pedarprobe/internal/motion"
)

var motionCmd = &cobra.Command{
	Use:   "motion [files...]",
	Short: "Convert Vicon motion-capture exports to spreadsheets",
	Long: `Motion reads Vicon CSV exports, splits the joint and model-output series
per gait cycle, resamples them onto a common point count, and writes one
workbook per input file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, _ := cmd.Flags().GetInt("points")
		threshold, _ := cmd.Flags().GetInt("threshold")
		output, _ := cmd.Flags().GetString("output")
		logger := newLogger(cmd)

		if err := os.MkdirAll(output, 0o755); err != nil {
			return err
		}
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			capture, err := motion.ReadCapture(f, motion.Resample(points, threshold))
			f.Close()
			if err != nil {
				return err
			}

			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			out := filepath.Join(output, base+".xlsx")
			if err := motion.WriteCapture(out, capture); err != nil {
				return err
			}
			logger.Info("motion capture exported", "in", path, "out", out, "gaits", len(capture.Events))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(motionCmd)
	motionCmd.Flags().Int("points", 100, "Resampled point count per gait series")
	motionCmd.Flags().Int("threshold", 50, "Minimum valid samples before a series is resampled")
	motionCmd.Flags().String("output", "output", "Output folder")
}
