package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/milk9111/jointlab/lab"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Step the scene without a window",
	Long: `Step the scene for a fixed number of frames and log the joint
read-backs (angle, speed, motor torque, reaction force) as it goes.

Examples:
  jointlab sim
  jointlab sim --frames 1200 --report-every 120
  jointlab sim --scene lab.yaml --gravity-scale 0`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Int("frames", 600, "frames to simulate")
	simCmd.Flags().Int("report-every", 60, "log read-backs every N frames (0 = only at the end)")
	simCmd.Flags().Float64("gravity-scale", 1, "multiplier for the scene gravity")
	simCmd.Flags().Int("iterations", 0, "solver iterations (0 = scene value)")
}

func runSim(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := lab.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := l.Run(ctx, cfg.Frames); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("done", "frames", l.Frame())
	cmd.Print(l.Report())
	return nil
}
