package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/jointlab/common"
	"github.com/milk9111/jointlab/lab"
	"github.com/milk9111/jointlab/prefabs"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the scene in a window",
	Long: `Open the scene in a window. With --watch, edits to files under
./prefabs are applied while the scene runs: scripts recompile, entity
prefabs update their joints in place and the scene file rebuilds the scene.

Keys:
  R      - Rebuild the scene
  Space  - Pause / resume
  D      - Toggle physics debug drawing`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	runCmd.Flags().Bool("watch", false, "hot reload prefabs and scripts from ./prefabs")
	runCmd.Flags().Bool("debug", false, "draw physics shapes and constraints")
	runCmd.Flags().Float64("gravity-scale", 1, "multiplier for the scene gravity")
	runCmd.Flags().Int("iterations", 0, "solver iterations (0 = scene value)")
	runCmd.Flags().Float64("zoom", 1, "camera zoom")
}

func runWindow(cmd *cobra.Command, args []string) error {
	l, err := lab.New(cfg, logger)
	if err != nil {
		return err
	}

	var watcher *prefabs.Watcher
	if cfg.Watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			return err
		}
		defer watcher.Close()
		logger.Info("watching for changes", "dir", prefabs.Dir)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("jointlab - " + l.Scene().Name)
	ebiten.SetTPS(int(common.FramesPerSecond))

	return ebiten.RunGame(NewGame(l, watcher, cfg.Debug))
}
