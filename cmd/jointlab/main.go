// jointlab runs fixed revolute joint test scenes.
//
// Usage:
//
//	jointlab run     - Open the scene in a window
//	jointlab sim     - Step the scene headless and log joint read-backs
//
// Global flags:
//
//	--config <path>    - Config file (default: ./jointlab.yaml)
//	--scene <file>     - Scene prefab (default: lab.yaml)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/milk9111/jointlab/lab"
)

var (
	flagConfig   string
	flagScene    string
	flagLogLevel string

	cfg    lab.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jointlab",
	Short: "Fixed revolute joint lab",
	Long: `jointlab builds a scene of bodies pinned to the world by fixed
revolute joints, with optional limits, motors and driver scripts.

Examples:
  jointlab run --watch
  jointlab sim --frames 300 --report-every 30
  JOINTLAB_GRAVITY_SCALE=0.5 jointlab sim`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return err
		}
		c, err := lab.ConfigFromViper(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "jointlab",
			Level:           cfg.Level(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default is ./jointlab.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagScene, "scene", "lab.yaml", "scene prefab to build")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simCmd)
}

// initializeConfig reads the config file and JOINTLAB_* environment variables
// and binds the command's flags over them.
func initializeConfig(cmd *cobra.Command) error {
	lab.SetDefaults(viper.GetViper())

	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("jointlab")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("JOINTLAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	bindings := map[string]string{
		"scene":         "scene",
		"log_level":     "log-level",
		"frames":        "frames",
		"watch":         "watch",
		"debug":         "debug",
		"report_every":  "report-every",
		"gravity_scale": "gravity-scale",
		"iterations":    "iterations",
		"zoom":          "zoom",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}
