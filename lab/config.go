package lab

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config is the lab's runtime configuration. Keys map to the jointlab.yaml
// file, JOINTLAB_* environment variables and command-line flags.
type Config struct {
	Scene        string  `mapstructure:"scene"`
	Frames       int     `mapstructure:"frames"`
	Watch        bool    `mapstructure:"watch"`
	Debug        bool    `mapstructure:"debug"`
	LogLevel     string  `mapstructure:"log_level"`
	GravityScale float64 `mapstructure:"gravity_scale"`
	Iterations   int     `mapstructure:"iterations"`
	ReportEvery  int     `mapstructure:"report_every"`
	Zoom         float64 `mapstructure:"zoom"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("scene", "lab.yaml")
	v.SetDefault("frames", 600)
	v.SetDefault("watch", false)
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("gravity_scale", 1.0)
	v.SetDefault("iterations", 0)
	v.SetDefault("report_every", 60)
	v.SetDefault("zoom", 1.0)
}

func DefaultConfig() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := ConfigFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("lab: default config: %v", err))
	}
	return cfg
}

func ConfigFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("lab: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("lab: invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Scene == "" {
		return fmt.Errorf("scene is required")
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative")
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative")
	}
	if c.ReportEvery < 0 {
		return fmt.Errorf("report_every must not be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the configured log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
