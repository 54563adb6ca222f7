package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/telvik/displayctl/internal/errors"
)

// Defaults for every configuration key
const (
	DefaultWidth             = 3840
	DefaultHeight            = 2160
	DefaultRefreshRate       = 120
	DefaultInactivityTimeout = 300
	DefaultApplyDelay        = 5
	DefaultRetryDelay        = 10
	DefaultMaxRetries        = 3
	DefaultLogLevel          = "info"
)

const envConfigPath = "DISPLAYCTL_CONFIG"

type Config struct {
	Width             int    `mapstructure:"width"`
	Height            int    `mapstructure:"height"`
	RefreshRate       int    `mapstructure:"refresh_rate"`
	InactivityTimeout int    `mapstructure:"inactivity_timeout"`
	ApplyDelay        int    `mapstructure:"apply_delay"`
	RetryDelay        int    `mapstructure:"retry_delay"`
	MaxRetries        int    `mapstructure:"max_retries"`
	Background        bool   `mapstructure:"background"`
	Monitor           bool   `mapstructure:"monitor"`
	Debug             bool   `mapstructure:"debug"`
	Verbose           bool   `mapstructure:"verbose"`
	LogLevel          string `mapstructure:"log_level"`
	LogFile           string `mapstructure:"log_file"`
	Telemetry         bool   `mapstructure:"telemetry"`
	TelemetryDB       string `mapstructure:"telemetry_db"`
}

var (
	mu sync.Mutex
	v  *viper.Viper
)

// Load merges defaults, the config file and command line flags, in
// ascending order of precedence, and validates the result.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	errFactory := errors.New()

	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Int("width", DefaultWidth, "Target display width in pixels")
	fs.Int("height", DefaultHeight, "Target display height in pixels")
	fs.Int("refresh-rate", DefaultRefreshRate, "Target refresh rate in Hz")
	fs.Int("inactivity-timeout", DefaultInactivityTimeout, "Seconds without input that count as idle")
	fs.Int("apply-delay", DefaultApplyDelay, "Seconds to wait after returning from idle before reconciling")
	fs.Int("retry-delay", DefaultRetryDelay, "Seconds between failed reconcile attempts")
	fs.Int("max-retries", DefaultMaxRetries, "Maximum reconcile attempts per cycle")
	fs.Bool("background", false, "Run as a background daemon")
	fs.Bool("monitor", false, "Only observe activity, never change the display mode")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.String("log-level", "", "Log level (debug, info, warning, error)")
	fs.String("log-file", "", "Path to a rotated log file")
	fs.Bool("telemetry", false, "Record reconciliation outcomes to a local database")
	fs.String("telemetry-db", "", "Path to the telemetry database")

	if err := fs.Parse(os.Args[1:]); err != nil {
		// pflag has already printed usage at this point
		if errors.Is(err, pflag.ErrHelp) {
			return nil, errFactory.New(errors.ErrHelpRequested)
		}
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v = viper.New()
	setDefaults(v)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Flags set on the command line override config file values
	fs.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogLevel is a verbosity accepted by the log_level key
type LogLevel string

// IsValid reports whether the logger understands the level
func (l LogLevel) IsValid() bool {
	switch l {
	case "debug", "info", "warning", "error":
		return true
	default:
		return false
	}
}

// Validate checks the loaded configuration for values the daemon
// cannot safely run with.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Width <= 0 || c.Height <= 0 || c.RefreshRate <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Width       int
			Height      int
			RefreshRate int
		}{c.Width, c.Height, c.RefreshRate})
	}

	if c.InactivityTimeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			InactivityTimeout int
		}{c.InactivityTimeout})
	}

	if c.ApplyDelay < 0 || c.RetryDelay < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			ApplyDelay int
			RetryDelay int
		}{c.ApplyDelay, c.RetryDelay})
	}

	if c.MaxRetries < 1 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			MaxRetries int
		}{c.MaxRetries})
	}

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("width", DefaultWidth)
	v.SetDefault("height", DefaultHeight)
	v.SetDefault("refresh_rate", DefaultRefreshRate)
	v.SetDefault("inactivity_timeout", DefaultInactivityTimeout)
	v.SetDefault("apply_delay", DefaultApplyDelay)
	v.SetDefault("retry_delay", DefaultRetryDelay)
	v.SetDefault("max_retries", DefaultMaxRetries)
	v.SetDefault("background", false)
	v.SetDefault("monitor", false)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("telemetry", false)
	v.SetDefault("telemetry_db", "")
}

func readConfigFile(v *viper.Viper) error {
	errFactory := errors.New()

	if path := os.Getenv(envConfigPath); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("displayctl")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "displayctl"))
		}
		v.AddConfigPath("/etc")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	return nil
}
