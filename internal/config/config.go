// Package config loads comdlg settings from defaults, an optional YAML
// file, COMDLG_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/comdlg/internal/dialog"
	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/timeouts"
	"github.com/Norgate-AV/comdlg/internal/viewer"
	"github.com/Norgate-AV/comdlg/internal/windows"
)

// EnvPrefix prefixes every environment override, e.g. COMDLG_WAIT_POLL_INTERVAL
const EnvPrefix = "COMDLG"

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Wait   WaitConfig   `mapstructure:"wait" yaml:"wait"`
	Dialog DialogConfig `mapstructure:"dialog" yaml:"dialog"`
	Viewer ViewerConfig `mapstructure:"viewer" yaml:"viewer"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

type WaitConfig struct {
	PollInterval       time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	DialogOpenTimeout  time.Duration `mapstructure:"dialog_open_timeout" yaml:"dialog_open_timeout"`
	DialogCloseTimeout time.Duration `mapstructure:"dialog_close_timeout" yaml:"dialog_close_timeout"`
	HandlesTimeout     time.Duration `mapstructure:"handles_timeout" yaml:"handles_timeout"`
	FileTimeout        time.Duration `mapstructure:"file_timeout" yaml:"file_timeout"`
	ViewerTimeout      time.Duration `mapstructure:"viewer_timeout" yaml:"viewer_timeout"`
	WindowTimeout      time.Duration `mapstructure:"window_timeout" yaml:"window_timeout"`
}

type DialogConfig struct {
	SettleDelay time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	InputDelay  time.Duration `mapstructure:"input_delay" yaml:"input_delay"`
}

type ViewerConfig struct {
	HotspotOffsetX int    `mapstructure:"hotspot_offset_x" yaml:"hotspot_offset_x"`
	HotspotOffsetY int    `mapstructure:"hotspot_offset_y" yaml:"hotspot_offset_y"`
	ClickMode      string `mapstructure:"click_mode" yaml:"click_mode"`
}

type LoggerConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	// -- Wait --
	v.SetDefault("wait.poll_interval", timeouts.StatePollingInterval)
	v.SetDefault("wait.dialog_open_timeout", timeouts.DialogOpenTimeout)
	v.SetDefault("wait.dialog_close_timeout", timeouts.DialogCloseTimeout)
	v.SetDefault("wait.handles_timeout", timeouts.DialogHandlesTimeout)
	v.SetDefault("wait.file_timeout", timeouts.FileMaterializeTimeout)
	v.SetDefault("wait.viewer_timeout", timeouts.ViewerStateTimeout)
	v.SetDefault("wait.window_timeout", timeouts.WindowAppearTimeout)

	// -- Dialog --
	v.SetDefault("dialog.settle_delay", timeouts.DialogAppearSettleDelay)
	v.SetDefault("dialog.input_delay", timeouts.DialogInputDelay)

	// -- Viewer --
	v.SetDefault("viewer.hotspot_offset_x", -108)
	v.SetDefault("viewer.hotspot_offset_y", 159)
	v.SetDefault("viewer.click_mode", string(viewer.PointerClick))

	// -- Logger --
	v.SetDefault("logger.dir", "")
	v.SetDefault("logger.max_size", logger.DefaultLogMaxSize)
	v.SetDefault("logger.max_backups", logger.DefaultLogMaxBackups)
	v.SetDefault("logger.max_age", logger.DefaultLogMaxAge)
	v.SetDefault("logger.compress", true)
}

// Load points v at the config file and environment. A missing file is not
// an error unless path names it explicitly.
func Load(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("comdlg")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, logger.AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// NewConfigFromViper decodes and validates the settings held by v
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for sane values
func (c *Config) Validate() error {
	if c.Wait.PollInterval <= 0 {
		return fmt.Errorf("%w: wait.poll_interval must be positive", ErrInvalid)
	}

	deadlines := map[string]time.Duration{
		"wait.dialog_open_timeout":  c.Wait.DialogOpenTimeout,
		"wait.dialog_close_timeout": c.Wait.DialogCloseTimeout,
		"wait.handles_timeout":      c.Wait.HandlesTimeout,
		"wait.file_timeout":         c.Wait.FileTimeout,
		"wait.viewer_timeout":       c.Wait.ViewerTimeout,
		"wait.window_timeout":       c.Wait.WindowTimeout,
	}

	for key, d := range deadlines {
		if d < c.Wait.PollInterval {
			return fmt.Errorf("%w: %s (%v) is shorter than wait.poll_interval (%v)", ErrInvalid, key, d, c.Wait.PollInterval)
		}
	}

	if c.Dialog.InputDelay < 0 || c.Dialog.SettleDelay < 0 {
		return fmt.Errorf("%w: dialog delays must not be negative", ErrInvalid)
	}

	if _, err := viewer.ParseClickMode(c.Viewer.ClickMode); err != nil {
		return fmt.Errorf("%w: viewer.click_mode: %w", ErrInvalid, err)
	}

	if c.Logger.MaxSize < 0 || c.Logger.MaxBackups < 0 || c.Logger.MaxAge < 0 {
		return fmt.Errorf("%w: logger rotation limits must not be negative", ErrInvalid)
	}

	return nil
}

// DialogTiming returns the dialog controller timings
func (c *Config) DialogTiming() dialog.Timing {
	return dialog.Timing{
		PollInterval:   c.Wait.PollInterval,
		OpenTimeout:    c.Wait.DialogOpenTimeout,
		HandlesTimeout: c.Wait.HandlesTimeout,
		CloseTimeout:   c.Wait.DialogCloseTimeout,
		FileTimeout:    c.Wait.FileTimeout,
		SettleDelay:    c.Dialog.SettleDelay,
		InputDelay:     c.Dialog.InputDelay,
	}
}

// ViewerConfig returns the viewer poller settings
func (c *Config) ViewerConfig() viewer.Config {
	mode, _ := viewer.ParseClickMode(c.Viewer.ClickMode)

	return viewer.Config{
		HotspotOffset: windows.Point{X: int32(c.Viewer.HotspotOffsetX), Y: int32(c.Viewer.HotspotOffsetY)},
		ClickMode:     mode,
		PollInterval:  c.Wait.PollInterval,
		StateTimeout:  c.Wait.ViewerTimeout,
	}
}

// LoggerOptions returns the logger settings
func (c *Config) LoggerOptions(verbose bool) logger.LoggerOptions {
	return logger.LoggerOptions{
		Verbose:    verbose,
		LogDir:     c.Logger.Dir,
		MaxSize:    c.Logger.MaxSize,
		MaxBackups: c.Logger.MaxBackups,
		MaxAge:     c.Logger.MaxAge,
		Compress:   c.Logger.Compress,
	}
}
