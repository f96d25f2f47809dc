// Package config resolves jumble's process configuration using Viper.
//
// Values come from, in increasing precedence: built-in defaults, an
// optional jumble.yaml or jumble.toml under the XDG config home, JUMBLE_*
// environment variables and command-line flags. The workspace root is the
// exception: JUMBLE_ROOT beats --root, and the working directory is the
// fallback.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/HendryAvila/jumble/internal/descriptor"
	"github.com/HendryAvila/jumble/internal/logging"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// AppName is the application name used for config file naming.
const AppName = "jumble"

// EnvPrefix prefixes every environment variable jumble reads.
const EnvPrefix = "JUMBLE"

// Configuration keys. Flags use the same names.
const (
	KeyRoot      = "root"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyWatch     = "watch"
	KeyDebounce  = "debounce"
	KeyIgnore    = "ignore"
	KeyMarker    = "marker"
)

// Keys lists every configuration key.
var Keys = []string{KeyRoot, KeyLogLevel, KeyLogFormat, KeyWatch, KeyDebounce, KeyIgnore, KeyMarker}

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// configDirs is a package-level var to allow test injection.
var configDirs = func() []string {
	return []string{filepath.Join(xdg.ConfigHome, AppName)}
}

// Config is the resolved process configuration.
type Config struct {
	Root      string        `mapstructure:"root"`
	LogLevel  string        `mapstructure:"log-level"`
	LogFormat string        `mapstructure:"log-format"`
	Watch     bool          `mapstructure:"watch"`
	Debounce  time.Duration `mapstructure:"debounce"`
	Ignore    []string      `mapstructure:"ignore"`
	Marker    string        `mapstructure:"marker"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`

	level  slog.Level
	format logging.Format
}

// New returns a Viper instance with defaults, environment binding and the
// config file search path set up. Bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName(AppName)
	for _, dir := range configDirs() {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyRoot, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, string(logging.FormatText))
	v.SetDefault(KeyWatch, false)
	v.SetDefault(KeyDebounce, workspace.DefaultDebounce)
	v.SetDefault(KeyIgnore, workspace.DefaultIgnore)
	v.SetDefault(KeyMarker, descriptor.DefaultMarkerDir)
	return v
}

// Load reads the configuration. If path is set that file must exist;
// otherwise a missing config file just means defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	cfg.File = v.ConfigFileUsed()

	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveRoot applies the root precedence: JUMBLE_ROOT, then the flag or
// config file value, then the working directory.
func resolveRoot(configured string) (string, error) {
	root := strings.TrimSpace(os.Getenv(EnvPrefix + "_ROOT"))
	if root == "" {
		root = strings.TrimSpace(configured)
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "getting working directory")
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolving root %s", root)
	}
	return abs, nil
}

func (c *Config) validate() error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrapf(ErrInvalid, "%s: %v", KeyLogLevel, err)
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return errors.Wrapf(ErrInvalid, "%s: %v", KeyLogFormat, err)
	}
	c.level, c.format = level, format

	c.Marker = strings.TrimSpace(c.Marker)
	if c.Marker == "" || strings.ContainsAny(c.Marker, `/\`) {
		return errors.Wrapf(ErrInvalid, "%s %q must be a single directory name", KeyMarker, c.Marker)
	}
	if c.Debounce <= 0 {
		return errors.Wrapf(ErrInvalid, "%s must be positive, got %s", KeyDebounce, c.Debounce)
	}
	return nil
}

// Logging returns the logger configuration, writing to stderr.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.level, Format: c.format, Output: os.Stderr}
}

// WorkspaceOptions returns the options for building the workspace.
func (c *Config) WorkspaceOptions(logger *slog.Logger) workspace.Options {
	ignore := c.Ignore
	if ignore == nil {
		ignore = []string{}
	}
	return workspace.Options{Marker: c.Marker, Ignore: ignore, Logger: logger}
}
