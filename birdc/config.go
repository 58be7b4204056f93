// =============================================================================
// config.go - Configuration File and Environment
// =============================================================================
//
// Settings come from four layers, highest priority first:
//
//  1. command-line flags that were explicitly set
//  2. BIRDC_* environment variables (BIRDC_SOCKET, BIRDC_HISTORY_LIMIT, ...)
//  3. the YAML config file
//  4. built-in defaults
//
// The config file is optional. Its location is --config, else $BIRDC_CONFIG,
// else $XDG_CONFIG_HOME/birdc/config.yaml, else ~/.config/birdc/config.yaml.
//
// Example:
//
//	socket: /run/bird/bird.ctl
//	verbose: 0
//	restricted: false
//	color: auto
//	history:
//	  file: ~/.birdc_history
//	  limit: 500
//
// =============================================================================

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nkmideb/birdc/birdprotocol"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configEnvPrefix prefixes every environment override.
const configEnvPrefix = "BIRDC"

// historyConfig configures persistent command history.
type historyConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Limit int    `mapstructure:"limit" yaml:"limit"`
}

// config is the effective client configuration.
type config struct {
	Socket     string        `mapstructure:"socket" yaml:"socket"`
	Verbose    int           `mapstructure:"verbose" yaml:"verbose"`
	Restricted bool          `mapstructure:"restricted" yaml:"restricted"`
	Color      string        `mapstructure:"color" yaml:"color"`
	History    historyConfig `mapstructure:"history" yaml:"history"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() config {
	return config{
		Socket: birdprotocol.DefaultSocketPath,
		Color:  colorAuto,
		History: historyConfig{
			File:  "~/" + defaultHistoryFile,
			Limit: defaultHistoryLimit,
		},
	}
}

// defaultConfigPath returns where the config file is looked for when
// --config is not given.
func defaultConfigPath() string {
	if path := os.Getenv(configEnvPrefix + "_CONFIG"); path != "" {
		return path
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "birdc", "config.yaml")
	}
	return filepath.Join(homeDir(), ".config", "birdc", "config.yaml")
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"socket":     "socket",
	"verbose":    "verbose",
	"restricted": "restricted",
}

// loadConfig reads the configuration. path may be empty to use the default
// location; a missing file is not an error. flags may be nil.
func loadConfig(path string, flags *pflag.FlagSet) (config, error) {
	if path == "" {
		path = defaultConfigPath()
	}
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(configEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("socket", cfg.Socket)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("restricted", cfg.Restricted)
	v.SetDefault("color", cfg.Color)
	v.SetDefault("history.file", cfg.History.File)
	v.SetDefault("history.limit", cfg.History.Limit)

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return config{}, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.History.File = expandHome(cfg.History.File)
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// validate checks values that viper cannot type-check.
func (c config) validate() error {
	if !validColorMode(c.Color) {
		return fmt.Errorf("color must be %s, %s or %s, not %q", colorAuto, colorAlways, colorNever, c.Color)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative")
	}
	if c.Verbose < 0 {
		return fmt.Errorf("verbose must not be negative")
	}
	return nil
}

// writeConfig renders cfg as YAML.
func writeConfig(w io.Writer, cfg config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
