// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the config directory name.
	AppName = "drills"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config holds the user-tunable settings.
type Config struct {
	// TargetDir is cargo's target directory for exercise builds.
	TargetDir string `mapstructure:"target_dir"`
	// CircuitDir is where circom circuit sources live.
	CircuitDir string `mapstructure:"circuit_dir"`
	// Verbose enables diagnostic logging.
	Verbose bool `mapstructure:"verbose"`
	// ClearScreen clears the terminal before each watch-mode re-run.
	ClearScreen bool `mapstructure:"clear_screen"`
	// DebounceMs is the watch-mode debounce window in milliseconds.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TargetDir:   "target",
		CircuitDir:  filepath.Join("exercises", "circuits"),
		ClearScreen: true,
		DebounceMs:  500,
	}
}

// Debounce returns the watch-mode debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

var (
	// configDirOverride allows tests to redirect the config directory.
	configDirOverride string
	// configFileOverride is set via the --config flag.
	configFileOverride string
)

// SetConfigDirOverride redirects the config directory. Tests only.
func SetConfigDirOverride(dir string) { configDirOverride = dir }

// SetConfigFilePathOverride sets an explicit config file path (--config).
func SetConfigFilePathOverride(path string) { configFileOverride = path }

// ConfigDir returns the drills configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			return "", errors.New("config: %APPDATA% is not set")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: determine home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("config: determine home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration file, applying defaults for anything unset.
// A missing file yields the defaults with no error; a present-but-broken
// file is an error so misconfigurations never fail silently.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileExt)

	defaults := Default()
	v.SetDefault("target_dir", defaults.TargetDir)
	v.SetDefault("circuit_dir", defaults.CircuitDir)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("clear_screen", defaults.ClearScreen)
	v.SetDefault("debounce_ms", defaults.DebounceMs)

	if configFileOverride != "" {
		v.SetConfigFile(configFileOverride)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configFileOverride == "" {
			return defaults, nil
		}
		if os.IsNotExist(err) && configFileOverride == "" {
			return defaults, nil
		}
		return nil, fmt.Errorf("config: read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal config: %w", err)
	}
	return &cfg, nil
}
