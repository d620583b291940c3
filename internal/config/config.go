// Package config resolves sitedesk's file locations and log settings from
// defaults, an optional config.yaml and SITEDESK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyDBPath   = "db_path"
	KeyStateDir = "state_dir"
	KeyLogFile  = "log_file"
	KeyLogLevel = "log_level"

	envPrefix      = "SITEDESK"
	configFileName = "config"
	configFileType = "yaml"
	defaultDir     = "~/.sitedesk"
)

// Config is the resolved configuration. Paths are absolute with ~ expanded.
type Config struct {
	DBPath   string
	StateDir string
	LogFile  string
	LogLevel slog.Level
}

// Load reads config.yaml from configDir (or the default ~/.sitedesk when
// empty). A missing file is not an error; environment variables win over the
// file, which wins over defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = defaultDir
	}
	dir, err := homedir.Expand(configDir)
	if err != nil {
		return nil, fmt.Errorf("expanding config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyDBPath, filepath.Join(dir, "sitedesk.db"))
	v.SetDefault(KeyStateDir, filepath.Join(dir, "state"))
	v.SetDefault(KeyLogFile, filepath.Join(dir, "sitedesk.log"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if cfg.DBPath, err = expandPath(v.GetString(KeyDBPath)); err != nil {
		return nil, err
	}
	if cfg.StateDir, err = expandPath(v.GetString(KeyStateDir)); err != nil {
		return nil, err
	}
	if cfg.LogFile, err = expandPath(v.GetString(KeyLogFile)); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = ParseLevel(v.GetString(KeyLogLevel)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandPath expands ~ but leaves special values such as ":memory:" and ""
// untouched.
func expandPath(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, ":") {
		return p, nil
	}
	out, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", p, err)
	}
	return out, nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q", s)
	}
	return l, nil
}

// EnsureDirs creates the directories the configured paths live in.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.StateDir}
	if c.DBPath != "" && !strings.HasPrefix(c.DBPath, ":") {
		dirs = append(dirs, filepath.Dir(c.DBPath))
	}
	if c.LogFile != "" {
		dirs = append(dirs, filepath.Dir(c.LogFile))
	}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}
	return nil
}
