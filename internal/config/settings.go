package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings holds user-tunable configuration loaded from the TOML config file.
// All fields are optional; zero values fall back to the package defaults.
type Settings struct {
	DefaultIntervalDays int    `toml:"default_interval_days"`
	DBPath              string `toml:"db_path"`
	ServerPort          string `toml:"server_port"`
	FeedRefresh         string `toml:"feed_refresh"`
}

// LoadSettings reads the config file at configPath, or from
// $WAGWAN_CONFIG / ~/.config/wagwan/config.toml when configPath is empty.
// A missing file is not an error; defaults apply.
func LoadSettings(configPath string) (*Settings, error) {
	s := &Settings{}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}
	if configPath == "" {
		configPath = filepath.Join(homeDir, ".config", DefaultConfigDir, DefaultConfigFile)
		if _, err := os.Stat(configPath); err != nil {
			s.applyDefaults(homeDir)
			return s, nil
		}
	}

	if _, err := toml.DecodeFile(configPath, s); err != nil {
		return nil, err
	}
	expandTilde(s, homeDir)
	s.applyDefaults(homeDir)
	return s, nil
}

func (s *Settings) applyDefaults(homeDir string) {
	if s.DefaultIntervalDays <= 0 {
		s.DefaultIntervalDays = DefaultIntervalDays
	}
	if s.DBPath == "" {
		if env := os.Getenv(EnvDBPath); env != "" {
			s.DBPath = env
		} else {
			s.DBPath = filepath.Join(homeDir, ".local", "share", DefaultConfigDir, DefaultDBFile)
		}
	}
	if s.ServerPort == "" {
		s.ServerPort = DefaultPort
	}
	if s.FeedRefresh == "" {
		s.FeedRefresh = DefaultFeedRefresh
	}
}

// RefreshInterval parses FeedRefresh, falling back to the default on error.
func (s *Settings) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(s.FeedRefresh)
	if err != nil || d <= 0 {
		return DefaultICalRefresh
	}
	return d
}

func expandTilde(s *Settings, homeDir string) {
	if strings.HasPrefix(s.DBPath, "~/") {
		s.DBPath = filepath.Join(homeDir, s.DBPath[2:])
	}
}
