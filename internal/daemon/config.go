// Package daemon holds the long-running server's configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration, loaded from TOML.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Time    TimeConfig    `toml:"time"`
	Metrics MetricsConfig `toml:"metrics"`
}

type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type StorageConfig struct {
	// Dir holds the SQLite database. Created on first start.
	Dir string `toml:"dir"`
}

type TimeConfig struct {
	// Zone is the IANA zone that defines the calendar day for refills,
	// bonuses, and streaks. A user's "day" follows this zone, not the
	// server's local clock.
	Zone string `toml:"zone"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Storage: StorageConfig{
			Dir: filepath.Join(home, ".lingua"),
		},
		Time: TimeConfig{
			Zone: "UTC",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads the config file at path, layered over the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lingua", "config.toml")
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Time.Zone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.Time.Zone, err)
	}
	return loc, nil
}

// Addr returns the host:port the API listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
