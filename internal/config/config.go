package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.elearn/config.toml.
type Config struct {
	DefaultSession string   `toml:"default_session"`
	APIBaseURL     string   `toml:"api_base_url"`
	RequestTimeout Duration `toml:"request_timeout"`
	Display        Display  `toml:"display"`
	Breaker        Breaker  `toml:"breaker"`
}

// Display controls how relative timestamps are rendered.
type Display struct {
	ClockLayout string `toml:"clock_layout"`
	DateLayout  string `toml:"date_layout"`
}

// Breaker configures the circuit breaker in front of the backend API.
type Breaker struct {
	Enabled     bool     `toml:"enabled"`
	Failures    uint32   `toml:"failures"`
	OpenTimeout Duration `toml:"open_timeout"`
}

// Duration is a time.Duration that reads and writes as a TOML string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		DefaultSession: "main",
		APIBaseURL:     "http://localhost:8000/api/v1",
		RequestTimeout: Duration{15 * time.Second},
		Display: Display{
			ClockLayout: "3:04 PM",
			DateLayout:  "Jan 2, 2006",
		},
		Breaker: Breaker{
			Enabled:     true,
			Failures:    5,
			OpenTimeout: Duration{30 * time.Second},
		},
	}
}

// Load reads config from the given path. Returns zero config and error if file missing.
// Keys absent from the file keep their Default() values.
func Load(path string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default() when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
