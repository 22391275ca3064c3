package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML strings like "30s" or "1m"; yaml.v3 has no native
// time.Duration support. Bare integers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Observer ObserverConfig `yaml:"observer"`
	Monitor  MonitorConfig  `yaml:"monitor"`
}

// ServerConfig is the telemetry listener. ReadBuffer is the per-connection
// receive chunk size; records larger than one chunk are reassembled by the
// framer, so it only affects syscall granularity.
type ServerConfig struct {
	Port       int    `yaml:"port"`
	Host       string `yaml:"host"`
	ReadBuffer int    `yaml:"read_buffer"`
}

// ObserverConfig is the HTTP/WebSocket observer surface. It is purely
// read-only over the session store and can be disabled outright.
type ObserverConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Port             int           `yaml:"port"`
	Host             string        `yaml:"host"`
	SnapshotInterval Duration `yaml:"snapshot_interval"`
}

// MonitorConfig controls the periodic self-resource report.
type MonitorConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ReportInterval Duration `yaml:"report_interval"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       27000,
			Host:       "0.0.0.0",
			ReadBuffer: 128,
		},
		Observer: ObserverConfig{
			Enabled:          true,
			Port:             8080,
			Host:             "0.0.0.0",
			SnapshotInterval: Duration(5 * time.Second),
		},
		Monitor: MonitorConfig{
			Enabled:        true,
			ReportInterval: Duration(30 * time.Second),
		},
	}
}

// Load reads the YAML config at path over the built-in defaults. A missing
// file is not an error: the server runs fine on defaults alone.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
