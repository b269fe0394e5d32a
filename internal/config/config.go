// Package config holds the lanscout run configuration: per-phase timeouts
// and worker-pool sizes, report output settings, and logging options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default pool sizes and timeouts. The probe and port-scan pools are sized
// for breadth (one cheap I/O wait per task); the resolve pool is smaller
// because ARP table lookups shell out to the platform tool.
const (
	DefaultProbeWorkers   = 100
	DefaultResolveWorkers = 50
	DefaultScanWorkers    = 100

	DefaultProbeTimeout   = 1 * time.Second
	DefaultResolveTimeout = 2 * time.Second
	DefaultConnectTimeout = 1 * time.Second
	DefaultDetectTimeout  = 2 * time.Second
)

// Config represents the complete lanscout configuration.
type Config struct {
	// Scanning configuration
	Scanning ScanningConfig `yaml:"scanning" json:"scanning"`

	// Report output configuration
	Reports ReportsConfig `yaml:"reports" json:"reports"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScanningConfig holds the per-phase timeouts and pool sizes.
type ScanningConfig struct {
	// Per-probe timeout for the liveness sweep
	ProbeTimeout time.Duration `yaml:"probe_timeout" json:"probe_timeout" validate:"gt=0"`

	// Concurrency cap for the probe pool
	ProbeWorkers int `yaml:"probe_workers" json:"probe_workers" validate:"gte=1,lte=1024"`

	// Per-lookup timeout for hardware address resolution
	ResolveTimeout time.Duration `yaml:"resolve_timeout" json:"resolve_timeout" validate:"gt=0"`

	// Concurrency cap for the resolve pool, independent of the probe pool
	ResolveWorkers int `yaml:"resolve_workers" json:"resolve_workers" validate:"gte=1,lte=1024"`

	// Per-connection timeout for the TCP connect scan
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout" validate:"gt=0"`

	// Concurrency cap for the port-scan pool
	ScanWorkers int `yaml:"scan_workers" json:"scan_workers" validate:"gte=1,lte=1024"`

	// Per-exchange timeout for service detectors
	DetectTimeout time.Duration `yaml:"detect_timeout" json:"detect_timeout" validate:"gt=0"`

	// Enable best-effort reverse DNS lookups for active hosts
	ReverseDNS bool `yaml:"reverse_dns" json:"reverse_dns"`
}

// ReportsConfig holds report output settings.
type ReportsConfig struct {
	// Base directory for per-run report folders
	Dir string `yaml:"dir" json:"dir" validate:"required"`

	// Enable CSV output
	CSV bool `yaml:"csv" json:"csv"`

	// Enable HTML output
	HTML bool `yaml:"html" json:"html"`

	// Maximum length of a detail string in rendered output
	DetailMaxLen int `yaml:"detail_max_len" json:"detail_max_len" validate:"gte=8"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scanning: ScanningConfig{
			ProbeTimeout:   DefaultProbeTimeout,
			ProbeWorkers:   DefaultProbeWorkers,
			ResolveTimeout: DefaultResolveTimeout,
			ResolveWorkers: DefaultResolveWorkers,
			ConnectTimeout: DefaultConnectTimeout,
			ScanWorkers:    DefaultScanWorkers,
			DetectTimeout:  DefaultDetectTimeout,
			ReverseDNS:     true,
		},
		Reports: ReportsConfig{
			Dir:          "reports",
			CSV:          true,
			HTML:         true,
			DetailMaxLen: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load loads configuration from a file, starting from defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var validate = validator.New()

// Validate validates the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
