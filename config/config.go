// Package config loads settings for the demo and benchmark commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultTTL              = 2 * time.Second
	DefaultLogLevel         = "info"
	DefaultMetricsNamespace = "expiringmap"
	DefaultWorkers          = 64
	DefaultKeys             = 10000
	DefaultOpsPerWorker     = 5000
)

var (
	ErrNegativeTTL     = errors.New("ttl must not be negative")
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrNonPositive     = errors.New("must be greater than zero")
)

// Config is the top-level configuration.
type Config struct {
	// TTL is how long entries stay alive after insertion.
	TTL time.Duration `yaml:"ttl"`

	// LogLevel is any level hclog understands: trace | debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	Metrics   MetricsConfig   `yaml:"metrics"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
}

// MetricsConfig controls Prometheus naming.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

// BenchmarkConfig sizes the load generated by cmd/benchmark.
type BenchmarkConfig struct {
	Workers      int `yaml:"workers"`
	Keys         int `yaml:"keys"`
	OpsPerWorker int `yaml:"ops_per_worker"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{TTL: DefaultTTL}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, applies defaults and validates the result.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	// a zero ttl is meaningful, so only an absent key gets the default
	var probe struct {
		TTL *time.Duration `yaml:"ttl"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if probe.TTL == nil {
		cfg.TTL = DefaultTTL
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Benchmark.Workers == 0 {
		c.Benchmark.Workers = DefaultWorkers
	}
	if c.Benchmark.Keys == 0 {
		c.Benchmark.Keys = DefaultKeys
	}
	if c.Benchmark.OpsPerWorker == 0 {
		c.Benchmark.OpsPerWorker = DefaultOpsPerWorker
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.TTL < 0 {
		result = multierror.Append(result, fmt.Errorf("ttl %s: %w", c.TTL, ErrNegativeTTL))
	}
	if c.Level() == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("log_level %q: %w", c.LogLevel, ErrUnknownLogLevel))
	}
	if c.Benchmark.Workers <= 0 {
		result = multierror.Append(result, fmt.Errorf("benchmark.workers: %w", ErrNonPositive))
	}
	if c.Benchmark.Keys <= 0 {
		result = multierror.Append(result, fmt.Errorf("benchmark.keys: %w", ErrNonPositive))
	}
	if c.Benchmark.OpsPerWorker <= 0 {
		result = multierror.Append(result, fmt.Errorf("benchmark.ops_per_worker: %w", ErrNonPositive))
	}

	return result.ErrorOrNil()
}

// Level converts LogLevel for hclog. Unknown names yield hclog.NoLevel.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}
