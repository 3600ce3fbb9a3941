package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultVersion   = "1"
	DefaultDataDir   = "."
	DefaultNested    = "data-1.json"
	DefaultFlattened = "data-2.json"
	DefaultTarget    = "data-result.json"
	DefaultOutputDir = "out"
	DefaultWorkers   = 4
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config is the root of the configuration file.
type Config struct {
	// Version of the configuration schema.
	Version string `yaml:"version,omitempty"`

	// DataDir is the directory documents are read from.
	DataDir string `yaml:"data_dir,omitempty"`

	// Documents names the documents used by explore and convert.
	Documents Documents `yaml:"documents,omitempty"`

	// OutputDir receives the documents written by batch and watch.
	// Relative paths are resolved against DataDir.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Compress writes converted documents zstd-compressed (".json.zst").
	Compress bool `yaml:"compress,omitempty"`

	// Workers bounds the number of documents converted at once.
	Workers int `yaml:"workers,omitempty"`

	Log Log `yaml:"log,omitempty"`
}

// Documents names the sample documents.
type Documents struct {
	Nested    string `yaml:"nested,omitempty"`
	Flattened string `yaml:"flattened,omitempty"`
	Target    string `yaml:"target,omitempty"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}

	if c.Documents.Nested == "" {
		c.Documents.Nested = DefaultNested
	}

	if c.Documents.Flattened == "" {
		c.Documents.Flattened = DefaultFlattened
	}

	if c.Documents.Target == "" {
		c.Documents.Target = DefaultTarget
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	var errs []error

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes a Config to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
