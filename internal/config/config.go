// Package config loads the YAML configuration of the pdftext command.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdftext"
	"github.com/tsawler/pdftext/format"
)

// Config is the command configuration.
//
//	extraction:
//	  preserve_formatting: true
//	  include_metadata: true
//	  combine_text_items: true
//	  password: ${PDF_PASSWORD}
//	output:
//	  format: text        # text, html or json
//	  dir: ./out          # empty writes to stdout
//	log:
//	  level: info         # debug, info, warn or error
//	  format: text        # text or json
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction"`
	Output     OutputConfig     `yaml:"output"`
	Log        LogConfig        `yaml:"log"`
}

// ExtractionConfig holds the extraction options and the password tried on
// encrypted documents.
type ExtractionConfig struct {
	pdftext.ExtractOptions `yaml:",inline"`

	Password string `yaml:"password,omitempty"`
}

// OutputConfig selects how results are written.
type OutputConfig struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir,omitempty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{ExtractOptions: pdftext.DefaultOptions()},
		Output:     OutputConfig{Format: "text"},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the
// file keep their default values. Environment variables in the password
// and output directory are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load for YAML held in memory.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.Extraction.Password = expandEnv(config.Extraction.Password)
	config.Output.Dir = expandEnv(config.Output.Dir)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if f := c.Output.OutputFormat(); f == format.Unknown || f == format.PDF {
		return fmt.Errorf("output format must be text, html or json, got %q", c.Output.Format)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}

// OutputFormat returns the configured output format.
func (c OutputConfig) OutputFormat() format.Format {
	return format.Parse(c.Format)
}

// Validate checks the level and handler format.
func (c LogConfig) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.Format)
	}
}

func (c LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Level)
	}
	return level, nil
}

// NewLogger builds a logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := c.level()
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
