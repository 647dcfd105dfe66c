package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/menta2k/photo-normalizer/pkg/processing"
	"github.com/menta2k/photo-normalizer/pkg/types"
)

// EnvPrefix is the prefix of environment overrides, e.g. PHOTONORM_MAX_SIZE.
const EnvPrefix = "PHOTONORM"

// Config holds the application configuration
type Config struct {
	Pipeline PipelineConfig `json:"pipeline"`
	Output   OutputConfig   `json:"output"`
	Log      LogConfig      `json:"log"`
}

// PipelineConfig holds the per-image normalization settings
type PipelineConfig struct {
	MaxSize         int         `json:"max_size" envconfig:"MAX_SIZE"`
	CanvasSize      types.Size  `json:"canvas_size" envconfig:"CANVAS_SIZE"`
	BackgroundColor types.Color `json:"background_color" envconfig:"BACKGROUND"`
	GreyThreshold   types.Color `json:"grey_threshold" envconfig:"GREY_THRESHOLD"`
	ReplaceColor    types.Color `json:"replace_color" envconfig:"REPLACE_COLOR"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Quality   int    `json:"quality" envconfig:"QUALITY"`
	OutputDir string `json:"output_dir" envconfig:"OUTPUT_DIR"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `json:"level" envconfig:"LOG_LEVEL"`
	Format string `json:"format" envconfig:"LOG_FORMAT"`
}

// Default returns a configuration with default values
func Default() *Config {
	opts := processing.DefaultOptions()
	return &Config{
		Pipeline: PipelineConfig{
			MaxSize:         opts.MaxSize,
			CanvasSize:      opts.CanvasSize,
			BackgroundColor: opts.BackgroundColor,
			GreyThreshold:   opts.GreyThreshold,
			ReplaceColor:    opts.ReplaceColor,
		},
		Output: OutputConfig{
			Quality:   opts.Quality,
			OutputDir: "out",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from PHOTONORM_* environment variables. Unset
// variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, &c.Pipeline); err != nil {
		return fmt.Errorf("failed to read pipeline environment: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, &c.Output); err != nil {
		return fmt.Errorf("failed to read output environment: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, &c.Log); err != nil {
		return fmt.Errorf("failed to read log environment: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Pipeline.MaxSize < 1 {
		return fmt.Errorf("pipeline.max_size must be positive")
	}

	if c.Pipeline.CanvasSize.Width < 1 || c.Pipeline.CanvasSize.Height < 1 {
		return fmt.Errorf("pipeline.canvas_size must be positive, got %s", c.Pipeline.CanvasSize)
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	if strings.TrimSpace(c.Output.OutputDir) == "" {
		return fmt.Errorf("output.output_dir cannot be empty")
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	return nil
}

// ProcessingOptions converts the configuration into pipeline options.
func (c *Config) ProcessingOptions() processing.Options {
	return processing.Options{
		MaxSize:         c.Pipeline.MaxSize,
		CanvasSize:      c.Pipeline.CanvasSize,
		BackgroundColor: c.Pipeline.BackgroundColor,
		GreyThreshold:   c.Pipeline.GreyThreshold,
		ReplaceColor:    c.Pipeline.ReplaceColor,
		Quality:         c.Output.Quality,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "photo-normalizer", "config.json")
}
