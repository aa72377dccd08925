// Package config provides configuration loading and management for spmview.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"spmview/internal/models"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumCores limits how many frames are processed concurrently
		NumCores int `yaml:"numCores"`

		// Background is one of none, plane or linewise
		Background string `yaml:"background"`

		Sobel   bool `yaml:"sobel"`
		Normal  bool `yaml:"normal"`
		Laplace bool `yaml:"laplace"`

		// Gaussian enables the blur; a GaussianWidthNM of 0 keeps it inactive
		Gaussian        bool    `yaml:"gaussian"`
		GaussianWidthNM float64 `yaml:"gaussianWidthNm"`

		FFT      bool `yaml:"fft"`
		FFTShift bool `yaml:"fftShift"`

		// Projection is the display name of the complex projection, e.g. "abs"
		Projection string `yaml:"projection"`
	} `yaml:"processing"`

	// Display range selection parameters
	Display struct {
		// PercentileLow and PercentileHigh bound the display range (0-100)
		PercentileLow  float64 `yaml:"percentileLow"`
		PercentileHigh float64 `yaml:"percentileHigh"`

		// UseDeviation selects mean +/- Deviations*SD instead of percentiles
		UseDeviation bool    `yaml:"useDeviation"`
		Deviations   float64 `yaml:"deviations"`
	} `yaml:"display"`

	// Logging parameters
	Logging struct {
		// Level is a zerolog level name (debug, info, warn, error)
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.Background = string(models.BackgroundPlane)
	cfg.Processing.GaussianWidthNM = 0
	cfg.Processing.Projection = string(models.ProjectRe)

	cfg.Display.PercentileLow = 1
	cfg.Display.PercentileHigh = 99
	cfg.Display.Deviations = 3

	cfg.Logging.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if _, err := models.ParseBackgroundMode(c.Processing.Background); err != nil {
		return err
	}
	if c.Processing.GaussianWidthNM < 0 {
		return fmt.Errorf("%w: gaussianWidthNm %g", models.ErrInvalidParameter, c.Processing.GaussianWidthNM)
	}
	lo, hi := c.Display.PercentileLow, c.Display.PercentileHigh
	if lo < 0 || hi > 100 || lo > hi {
		return fmt.Errorf("%w: percentile range [%g, %g]", models.ErrInvalidParameter, lo, hi)
	}
	if c.Display.Deviations < 0 {
		return fmt.Errorf("%w: deviations %g", models.ErrInvalidParameter, c.Display.Deviations)
	}
	return nil
}

// Flags builds the immutable processing flags for a frame covering r.
func (c *Config) Flags(r models.ScanRange) (models.ProcessingFlags, error) {
	bg, err := models.ParseBackgroundMode(c.Processing.Background)
	if err != nil {
		return models.ProcessingFlags{}, err
	}

	p := c.Processing
	return models.NewProcessingFlags(
		models.WithBackground(bg),
		models.WithSobel(p.Sobel),
		models.WithNormal(p.Normal),
		models.WithLaplace(p.Laplace),
		models.WithGaussian(p.Gaussian, p.GaussianWidthNM),
		models.WithFFT(p.FFT, p.FFTShift),
		models.WithProjection(p.Projection),
		models.WithScanRange(r),
	), nil
}
