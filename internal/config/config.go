package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Literal fallbacks used when neither a config file nor a flag sets a value.
const (
	DefaultInputPath   = "outfile.dispersion_relations.hdf5"
	DefaultPlotPath    = "phonon_dispersion.png"
	DefaultArchivePath = "phonon_data.npz"
)

// maxFileSize bounds config files read by LoadConfig.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config holds the run settings shared by the commands. Nil fields fall back
// to the defaults returned by the Get* methods, so partial files are safe.
type Config struct {
	// InputPath is the dispersion file to read.
	InputPath *string `json:"input_path,omitempty"`
	// PlotPath is the chart image to write. An explicit empty string
	// selects the interactive chart.
	PlotPath *string `json:"plot_path,omitempty"`
	// ArchivePath is the .npz archive to write.
	ArchivePath *string `json:"npz_path,omitempty"`

	// Frequency axis limits; both or neither.
	YMin *float64 `json:"y_min,omitempty"`
	YMax *float64 `json:"y_max,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string    { return &v }
func ptrFloat64(v float64) *float64 { return &v }

// Empty returns a Config with all fields set to nil.
func Empty() *Config {
	return &Config{}
}

// Defaults returns a Config with every path set to its literal default.
func Defaults() *Config {
	return &Config{
		InputPath:   ptrString(DefaultInputPath),
		PlotPath:    ptrString(DefaultPlotPath),
		ArchivePath: ptrString(DefaultArchivePath),
	}
}

// LoadConfig loads a Config from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if (c.YMin == nil) != (c.YMax == nil) {
		return fmt.Errorf("y_min and y_max must be set together")
	}
	if c.YMin != nil && *c.YMin >= *c.YMax {
		return fmt.Errorf("y_min (%g) must be less than y_max (%g)", *c.YMin, *c.YMax)
	}

	if c.InputPath != nil && *c.InputPath == "" {
		return fmt.Errorf("input_path must not be empty")
	}

	if c.ArchivePath != nil {
		if ext := filepath.Ext(*c.ArchivePath); ext != ".npz" {
			return fmt.Errorf("npz_path must have .npz extension, got %q", *c.ArchivePath)
		}
	}

	return nil
}

// SetYLimits sets both frequency axis limits.
func (c *Config) SetYLimits(lo, hi float64) {
	c.YMin = ptrFloat64(lo)
	c.YMax = ptrFloat64(hi)
}

// GetInputPath returns the input_path value or the default.
func (c *Config) GetInputPath() string {
	if c.InputPath == nil {
		return DefaultInputPath
	}
	return *c.InputPath
}

// GetPlotPath returns the plot_path value or the default. An empty result
// means the chart is shown interactively.
func (c *Config) GetPlotPath() string {
	if c.PlotPath == nil {
		return DefaultPlotPath
	}
	return *c.PlotPath
}

// GetArchivePath returns the npz_path value or the default.
func (c *Config) GetArchivePath() string {
	if c.ArchivePath == nil {
		return DefaultArchivePath
	}
	return *c.ArchivePath
}

// GetYLimits returns the frequency axis limits. ok is false when unset.
func (c *Config) GetYLimits() (lo, hi float64, ok bool) {
	if c.YMin == nil || c.YMax == nil {
		return 0, 0, false
	}
	return *c.YMin, *c.YMax, true
}
