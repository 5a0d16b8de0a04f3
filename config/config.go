// Package config loads the YAML configuration shared by the travel-time
// CLI: grid refinement, corridor geometry, velocity-model path, solver
// selection, the travel-time database, and the pseudo-bending work dir.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Solver modes.
const (
	// SolverInternal runs the in-process Dijkstra engine.
	SolverInternal = "internal"

	// SolverExternal shells out to a standalone engine binary over the
	// edge-file contract.
	SolverExternal = "external"
)

// ErrBadConfig indicates a configuration that fails validation.
var ErrBadConfig = errors.New("config: invalid configuration")

// Config is the root configuration document.
type Config struct {
	// LogLevel is one of debug, info, warn, error (default: info).
	LogLevel string `yaml:"log_level"`

	Grid     GridConfig     `yaml:"grid"`
	Builder  BuilderConfig  `yaml:"builder"`
	Model    ModelConfig    `yaml:"model"`
	Solver   SolverConfig   `yaml:"solver"`
	Database DatabaseConfig `yaml:"database"`
	Bending  BendingConfig  `yaml:"bending"`
}

// GridConfig selects the grid refinement between the two stages.
type GridConfig struct {
	// Refine divides each coarse grid gap for the fine stage (default: 4).
	Refine int `yaml:"refine"`
}

// BuilderConfig tunes the corridor geometry, in (degrees, degrees, km).
type BuilderConfig struct {
	// ExtraRange pads the coarse bounding box (default: 0.02, 0.02, 20).
	ExtraRange [3]float64 `yaml:"extra_range"`

	// Ranges is the fine corridor box extent (default: 0.05, 0.05, 2).
	Ranges [3]float64 `yaml:"ranges"`
}

// ModelConfig locates the velocity model.
type ModelConfig struct {
	// Path is the velocity-model file (default: ./_input/MOD_H13).
	Path string `yaml:"path"`
}

// SolverConfig selects the Dijkstra engine.
type SolverConfig struct {
	// Mode is "internal" or "external" (default: internal).
	Mode string `yaml:"mode"`

	// BinPath is the external engine binary (external mode only).
	BinPath string `yaml:"bin_path"`

	// EdgeFilePath is where the edge file is written for the external
	// engine (default: ./_input/edges.txt).
	EdgeFilePath string `yaml:"edge_file_path"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the
// travel-time store. An empty Host disables persistence.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// Enabled reports whether a travel-time database is configured.
func (d DatabaseConfig) Enabled() bool { return d.Host != "" }

// BendingConfig locates the pseudo-bending oracle.
type BendingConfig struct {
	// WorkDir contains the pseudo_bending binary and its inputs
	// (default: ./_input).
	WorkDir string `yaml:"work_dir"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Grid:     GridConfig{Refine: 4},
		Builder: BuilderConfig{
			ExtraRange: [3]float64{0.02, 0.02, 20},
			Ranges:     [3]float64{0.05, 0.05, 2},
		},
		Model: ModelConfig{Path: "./_input/MOD_H13"},
		Solver: SolverConfig{
			Mode:         SolverInternal,
			EdgeFilePath: "./_input/edges.txt",
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "disable",
		},
		Bending: BendingConfig{WorkDir: "./_input"},
	}
}

// Load reads path and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Grid.Refine < 1 {
		return fmt.Errorf("%w: grid.refine must be ≥ 1", ErrBadConfig)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("%w: model.path is required", ErrBadConfig)
	}
	switch c.Solver.Mode {
	case SolverInternal:
	case SolverExternal:
		if c.Solver.BinPath == "" {
			return fmt.Errorf("%w: solver.bin_path is required in external mode", ErrBadConfig)
		}
	default:
		return fmt.Errorf("%w: solver.mode %q", ErrBadConfig, c.Solver.Mode)
	}

	return nil
}
