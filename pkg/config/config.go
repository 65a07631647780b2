// Package config defines meshfit's configuration: the data types, their
// defaults, validation, and loading from YAML files and MESHFIT_*
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/chazu/meshfit/pkg/logging"
)

// SphereConfig tunes the bounding sphere solver.
type SphereConfig struct {
	Tolerance float64 `mapstructure:"tolerance"`
	MaxPasses int     `mapstructure:"max_passes"`
}

// KernelConfig tunes the geometry kernel.
type KernelConfig struct {
	// MeshCells is the marching cubes resolution along the longest axis.
	MeshCells int `mapstructure:"mesh_cells"`
}

// EngineConfig tunes the scene evaluator.
type EngineConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the root configuration.
type Config struct {
	Sphere SphereConfig   `mapstructure:"sphere"`
	Kernel KernelConfig   `mapstructure:"kernel"`
	Engine EngineConfig   `mapstructure:"engine"`
	Log    logging.Config `mapstructure:"log"`
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !(c.Sphere.Tolerance > 0) {
		return fmt.Errorf("config: sphere.tolerance must be > 0, got %g", c.Sphere.Tolerance)
	}
	if c.Sphere.MaxPasses < 1 {
		return fmt.Errorf("config: sphere.max_passes must be ≥ 1, got %d", c.Sphere.MaxPasses)
	}
	if c.Kernel.MeshCells < MinMeshCells {
		return fmt.Errorf("config: kernel.mesh_cells must be ≥ %d, got %d", MinMeshCells, c.Kernel.MeshCells)
	}
	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("config: engine.timeout must be positive, got %s", c.Engine.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected console|json", c.Log.Format)
	}
	return nil
}
