package config

import (
	"github.com/chazu/meshfit/pkg/bsphere"
	"github.com/chazu/meshfit/pkg/engine"
	"github.com/chazu/meshfit/pkg/kernel/sdfx"
	"github.com/spf13/viper"
)

const (
	DefaultTolerance = bsphere.DefaultTolerance
	DefaultMaxPasses = bsphere.DefaultMaxPasses

	DefaultMeshCells = sdfx.DefaultMeshCells
	MinMeshCells     = sdfx.MinMeshCells

	DefaultEvalTimeout = engine.EvalTimeout

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Default returns a Config populated entirely with defaults.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields that are already set are left unchanged so explicit configuration
// always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Sphere.Tolerance == 0 {
		cfg.Sphere.Tolerance = DefaultTolerance
	}
	if cfg.Sphere.MaxPasses == 0 {
		cfg.Sphere.MaxPasses = DefaultMaxPasses
	}
	if cfg.Kernel.MeshCells == 0 {
		cfg.Kernel.MeshCells = DefaultMeshCells
	}
	if cfg.Engine.Timeout == 0 {
		cfg.Engine.Timeout = DefaultEvalTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// registerDefaults makes every key known to v so that MESHFIT_* variables
// are picked up by Unmarshal even without a config file.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("sphere.tolerance", DefaultTolerance)
	v.SetDefault("sphere.max_passes", DefaultMaxPasses)
	v.SetDefault("kernel.mesh_cells", DefaultMeshCells)
	v.SetDefault("engine.timeout", DefaultEvalTimeout)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}
