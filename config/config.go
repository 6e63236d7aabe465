// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Rules     RulesConfig     `yaml:"rules"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the simulation domain parameters.
type WorldConfig struct {
	ParticleCount int     `yaml:"particle_count"` // Number of boids in the field
	SceneScale    float64 `yaml:"scene_scale"`    // Domain half-extent; positions wrap at ±scene_scale
}

// PhysicsConfig holds integration and scheduling parameters.
type PhysicsConfig struct {
	DT        float64 `yaml:"dt"`         // Seconds advanced per step
	BatchSize int     `yaml:"batch_size"` // Work-unit batch for parallel dispatch
}

// RulesConfig holds the three flocking rule parameters.
// Each rule applies to neighbors closer than its distance; its contribution
// is weighted by the matching scale.
type RulesConfig struct {
	Rule1Distance float64 `yaml:"rule1_distance"` // Cohesion radius
	Rule2Distance float64 `yaml:"rule2_distance"` // Separation radius
	Rule3Distance float64 `yaml:"rule3_distance"` // Alignment radius
	Rule1Scale    float64 `yaml:"rule1_scale"`    // Cohesion strength
	Rule2Scale    float64 `yaml:"rule2_scale"`    // Separation strength
	Rule3Scale    float64 `yaml:"rule3_scale"`    // Alignment strength
	MaxSpeed      float64 `yaml:"max_speed"`      // Hard speed limit after rule application
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // Steps per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Steps averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
// Grid geometry follows from the rule radii: the cell width is twice the
// largest radius, so any neighbor within range lies in an adjacent cell.
type DerivedConfig struct {
	DT32          float32 // Physics.DT as float32
	SceneScale32  float32 // World.SceneScale as float32
	MaxSpeed32    float32 // Rules.MaxSpeed as float32
	CellWidth     float32 // 2 × max(rule distances)
	GridSideCount int32   // Cells per axis
	GridCellCount int32   // GridSideCount³
	GridMin       float32 // Minimum corner of the grid, per axis
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.SceneScale32 = float32(c.World.SceneScale)
	c.Derived.MaxSpeed32 = float32(c.Rules.MaxSpeed)

	maxDist := c.Rules.Rule1Distance
	if c.Rules.Rule2Distance > maxDist {
		maxDist = c.Rules.Rule2Distance
	}
	if c.Rules.Rule3Distance > maxDist {
		maxDist = c.Rules.Rule3Distance
	}

	cellWidth := float32(2.0 * maxDist)
	// halfSideCount cells cover [0, sceneScale] per axis, plus one cell of
	// slack so positions right at the wrap boundary still index in range.
	halfSideCount := int32(c.Derived.SceneScale32/cellWidth) + 1

	c.Derived.CellWidth = cellWidth
	c.Derived.GridSideCount = 2 * halfSideCount
	c.Derived.GridCellCount = c.Derived.GridSideCount * c.Derived.GridSideCount * c.Derived.GridSideCount
	c.Derived.GridMin = -cellWidth * float32(halfSideCount)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
