// Package config handles loading tracing runs from YAML files.
package config

import (
	"fmt"

	"github.com/df07/go-fiber-raytracer/pkg/fiber"
	"github.com/df07/go-fiber-raytracer/pkg/trace"
)

// Config holds all settings for a tracing run.
type Config struct {
	Fiber FiberConfig `yaml:"fiber"`
	Trace TraceConfig `yaml:"trace"`
	Batch BatchConfig `yaml:"batch"`
}

// FiberConfig describes the waveguide geometry. Cylinder fibers use
// core_radius/clad_radius; cone fibers use base_radius/top_radius.
type FiberConfig struct {
	Shape      string  `yaml:"shape"` // "cylinder" or "cone"
	CoreRadius float64 `yaml:"core_radius"`
	CladRadius float64 `yaml:"clad_radius"`
	BaseRadius float64 `yaml:"base_radius"`
	TopRadius  float64 `yaml:"top_radius"`
	CoreIndex  float64 `yaml:"core_index"`
	CladIndex  float64 `yaml:"clad_index"`
	Length     float64 `yaml:"length"`
	Diffusion  float64 `yaml:"diffusion"` // radians, 0 disables
}

// TraceConfig holds per-trace settings.
type TraceConfig struct {
	MaxReflections   int  `yaml:"max_reflections"`
	AngleElimination bool `yaml:"angle_elimination"`
	Verbose          bool `yaml:"verbose"`
}

// BatchConfig holds batch fan-out settings.
type BatchConfig struct {
	Rays           int     `yaml:"rays"`
	Workers        int     `yaml:"workers"`
	MaxLatitudeDeg float64 `yaml:"max_latitude_deg"`
	Seed           int64   `yaml:"seed"`
}

// Default returns a Config with sensible default values: a telecom-like
// straight fiber and the standard trace limits.
func Default() *Config {
	return &Config{
		Fiber: FiberConfig{
			Shape:      "cylinder",
			CoreRadius: 1e-4,
			CladRadius: 1.2e-4,
			CoreIndex:  1.48,
			CladIndex:  1.46,
			Length:     1.0,
		},
		Trace: TraceConfig{
			MaxReflections:   1000,
			AngleElimination: true,
		},
		Batch: BatchConfig{
			Rays:           1000,
			MaxLatitudeDeg: 30,
			Seed:           1,
		},
	}
}

// Build constructs the fiber geometry this configuration describes.
func (fc FiberConfig) Build() (fiber.Fiber, error) {
	switch fc.Shape {
	case "cylinder", "":
		return fiber.NewCylinder(fc.CoreRadius, fc.CladRadius, fc.CoreIndex, fc.CladIndex, fc.Length, fc.Diffusion)
	case "cone":
		return fiber.NewCone(fc.Length, fc.BaseRadius, fc.TopRadius, fc.CoreIndex, fc.CladIndex, fc.Diffusion)
	default:
		return nil, fmt.Errorf("unknown fiber shape %q (want cylinder or cone)", fc.Shape)
	}
}

// ToTrace converts the trace section into a trace.Config.
func (tc TraceConfig) ToTrace() trace.Config {
	return trace.Config{
		MaxReflections:   tc.MaxReflections,
		AngleElimination: tc.AngleElimination,
		Verbose:          tc.Verbose,
	}
}

// ToBatch converts the batch section into a trace.BatchConfig.
func (bc BatchConfig) ToBatch() trace.BatchConfig {
	return trace.BatchConfig{
		Rays:           bc.Rays,
		Workers:        bc.Workers,
		MaxLatitudeDeg: bc.MaxLatitudeDeg,
		Seed:           bc.Seed,
	}
}
