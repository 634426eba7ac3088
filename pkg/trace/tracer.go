package trace

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-fiber-raytracer/pkg/core"
	"github.com/df07/go-fiber-raytracer/pkg/fiber"
)

// Reason explains why a trajectory stopped.
type Reason int

const (
	// ReasonMaxLength means the ray reached the end of the fiber.
	ReasonMaxLength Reason = iota
	// ReasonCriticalAngle means the incidence angle left the
	// total-internal-reflection regime and the ray leaked into the cladding.
	ReasonCriticalAngle
	// ReasonReflectionBudget means the maximum reflection count was
	// exhausted before the ray exited or leaked.
	ReasonReflectionBudget
)

func (r Reason) String() string {
	switch r {
	case ReasonMaxLength:
		return "reached-max-length"
	case ReasonCriticalAngle:
		return "exceeded-critical-angle"
	case ReasonReflectionBudget:
		return "exceeded-reflection-budget"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// AngleRecord is the propagation state recorded at one reflection, in
// degrees. Incidence is the absolute incidence cosine of the reflection
// that produced this entry (0 for the start point).
type AngleRecord struct {
	AzimuthDeg   float64
	LatitudeDeg  float64
	IncidenceDeg float64
}

// Trajectory is the result of one traced ray. Points and Angles are
// parallel, allocated at full MaxReflections capacity and zero-filled past
// Count. A Trajectory is read-only after creation and owned by the caller.
type Trajectory struct {
	Points []r3.Vec
	Angles []AngleRecord
	Count  int
	Reason Reason
}

// Config controls a trace call.
type Config struct {
	MaxReflections   int         // reflection budget; <= 0 means the default of 1000
	AngleElimination bool        // terminate rays whose incidence leaves the TIR regime
	Verbose          bool        // log human-readable termination explanations
	Logger           *zap.Logger // destination for Verbose output; nil picks a default
}

// DefaultConfig returns the standard trace configuration: a budget of 1000
// reflections, angle elimination on, diagnostics off.
func DefaultConfig() Config {
	return Config{
		MaxReflections:   1000,
		AngleElimination: true,
	}
}

// Tracer simulates ray trajectories inside one immutable fiber geometry.
// Trace only reads shared state, so a single Tracer may serve any number of
// goroutines concurrently.
type Tracer struct {
	fiber         fiber.Fiber
	config        Config
	criticalAngle float64
	logger        *zap.Logger
}

// NewTracer validates the geometry's refractive indices and prepares a
// tracer. The critical angle asin(cladN/coreN) requires cladN <= coreN.
func NewTracer(f fiber.Fiber, cfg Config) (*Tracer, error) {
	coreN, cladN := f.Indices()
	if coreN <= 0 || cladN <= 0 {
		return nil, fmt.Errorf("refractive indices must be positive, got core=%g clad=%g", coreN, cladN)
	}
	if cladN > coreN {
		return nil, fmt.Errorf("cladding index %g exceeds core index %g: critical angle undefined", cladN, coreN)
	}
	if cfg.MaxReflections <= 0 {
		cfg.MaxReflections = 1000
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Verbose {
			logger = zap.Must(zap.NewDevelopment())
		} else {
			logger = zap.NewNop()
		}
	}

	return &Tracer{
		fiber:         f,
		config:        cfg,
		criticalAngle: math.Asin(cladN / coreN),
		logger:        logger,
	}, nil
}

// Trace simulates one ray until it exits the far end, leaks past the
// critical angle, or exhausts the reflection budget. The sampler is only
// consulted when the fiber configures diffusion and may be nil otherwise.
func (t *Tracer) Trace(ray Ray, s core.Sampler) (*Trajectory, error) {
	zMax := t.fiber.MaxLength()
	coreR := t.fiber.CoreRadius()
	diffusion, diffuse := t.fiber.Diffusion()
	if diffuse && s == nil {
		return nil, fmt.Errorf("fiber configures a diffusion angle but no sampler was provided")
	}

	traj := &Trajectory{
		Points: make([]r3.Vec, t.config.MaxReflections),
		Angles: make([]AngleRecord, t.config.MaxReflections),
	}
	traj.Points[0] = ray.Origin
	traj.Angles[0] = AngleRecord{
		AzimuthDeg:  radToDeg(ray.Azimuth),
		LatitudeDeg: radToDeg(ray.Latitude),
	}

	// Reported if the ray runs out the far end before its next reflection.
	incidence := ray.Latitude

	for i := 1; i < t.config.MaxReflections; i++ {
		point, err := Intersect(ray, coreR)
		if err != nil {
			return nil, fmt.Errorf("reflection %d: %w", i, err)
		}

		if ray.Latitude == 0 {
			// Axial ray: the intersector's z = -1 sentinel. It never meets
			// the wall and runs straight to the far end.
			point = r3.Vec{X: point.X, Y: point.Y, Z: zMax}
			return t.finish(traj, i, point, ray.Azimuth, ray.Latitude, incidence, ReasonMaxLength), nil
		}

		if point.Z > zMax {
			// Clip the exit point back to exactly zMax along the current
			// direction and keep the previous reflection's incidence.
			v := ray.Direction()
			point = r3.Sub(point, r3.Scale((point.Z-zMax)/v.Z, v))
			return t.finish(traj, i, point, ray.Azimuth, ray.Latitude, incidence, ReasonMaxLength), nil
		}

		normal := t.fiber.NormalAt(point)
		azimuth, latitude, inc := Reflect(ray, normal)
		incidence = inc
		if diffuse {
			azimuth, latitude = Diffuse(azimuth, latitude, diffusion, s)
		}

		traj.Points[i] = point
		traj.Angles[i] = AngleRecord{
			AzimuthDeg:   radToDeg(azimuth),
			LatitudeDeg:  radToDeg(latitude),
			IncidenceDeg: radToDeg(math.Abs(incidence)),
		}

		if t.config.AngleElimination && math.Pi/2-math.Abs(incidence) < t.criticalAngle {
			traj.Count = i + 1
			traj.Reason = ReasonCriticalAngle
			if t.config.Verbose {
				t.logger.Info("ray leaked past the critical angle",
					zap.Int("reflections", traj.Count),
					zap.Float64("criticalAngleDeg", radToDeg(t.criticalAngle)),
					zap.Float64("incidenceDeg", radToDeg(math.Pi/2-math.Abs(incidence))),
				)
			}
			return traj, nil
		}

		ray.SetValues(azimuth, latitude, point)
	}

	traj.Count = t.config.MaxReflections
	traj.Reason = ReasonReflectionBudget
	if t.config.Verbose {
		t.logger.Info("ray exhausted the reflection budget",
			zap.Int("maxReflections", t.config.MaxReflections))
	}
	return traj, nil
}

// finish records the terminal max-length entry and closes out the trajectory.
func (t *Tracer) finish(traj *Trajectory, i int, point r3.Vec, azimuth, latitude, incidence float64, reason Reason) *Trajectory {
	traj.Points[i] = point
	traj.Angles[i] = AngleRecord{
		AzimuthDeg:   radToDeg(azimuth),
		LatitudeDeg:  radToDeg(latitude),
		IncidenceDeg: radToDeg(math.Abs(incidence)),
	}
	traj.Count = i + 1
	traj.Reason = reason
	if t.config.Verbose {
		t.logger.Info("ray reached the end of the fiber",
			zap.Int("reflections", traj.Count),
			zap.Float64("z", point.Z),
		)
	}
	return traj
}
