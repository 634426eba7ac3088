package fiber

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cone is a tapered fiber whose boundary radius changes linearly from the
// base radius at z = 0 to the top radius at z = zMax.
type Cone struct {
	baseR     float64
	topR      float64
	coreN     float64
	cladN     float64
	zMax      float64
	diffusion float64

	// Cached derived values
	angle float64 // taper half-angle, asin((baseR - topR) / zMax)
	c     float64 // tan(angle)
}

// NewCone creates a conical fiber. The taper must satisfy
// |baseR - topR| <= zMax so the half-angle is defined; a negative taper
// (topR > baseR) describes an expanding fiber.
func NewCone(zMax, baseR, topR, coreN, cladN, diffusion float64) (*Cone, error) {
	if zMax <= 0 {
		return nil, fmt.Errorf("fiber length must be positive, got %g", zMax)
	}
	if baseR <= 0 || topR <= 0 {
		return nil, fmt.Errorf("radii must be positive, got base=%g top=%g", baseR, topR)
	}
	if baseR == topR {
		return nil, fmt.Errorf("base and top radii are equal (%g); use Cylinder for a straight fiber", baseR)
	}
	if coreN <= 0 || cladN <= 0 {
		return nil, fmt.Errorf("refractive indices must be positive, got core=%g clad=%g", coreN, cladN)
	}
	sin := (baseR - topR) / zMax
	if sin < -1 || sin > 1 {
		return nil, fmt.Errorf("taper |base-top| = %g exceeds fiber length %g", math.Abs(baseR-topR), zMax)
	}

	angle := math.Asin(sin)
	return &Cone{
		baseR:     baseR,
		topR:      topR,
		coreN:     coreN,
		cladN:     cladN,
		zMax:      zMax,
		diffusion: diffusion,
		angle:     angle,
		c:         math.Tan(angle),
	}, nil
}

// WithGeometry returns a copy with replaced length and radii, recomputing
// the derived taper angle.
func (c *Cone) WithGeometry(zMax, baseR, topR float64) (*Cone, error) {
	return NewCone(zMax, baseR, topR, c.coreN, c.cladN, c.diffusion)
}

// WithIndices returns a copy with replaced refractive indices.
func (c *Cone) WithIndices(coreN, cladN float64) (*Cone, error) {
	return NewCone(c.zMax, c.baseR, c.topR, coreN, cladN, c.diffusion)
}

// CoreRadius returns the base radius, the constant cross-section the tracer
// intersects against.
func (c *Cone) CoreRadius() float64 { return c.baseR }

// Angle returns the taper half-angle in radians.
func (c *Cone) Angle() float64 { return c.angle }

// RadiusAt returns the boundary radius at axial coordinate z.
func (c *Cone) RadiusAt(z float64) float64 {
	return c.baseR - z*math.Sin(c.angle)
}

// MaxLength returns the axial length of the fiber.
func (c *Cone) MaxLength() float64 { return c.zMax }

// Indices returns the core and cladding refractive indices.
func (c *Cone) Indices() (coreN, cladN float64) { return c.coreN, c.cladN }

// NormalAt returns the inward normal of the slanted wall. The axial
// component couples z into the normal so reflections see the taper.
func (c *Cone) NormalAt(point r3.Vec) r3.Vec {
	zc := -c.c * c.c * (point.Z - c.baseR/c.c)
	n := r3.Vec{X: point.X, Y: point.Y, Z: zc}
	return r3.Scale(-1/r3.Norm(n), n)
}

// Diffusion returns the diffuse reflection angle and whether it is enabled.
func (c *Cone) Diffusion() (float64, bool) {
	return c.diffusion, c.diffusion != 0
}
