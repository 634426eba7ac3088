package fiber

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cylinder is a straight fiber with a constant core radius. Lengths are in
// meters, angles in radians.
type Cylinder struct {
	coreR     float64
	cladR     float64
	coreN     float64
	cladN     float64
	zMax      float64
	diffusion float64 // 0 means ideal mirror reflection
}

// NewCylinder creates a cylindrical fiber. A zero diffusion angle disables
// diffuse reflection.
func NewCylinder(coreR, cladR, coreN, cladN, zMax, diffusion float64) (*Cylinder, error) {
	if coreR <= 0 {
		return nil, fmt.Errorf("core radius must be positive, got %g", coreR)
	}
	if cladR < coreR {
		return nil, fmt.Errorf("cladding radius %g must be at least the core radius %g", cladR, coreR)
	}
	if zMax <= 0 {
		return nil, fmt.Errorf("fiber length must be positive, got %g", zMax)
	}
	if coreN <= 0 || cladN <= 0 {
		return nil, fmt.Errorf("refractive indices must be positive, got core=%g clad=%g", coreN, cladN)
	}

	return &Cylinder{
		coreR:     coreR,
		cladR:     cladR,
		coreN:     coreN,
		cladN:     cladN,
		zMax:      zMax,
		diffusion: diffusion,
	}, nil
}

// WithGeometry returns a copy with replaced radii and length.
func (c *Cylinder) WithGeometry(coreR, cladR, zMax float64) (*Cylinder, error) {
	return NewCylinder(coreR, cladR, c.coreN, c.cladN, zMax, c.diffusion)
}

// WithIndices returns a copy with replaced refractive indices.
func (c *Cylinder) WithIndices(coreN, cladN float64) (*Cylinder, error) {
	return NewCylinder(c.coreR, c.cladR, coreN, cladN, c.zMax, c.diffusion)
}

// CoreRadius returns the core radius.
func (c *Cylinder) CoreRadius() float64 { return c.coreR }

// CladRadius returns the cladding radius.
func (c *Cylinder) CladRadius() float64 { return c.cladR }

// RadiusAt returns the core radius; a cylinder has no taper.
func (c *Cylinder) RadiusAt(z float64) float64 { return c.coreR }

// MaxLength returns the axial length of the fiber.
func (c *Cylinder) MaxLength() float64 { return c.zMax }

// Indices returns the core and cladding refractive indices.
func (c *Cylinder) Indices() (coreN, cladN float64) { return c.coreN, c.cladN }

// NormalAt returns the inward radial normal, independent of z.
func (c *Cylinder) NormalAt(point r3.Vec) r3.Vec {
	norm := math.Hypot(point.X, point.Y)
	return r3.Vec{X: -point.X / norm, Y: -point.Y / norm}
}

// Diffusion returns the diffuse reflection angle and whether it is enabled.
func (c *Cylinder) Diffusion() (float64, bool) {
	return c.diffusion, c.diffusion != 0
}
