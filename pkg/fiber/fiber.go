// Package fiber describes rotationally symmetric optical waveguide
// boundaries: a straight cylinder and a linearly tapered cone, both
// aligned with the z axis.
package fiber

import "gonum.org/v1/gonum/spatial/r3"

// Fiber is the capability set the tracer needs from a waveguide boundary.
// Implementations are immutable; reconfiguration builds a fresh value.
type Fiber interface {
	// CoreRadius returns the constant radius the tracer intersects against.
	// For a tapered fiber this is the base radius; the intersection step
	// treats the cross-section as constant while NormalAt sees the taper.
	CoreRadius() float64

	// RadiusAt returns the boundary radius at axial coordinate z.
	RadiusAt(z float64) float64

	// MaxLength returns the axial length of the fiber.
	MaxLength() float64

	// Indices returns the core and cladding refractive indices.
	Indices() (coreN, cladN float64)

	// NormalAt returns the unit surface normal at a point assumed to lie
	// on the boundary, pointing from the wall toward the axis.
	NormalAt(point r3.Vec) r3.Vec

	// Diffusion returns the diffuse reflection angle in radians and
	// whether diffusion is configured at all.
	Diffusion() (float64, bool)
}
