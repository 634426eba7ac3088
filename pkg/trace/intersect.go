package trace

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoIntersection reports that a ray's line never reaches the boundary
// from its current position (negative discriminant). The simulation step
// has no defined result in that case.
var ErrNoIntersection = errors.New("ray does not intersect the core boundary")

// Intersect solves for the forward point where the ray's line exits the
// cylinder of the given radius about the z axis. The transverse circle-line
// quadratic is solved in 2D and extended to 3D via the latitude cotangent,
// taking the larger (forward) root.
//
// Axial rays (latitude 0) never leave the core transversally; they return
// the current x, y with the sentinel z = -1, which the tracer resolves to a
// max-length termination.
func Intersect(r Ray, coreRadius float64) (r3.Vec, error) {
	if r.Latitude == 0 {
		return r3.Vec{X: r.Origin.X, Y: r.Origin.Y, Z: -1}, nil
	}

	x0, y0, z0 := r.Origin.X, r.Origin.Y, r.Origin.Z
	sinAz, cosAz := math.Sincos(r.Azimuth)
	gamma := cosAz*x0 + sinAz*y0
	disc := gamma*gamma - x0*x0 - y0*y0 + coreRadius*coreRadius
	if disc < 0 {
		return r3.Vec{}, ErrNoIntersection
	}

	t := -gamma + math.Sqrt(disc)
	cot := math.Cos(r.Latitude) / math.Sin(r.Latitude)
	return r3.Vec{
		X: x0 + cosAz*t,
		Y: y0 + sinAz*t,
		Z: z0 + cot*t,
	}, nil
}
