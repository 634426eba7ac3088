// Package trace implements geometric ray propagation inside fiber
// boundaries: ray state, boundary intersection, mirror reflection and the
// stepwise trajectory simulation.
package trace

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-fiber-raytracer/pkg/core"
)

// Ray is the state of a propagating ray: azimuth and latitude (zenith)
// angles in radians plus the current position. The direction vector is
// always derived from the angles; the angles are the source of truth.
type Ray struct {
	Azimuth  float64
	Latitude float64
	Origin   r3.Vec
}

// NewRay creates a ray from propagation angles (radians) and a start point.
func NewRay(azimuth, latitude float64, origin r3.Vec) Ray {
	return Ray{Azimuth: azimuth, Latitude: latitude, Origin: origin}
}

// Direction returns the unit direction vector derived from the angles.
func (r Ray) Direction() r3.Vec {
	sinLat, cosLat := math.Sincos(r.Latitude)
	sinAz, cosAz := math.Sincos(r.Azimuth)
	return r3.Vec{X: sinLat * cosAz, Y: sinLat * sinAz, Z: cosLat}
}

// SetValues replaces angles and position in one step.
func (r *Ray) SetValues(azimuth, latitude float64, origin r3.Vec) {
	r.Azimuth = azimuth
	r.Latitude = latitude
	r.Origin = origin
}

// SetAngles replaces the propagation angles.
func (r *Ray) SetAngles(azimuth, latitude float64) {
	r.Azimuth = azimuth
	r.Latitude = latitude
}

// SetStart replaces the start point.
func (r *Ray) SetStart(x, y, z float64) {
	r.Origin = r3.Vec{X: x, Y: y, Z: z}
}

// RandomStart samples a start point at z = 0: angle uniform in [0, π) and
// radius uniform in [0, radius). This covers a half-disk, matching the
// historical launch distribution.
func (r *Ray) RandomStart(s core.Sampler, radius float64) {
	u, v := s.Get2D()
	phi := u * math.Pi
	rad := v * radius
	sinPhi, cosPhi := math.Sincos(phi)
	r.Origin = r3.Vec{X: rad * cosPhi, Y: rad * sinPhi}
}

// RandomAngles samples latitude uniformly in [0, maxLatitudeDeg] degrees
// and azimuth uniformly in [0, 360) degrees, storing both in radians.
func (r *Ray) RandomAngles(s core.Sampler, maxLatitudeDeg float64) {
	u, v := s.Get2D()
	r.Latitude = degToRad(u * maxLatitudeDeg)
	r.Azimuth = degToRad(v * 360)
}

// AnglesFromDirection inverts Direction: latitude = acos(v.Z) and the
// azimuth sign is resolved from the transverse y component. An axis-aligned
// direction (latitude 0) has azimuth defined as 0.
func AnglesFromDirection(v r3.Vec) (azimuth, latitude float64) {
	latitude = math.Acos(v.Z)
	if latitude == 0 {
		return 0, 0
	}
	transverse := math.Hypot(v.X, v.Y)
	azimuth = math.Acos(v.X / transverse)
	if v.Y/transverse <= 0 {
		azimuth = -azimuth
	}
	return azimuth, latitude
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }
