package trace

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-fiber-raytracer/pkg/core"
)

// Reflect mirrors the ray's direction about the surface normal and returns
// the reflected propagation angles plus the signed incidence cosine n·v.
// The incidence cosine is both the reported reflection angle and, via its
// absolute complement to π/2, the value compared against the critical angle.
func Reflect(r Ray, normal r3.Vec) (azimuth, latitude, incidence float64) {
	v := r.Direction()
	incidence = r3.Dot(normal, v)
	reflected := r3.Sub(v, r3.Scale(2*incidence, normal))
	azimuth, latitude = AnglesFromDirection(reflected)
	return azimuth, latitude, incidence
}

// Diffuse perturbs both angles by independent uniform draws from
// [-diffusion, +diffusion], modeling a scattering reflective surface.
func Diffuse(azimuth, latitude, diffusion float64, s core.Sampler) (float64, float64) {
	u, v := s.Get2D()
	azimuth += (u - 0.5) * 2 * diffusion
	latitude += (v - 0.5) * 2 * diffusion
	return azimuth, latitude
}
