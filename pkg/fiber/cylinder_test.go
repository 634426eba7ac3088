package fiber

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestNewCylinder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		coreR   float64
		cladR   float64
		coreN   float64
		cladN   float64
		zMax    float64
		wantErr bool
	}{
		{name: "valid", coreR: 1e-4, cladR: 1.2e-4, coreN: 1.48, cladN: 1.46, zMax: 1.0},
		{name: "zero core radius", coreR: 0, cladR: 1.2e-4, coreN: 1.48, cladN: 1.46, zMax: 1.0, wantErr: true},
		{name: "negative core radius", coreR: -1e-4, cladR: 1.2e-4, coreN: 1.48, cladN: 1.46, zMax: 1.0, wantErr: true},
		{name: "cladding thinner than core", coreR: 1.2e-4, cladR: 1e-4, coreN: 1.48, cladN: 1.46, zMax: 1.0, wantErr: true},
		{name: "zero length", coreR: 1e-4, cladR: 1.2e-4, coreN: 1.48, cladN: 1.46, zMax: 0, wantErr: true},
		{name: "non-positive index", coreR: 1e-4, cladR: 1.2e-4, coreN: 0, cladN: 1.46, zMax: 1.0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCylinder(tt.coreR, tt.cladR, tt.coreN, tt.cladN, tt.zMax, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCylinder error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCylinder_NormalAt(t *testing.T) {
	cyl, err := NewCylinder(2.0, 2.4, 1.48, 1.46, 10.0, 0)
	if err != nil {
		t.Fatalf("NewCylinder failed: %v", err)
	}

	tests := []struct {
		name  string
		point r3.Vec
		want  r3.Vec
	}{
		{name: "positive x wall", point: r3.Vec{X: 2, Y: 0, Z: 3}, want: r3.Vec{X: -1, Y: 0, Z: 0}},
		{name: "negative y wall", point: r3.Vec{X: 0, Y: -2, Z: 7}, want: r3.Vec{X: 0, Y: 1, Z: 0}},
		{name: "diagonal", point: r3.Vec{X: math.Sqrt2, Y: math.Sqrt2, Z: 0}, want: r3.Vec{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2, Z: 0}},
	}

	tolerance := 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cyl.NormalAt(tt.point)
			if !approxEqual(got.X, tt.want.X, tolerance) ||
				!approxEqual(got.Y, tt.want.Y, tolerance) ||
				!approxEqual(got.Z, tt.want.Z, tolerance) {
				t.Errorf("NormalAt(%v) = %v, want %v", tt.point, got, tt.want)
			}
			if !approxEqual(r3.Norm(got), 1.0, tolerance) {
				t.Errorf("NormalAt(%v) norm = %v, want 1", tt.point, r3.Norm(got))
			}
		})
	}
}

func TestCylinder_RadiusAtIsConstant(t *testing.T) {
	cyl, err := NewCylinder(1e-4, 1.2e-4, 1.48, 1.46, 1.0, 0)
	if err != nil {
		t.Fatalf("NewCylinder failed: %v", err)
	}
	for _, z := range []float64{0, 0.25, 0.9999} {
		if got := cyl.RadiusAt(z); got != 1e-4 {
			t.Errorf("RadiusAt(%v) = %v, want 1e-4", z, got)
		}
	}
}

func TestCylinder_WithGeometryAndIndices(t *testing.T) {
	cyl, err := NewCylinder(1e-4, 1.2e-4, 1.48, 1.46, 1.0, 0)
	if err != nil {
		t.Fatalf("NewCylinder failed: %v", err)
	}

	resized, err := cyl.WithGeometry(2e-4, 2.5e-4, 0.5)
	if err != nil {
		t.Fatalf("WithGeometry failed: %v", err)
	}
	if resized.CoreRadius() != 2e-4 || resized.MaxLength() != 0.5 {
		t.Errorf("WithGeometry produced core=%v zMax=%v", resized.CoreRadius(), resized.MaxLength())
	}
	// Original value is untouched.
	if cyl.CoreRadius() != 1e-4 || cyl.MaxLength() != 1.0 {
		t.Errorf("WithGeometry mutated the original: core=%v zMax=%v", cyl.CoreRadius(), cyl.MaxLength())
	}

	reindexed, err := cyl.WithIndices(1.5, 1.4)
	if err != nil {
		t.Fatalf("WithIndices failed: %v", err)
	}
	coreN, cladN := reindexed.Indices()
	if coreN != 1.5 || cladN != 1.4 {
		t.Errorf("WithIndices produced core=%v clad=%v", coreN, cladN)
	}

	if _, err := cyl.WithGeometry(-1, 1, 1); err == nil {
		t.Error("expected error for negative core radius")
	}
}

func TestCylinder_Diffusion(t *testing.T) {
	plain, err := NewCylinder(1e-4, 1.2e-4, 1.48, 1.46, 1.0, 0)
	if err != nil {
		t.Fatalf("NewCylinder failed: %v", err)
	}
	if _, ok := plain.Diffusion(); ok {
		t.Error("expected diffusion to be disabled for a zero angle")
	}

	diffusing, err := NewCylinder(1e-4, 1.2e-4, 1.48, 1.46, 1.0, 0.01)
	if err != nil {
		t.Fatalf("NewCylinder failed: %v", err)
	}
	angle, ok := diffusing.Diffusion()
	if !ok || angle != 0.01 {
		t.Errorf("Diffusion() = %v, %v, want 0.01, true", angle, ok)
	}
}
