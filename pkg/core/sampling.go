package core

import "math"

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or primary sample space replay
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// SampleCosineHemisphere returns a cosine-weighted direction in local coordinates (z up).
// The density in projected solid angle is 1/π.
func SampleCosineHemisphere(sample Vec2) Vec3 {
	disk := SampleConcentricDisk(sample)
	z := math.Sqrt(math.Max(0, 1-disk.X*disk.X-disk.Y*disk.Y))
	return NewVec3(disk.X, disk.Y, z)
}

// SampleConcentricDisk maps a square sample uniformly to the unit disk
// This avoids rejection sampling and preserves stratification
func SampleConcentricDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	ox := 2*sample.X - 1
	oy := 2*sample.Y - 1
	if ox == 0 && oy == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}
