package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 converts a plain [3]float32 (as found in config files and glTF accessors) to an mgl32.Vec3.
//
// Parameters:
//   - v: the x, y, z components
//
// Returns:
//   - mgl32.Vec3: the converted vector
func Vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Lerp3 linearly interpolates between a and b.
// t is not clamped so eased values that overshoot are passed through untouched.
//
// Parameters:
//   - a: start vector (t = 0)
//   - b: end vector (t = 1)
//   - t: interpolation parameter
//
// Returns:
//   - mgl32.Vec3: a + (b - a) * t
func Lerp3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// ToSpherical decomposes an offset from an orbit pivot into radius, azimuth and elevation.
// Azimuth is measured around +Y starting at +Z, elevation from the horizontal plane.
//
// Parameters:
//   - offset: position minus pivot
//
// Returns:
//   - radius: length of the offset
//   - azimuth: horizontal angle in radians
//   - elevation: vertical angle in radians
func ToSpherical(offset mgl32.Vec3) (radius, azimuth, elevation float32) {
	radius = offset.Len()
	if radius < 1e-8 {
		return 0, 0, 0
	}
	azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	elevation = float32(math.Asin(float64(mgl32.Clamp(offset.Y()/radius, -1, 1))))
	return radius, azimuth, elevation
}

// FromSpherical is the inverse of ToSpherical.
//
// Parameters:
//   - radius: distance from the pivot
//   - azimuth: horizontal angle in radians
//   - elevation: vertical angle in radians
//
// Returns:
//   - mgl32.Vec3: the offset from the pivot
func FromSpherical(radius, azimuth, elevation float32) mgl32.Vec3 {
	cosElev := float32(math.Cos(float64(elevation)))
	sinElev := float32(math.Sin(float64(elevation)))
	cosAzim := float32(math.Cos(float64(azimuth)))
	sinAzim := float32(math.Sin(float64(azimuth)))
	return mgl32.Vec3{
		radius * cosElev * sinAzim,
		radius * sinElev,
		radius * cosElev * cosAzim,
	}
}

// HexColor parses "#rrggbb" (or "rrggbb") into RGBA components in [0, 1] with alpha 1.
//
// Parameters:
//   - hex: the colour string
//
// Returns:
//   - [4]float32: the colour components
//   - bool: false if the string is malformed
func HexColor(hex string) ([4]float32, bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return [4]float32{}, false
	}
	var out [4]float32
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(hex[i*2])
		lo, ok2 := hexNibble(hex[i*2+1])
		if !ok1 || !ok2 {
			return [4]float32{}, false
		}
		out[i] = float32(hi<<4|lo) / 255
	}
	out[3] = 1
	return out, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
