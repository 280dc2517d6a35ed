package light

import "github.com/go-gl/mathgl/mgl32"

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const ShadowMapResolution = 1024

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of the directional light shadow frustum.
const DefaultShadowHalfExtent float32 = 7.0

// DefaultShadowNear is the default near plane for the directional light's
// orthographic shadow projection.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 15.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = -0.005

// Shadow holds the directional shadow frustum and depth-map settings.
type Shadow struct {
	MapSize    int
	HalfExtent float32
	Near       float32
	Far        float32
	Bias       float32
}

// DefaultShadow returns the default shadow settings.
func DefaultShadow() Shadow {
	return Shadow{
		MapSize:    ShadowMapResolution,
		HalfExtent: DefaultShadowHalfExtent,
		Near:       DefaultShadowNear,
		Far:        DefaultShadowFar,
		Bias:       DefaultShadowBias,
	}
}

// viewProjection builds the orthographic light-space matrix looking from eye toward target.
func (s Shadow) viewProjection(eye, target mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if dir := target.Sub(eye); dir.Len() > 0 && mgl32.Abs(dir.Normalize().Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(eye, target, up)
	e := s.HalfExtent
	proj := mgl32.Ortho(-e, e, -e, e, s.Near, s.Far)
	return proj.Mul4(view)
}
