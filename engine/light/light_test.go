package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOnlyDirectionalLightsCastShadows(t *testing.T) {
	tests := []struct {
		name      string
		lightType LightType
		want      bool
	}{
		{"ambient", LightTypeAmbient, false},
		{"directional", LightTypeDirectional, true},
		{"point", LightTypePoint, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLight(tt.lightType, WithCastsShadows(true))
			if got := l.CastsShadows(); got != tt.want {
				t.Errorf("CastsShadows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirectionPointsAtTarget(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(5, 5, 5), WithTarget(0, 0, 0))
	want := mgl32.Vec3{-1, -1, -1}.Normalize()
	if got := l.Direction(); !got.ApproxEqual(want) {
		t.Errorf("Direction() = %v, want %v", got, want)
	}
}

func TestShadowMatrixCentresTarget(t *testing.T) {
	l := NewLight(LightTypeDirectional,
		WithPosition(5, 5, 5),
		WithTarget(0, 0, 0),
		WithCastsShadows(true),
	)
	clip := l.ShadowMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !mgl32.FloatEqualThreshold(clip.X(), 0, 1e-4) || !mgl32.FloatEqualThreshold(clip.Y(), 0, 1e-4) {
		t.Errorf("target projects to (%v, %v), want centre", clip.X(), clip.Y())
	}
	if clip.Z() < -1 || clip.Z() > 1 {
		t.Errorf("target depth %v outside the shadow frustum", clip.Z())
	}
}

func TestShadowMatrixIdentityWithoutShadows(t *testing.T) {
	l := NewLight(LightTypePoint)
	if got := l.ShadowMatrix(); got != mgl32.Ident4() {
		t.Errorf("ShadowMatrix() = %v, want identity", got)
	}
}

func TestWithShadowKeepsDefaultsForZeroFields(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithShadow(Shadow{MapSize: 2048}))
	s := l.Shadow()
	if s.MapSize != 2048 {
		t.Errorf("MapSize = %d, want 2048", s.MapSize)
	}
	if s.Far != DefaultShadowFar || s.HalfExtent != DefaultShadowHalfExtent || s.Bias != DefaultShadowBias {
		t.Errorf("Shadow() = %+v, want defaults besides MapSize", s)
	}
}
