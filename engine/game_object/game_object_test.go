package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

func TestWorldMatrixAppliesScaleThenTranslation(t *testing.T) {
	obj := NewGameObject(WithUniformScale(0.01), WithPosition(-0.2, 0, -0.2))

	p := obj.WorldMatrix().Mul4x1(mgl32.Vec4{100, 100, 0, 1})
	want := mgl32.Vec4{0.8, 1, -0.2, 1}
	if !p.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("transformed point = %v, want %v", p, want)
	}
}

func TestNameDefaultsToModelName(t *testing.T) {
	m := model.NewModel(model.WithName("Character"))
	if got := NewGameObject(WithModel(m)).Name(); got != "Character" {
		t.Errorf("Name() = %q, want %q", got, "Character")
	}
	if got := NewGameObject(WithModel(m), WithName("hero")).Name(); got != "hero" {
		t.Errorf("Name() = %q, want %q", got, "hero")
	}
}

func TestEnableShadowsReachesEveryMesh(t *testing.T) {
	m := model.NewModel(model.WithMeshes(
		model.NewPlaneMesh("a", 1, 1),
		model.NewPlaneMesh("b", 1, 1),
	))
	obj := NewGameObject(WithModel(m))
	obj.EnableShadows(true, true)

	for _, mesh := range m.Meshes() {
		if !mesh.CastShadow || !mesh.ReceiveShadow {
			t.Errorf("mesh %q cast=%v receive=%v, want both true", mesh.Name, mesh.CastShadow, mesh.ReceiveShadow)
		}
	}
}

func TestEnableShadowsWithoutModel(t *testing.T) {
	NewGameObject().EnableShadows(true, true)
}
