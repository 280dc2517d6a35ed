package showreel

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/light"
	"github.com/Carmen-Shannon/oxy-showreel/internal/config"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewStageFromDefaults(t *testing.T) {
	cfg := config.Default()
	s := NewStage(cfg, camera.NewCamera())

	if bg := s.Background(); bg != [4]float32{0, 0, 0, 1} {
		t.Errorf("background = %v, want black", bg)
	}
	objs := s.Objects()
	if len(objs) != 1 {
		t.Fatalf("objects = %d, want the floor only", len(objs))
	}
	floor := objs[0]
	if c := floor.Color(); !mgl32.FloatEqual(c[0], float32(0x44)/255) {
		t.Errorf("floor colour = %v", c)
	}
	for _, m := range floor.Model().Meshes() {
		if m.CastShadow || !m.ReceiveShadow {
			t.Errorf("floor shadows cast=%v receive=%v, want receive only", m.CastShadow, m.ReceiveShadow)
		}
	}

	if amb := s.AmbientColor(); !mgl32.FloatEqual(amb[0], 2.4) {
		t.Errorf("ambient = %v, want 2.4 white", amb)
	}
	sun := s.ShadowCaster()
	if sun == nil || sun.Type() != light.LightTypeDirectional {
		t.Fatalf("shadow caster = %v", sun)
	}
	if sh := sun.Shadow(); sh.MapSize != 1024 || sh.Far != 15 || sh.HalfExtent != 7 || sh.Bias != -0.005 {
		t.Errorf("shadow = %+v", sh)
	}
}

func TestViewpointsKeepOrderAndTiming(t *testing.T) {
	vps := Viewpoints(config.Default())
	if len(vps) != 6 {
		t.Fatalf("len = %d", len(vps))
	}
	if vps[0].Delay != 3 || vps[1].Delay != 0 || vps[3].Duration != 2 {
		t.Errorf("timings = %+v", vps)
	}
	if !vps[1].Position.ApproxEqual(mgl32.Vec3{-3.38, 1.02, -0.18}) {
		t.Errorf("second viewpoint = %v", vps[1].Position)
	}
}
