package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showreel/engine/light"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := NewScene("showreel", WithObjects(game_object.NewGameObject(game_object.WithName("floor"))))
	id := s.Add(game_object.NewGameObject(game_object.WithName("character")))

	if id != 2 {
		t.Errorf("Add() = %d, want 2", id)
	}
	objs := s.Objects()
	if len(objs) != 2 || objs[0].Name() != "floor" || objs[1].Name() != "character" {
		t.Fatalf("Objects() names = %v, want [floor character]", names(objs))
	}
	if s.Get(id) != objs[1] {
		t.Error("Get(id) did not return the added object")
	}

	s.Remove(1)
	if s.Count() != 1 || s.Get(1) != nil {
		t.Errorf("after Remove(1): Count() = %d, Get(1) = %v", s.Count(), s.Get(1))
	}
	if s.Add(nil) != 0 {
		t.Error("Add(nil) should return 0")
	}
}

func TestAddSkipsTakenIDs(t *testing.T) {
	pinned := game_object.NewGameObject()
	pinned.SetID(1)
	s := NewScene("s", WithObjects(pinned))

	if id := s.Add(game_object.NewGameObject()); id != 2 {
		t.Errorf("Add() = %d, want 2", id)
	}
}

func TestAmbientAndShadowCaster(t *testing.T) {
	ambient := light.NewLight(light.LightTypeAmbient, light.WithIntensity(2.4))
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(5, 5, 5),
		light.WithIntensity(1.8),
		light.WithCastsShadows(true),
	)
	s := NewScene("s", WithLights(ambient, sun))

	if got := s.AmbientColor(); got != [3]float32{2.4, 2.4, 2.4} {
		t.Errorf("AmbientColor() = %v, want 2.4 grey", got)
	}
	if s.ShadowCaster() != sun {
		t.Error("ShadowCaster() did not return the directional light")
	}

	sun.SetEnabled(false)
	if s.ShadowCaster() != nil {
		t.Error("disabled light still reported as shadow caster")
	}
	s.RemoveLight(ambient)
	if len(s.Lights()) != 1 {
		t.Errorf("Lights() = %d entries, want 1", len(s.Lights()))
	}
}

func names(objs []game_object.GameObject) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name()
	}
	return out
}
