package model

import "testing"

func TestNewModelBounds(t *testing.T) {
	m := NewModel(WithName("floor"), WithMeshes(NewPlaneMesh("floor", 10, 10)))
	meshes := m.Meshes()
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	if meshes[0].BoundingMin != [3]float32{-5, 0, -5} || meshes[0].BoundingMax != [3]float32{5, 0, 5} {
		t.Errorf("unexpected bounds %v %v", meshes[0].BoundingMin, meshes[0].BoundingMax)
	}
	if r := m.BoundingRadius(); r < 7.07 || r > 7.08 {
		t.Errorf("BoundingRadius = %f, want ~7.071", r)
	}
}

func TestEnableShadows(t *testing.T) {
	m := NewModel(WithMeshes(NewPlaneMesh("a", 1, 1), NewPlaneMesh("b", 1, 1)))
	m.EnableShadows(true, true)
	for _, mesh := range m.Meshes() {
		if !mesh.CastShadow || !mesh.ReceiveShadow {
			t.Errorf("mesh %s shadows not enabled", mesh.Name)
		}
	}
}

func TestAnimationLookup(t *testing.T) {
	clips := []*AnimationClip{{Name: "idle"}, {Name: "dance"}}
	m := NewModel(WithAnimations(clips))
	if m.AnimationCount() != 2 {
		t.Fatalf("AnimationCount = %d", m.AnimationCount())
	}
	if got := m.GetAnimationIndex("dance"); got != 1 {
		t.Errorf("GetAnimationIndex(dance) = %d", got)
	}
	if got := m.GetAnimationIndex("missing"); got != -1 {
		t.Errorf("GetAnimationIndex(missing) = %d", got)
	}
	if m.Skinned() {
		t.Error("model without skeleton reported as skinned")
	}
}

func TestBoundChannels(t *testing.T) {
	skel := &Skeleton{
		Bones:           []Bone{{Name: "Hips", ParentIndex: -1}, {Name: "Spine", ParentIndex: 0}},
		BoneNameToIndex: map[string]int32{"Hips": 0, "Spine": 1},
	}
	clip := &AnimationClip{Channels: []AnimationChannel{{BoneName: "Hips"}, {BoneName: "Tail"}, {BoneName: "Spine"}}}
	if got := clip.BoundChannels(skel); got != 2 {
		t.Errorf("BoundChannels = %d, want 2", got)
	}
	if got := clip.BoundChannels(nil); got != 0 {
		t.Errorf("BoundChannels(nil) = %d, want 0", got)
	}
}
