package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
)

// riggedTriangle is a self-contained glTF with one triangle, a two-joint skin and a
// single translation animation on the "Hips" joint lasting 1.5 seconds.
const riggedTriangle = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "Rig", "nodes": [0]}],
  "nodes": [
    {"name": "Root", "children": [1]},
    {"name": "Hips", "mesh": 0, "translation": [0, 1, 0]}
  ],
  "skins": [{"joints": [0, 1]}],
  "meshes": [{"name": "Body", "primitives": [{"attributes": {"POSITION": 0}}]}],
  "animations": [{
    "name": "Wave",
    "samplers": [{"input": 1, "output": 2, "interpolation": "LINEAR"}],
    "channels": [{"sampler": 0, "target": {"node": 1, "path": "translation"}}]
  }],
  "buffers": [{"byteLength": 68, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAAAAAAAwD8AAAAAAAAAAAAAAAAAAAAAAAAAQAAAAAA="}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 8},
    {"buffer": 0, "byteOffset": 44, "byteLength": 24}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 2, "type": "SCALAR", "min": [0], "max": [1.5]},
    {"bufferView": 2, "componentType": 5126, "count": 2, "type": "VEC3"}
  ]
}`

func TestLoadUnsupportedFormat(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	_, err := l.Load("Character/Hip Hop Dancing(skin).fbx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	_, err := l.Load("testdata/does-not-exist.glb")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("missing file reported as unsupported format: %v", err)
	}
}

func TestLoadReturnsCachedModel(t *testing.T) {
	m := model.NewModel(model.WithName("cached"))
	l := NewLoader(BackendTypeGLTF, WithModel("assets/character.glb", m))
	got, err := l.Load("assets/character.glb")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != m {
		t.Error("Load did not return the cached model")
	}
	if l.Get("assets/character.glb") != m || len(l.Models()) != 1 {
		t.Error("cache accessors disagree with Load")
	}
}

func TestLoadReaderExtractsRig(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	m, err := l.LoadReader("rig.gltf", strings.NewReader(riggedTriangle))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	if m.Name() != "Rig" {
		t.Errorf("Name = %q, want Rig", m.Name())
	}

	meshes := m.Meshes()
	if len(meshes) != 1 || len(meshes[0].Positions) != 3 || len(meshes[0].Indices) != 3 {
		t.Fatalf("unexpected meshes: %+v", meshes)
	}
	if meshes[0].BoundingMax != [3]float32{1, 1, 0} {
		t.Errorf("BoundingMax = %v", meshes[0].BoundingMax)
	}

	skel := m.Skeleton()
	if skel == nil || len(skel.Bones) != 2 {
		t.Fatalf("unexpected skeleton: %+v", skel)
	}
	if skel.Bones[1].Name != "Hips" || skel.Bones[1].ParentIndex != 0 || skel.Bones[0].ParentIndex != -1 {
		t.Errorf("unexpected hierarchy: %+v", skel.Bones)
	}
	if skel.Bones[1].LocalTransform.Translation != [3]float32{0, 1, 0} {
		t.Errorf("Hips rest translation = %v", skel.Bones[1].LocalTransform.Translation)
	}

	clips := m.Animations()
	if len(clips) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(clips))
	}
	clip := clips[0]
	if clip.Name != "Wave" || clip.Duration != 1.5 {
		t.Errorf("clip = %q/%f, want Wave/1.5", clip.Name, clip.Duration)
	}
	if len(clip.Channels) != 1 || clip.Channels[0].BoneName != "Hips" {
		t.Fatalf("unexpected channels: %+v", clip.Channels)
	}
	keys := clip.Channels[0].PositionKeys
	if len(keys) != 2 || keys[1].Value != [3]float32{0, 2, 0} {
		t.Errorf("unexpected position keys: %+v", keys)
	}
	if clip.BoundChannels(skel) != 1 {
		t.Error("clip channel does not bind to its own skeleton")
	}
}

func TestLoadReaderRejectsGarbage(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	if _, err := l.LoadReader("junk", strings.NewReader("not a model")); err == nil {
		t.Fatal("expected an error decoding garbage")
	}
	if l.Get("junk") != nil {
		t.Error("failed load was cached")
	}
}
