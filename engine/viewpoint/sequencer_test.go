package viewpoint

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

type fakeSubject struct {
	pos    mgl32.Vec3
	writes int
}

func (f *fakeSubject) Position() (x, y, z float32) {
	return f.pos.X(), f.pos.Y(), f.pos.Z()
}

func (f *fakeSubject) SetPosition(x, y, z float32) {
	f.pos = mgl32.Vec3{x, y, z}
	f.writes++
}

func tour() []Viewpoint {
	return []Viewpoint{
		{Name: "front", Position: mgl32.Vec3{0.22, 1.02, 3.02}, Duration: 2, Delay: 3},
		{Name: "left", Position: mgl32.Vec3{-3.38, 1.02, -0.18}, Duration: 2},
		{Name: "back", Position: mgl32.Vec3{-0.18, 1.02, -2.979}, Duration: 2},
	}
}

func TestNewSequencerRejectsEmptyList(t *testing.T) {
	if _, err := NewSequencer(nil, &fakeSubject{}); !errors.Is(err, ErrNoViewpoints) {
		t.Errorf("NewSequencer(nil) = %v, want ErrNoViewpoints", err)
	}
}

func TestNewSequencerRejectsNegativeTiming(t *testing.T) {
	_, err := NewSequencer([]Viewpoint{{Name: "x", Duration: -1}}, &fakeSubject{})
	if !errors.Is(err, ErrInvalidViewpoint) {
		t.Errorf("negative duration = %v, want ErrInvalidViewpoint", err)
	}
}

func TestStartTwice(t *testing.T) {
	s, err := NewSequencer(tour(), &fakeSubject{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start = %v, want ErrAlreadyRunning", err)
	}
}

func TestUpdateBeforeStartDoesNothing(t *testing.T) {
	subj := &fakeSubject{}
	s, _ := NewSequencer(tour(), subj)
	s.Update(10)
	if subj.writes != 0 || s.Phase() != PhaseIdle {
		t.Errorf("idle sequencer moved the subject (%d writes, phase %s)", subj.writes, s.Phase())
	}
}

func TestDelayThenEasedTransition(t *testing.T) {
	subj := &fakeSubject{pos: mgl32.Vec3{0, 0, 0}}
	vps := []Viewpoint{{Name: "a", Position: mgl32.Vec3{4, 0, 0}, Duration: 2, Delay: 1}}
	s, _ := NewSequencer(vps, subj)
	_ = s.Start()

	s.Update(0.5)
	if subj.writes != 0 || s.Phase() != PhaseDelay {
		t.Fatalf("subject moved during delay")
	}

	// 0.5 s left of delay plus 0.5 s into the transition: quarter time on an in-out quad curve.
	s.Update(1.0)
	if s.Phase() != PhaseTransition {
		t.Fatalf("phase = %s, want transition", s.Phase())
	}
	want := ease.InOutQuad(0.5, 0, 1, 2) * 4
	if !mgl32.FloatEqualThreshold(subj.pos.X(), want, 1e-4) {
		t.Errorf("x = %f, want %f", subj.pos.X(), want)
	}

	// Midpoint of an in-out curve is exactly half way.
	s.Update(0.5)
	if !mgl32.FloatEqualThreshold(subj.pos.X(), 2, 1e-4) {
		t.Errorf("midpoint x = %f, want 2", subj.pos.X())
	}

	s.Update(1.0)
	if !subj.pos.ApproxEqual(mgl32.Vec3{4, 0, 0}) {
		t.Errorf("end position = %v", subj.pos)
	}
	if s.Transitions() != 1 {
		t.Errorf("Transitions = %d, want 1", s.Transitions())
	}
}

func TestCyclicWrap(t *testing.T) {
	subj := &fakeSubject{pos: mgl32.Vec3{0.22, 1.02, 3.02}}
	vps := tour()
	s, _ := NewSequencer(vps, subj)
	_ = s.Start()

	for i := 0; i < len(vps); i++ {
		if s.Cursor() != i {
			t.Fatalf("before leg %d cursor = %d", i, s.Cursor())
		}
		// Step in frame-sized increments through delay + duration of this leg.
		total := vps[i].Delay + vps[i].Duration
		for elapsed := float32(0); elapsed < total; elapsed += 1.0 / 60 {
			s.Update(1.0 / 60)
			if s.Transitions() > i {
				break
			}
		}
		for s.Transitions() <= i {
			s.Update(1.0 / 60)
		}
		if !subj.pos.ApproxEqualThreshold(vps[i].Position, 1e-2) {
			t.Errorf("after leg %d position = %v, want %v", i, subj.pos, vps[i].Position)
		}
	}

	if s.Transitions() != len(vps) {
		t.Fatalf("Transitions = %d, want %d", s.Transitions(), len(vps))
	}
	if s.Cursor() != 0 || s.Target().Name != "front" {
		t.Errorf("after a full lap target = %d (%s), want 0 (front)", s.Cursor(), s.Target().Name)
	}
}

func TestLeftoverTimeCarriesOver(t *testing.T) {
	subj := &fakeSubject{}
	vps := []Viewpoint{
		{Name: "a", Position: mgl32.Vec3{1, 0, 0}, Duration: 1},
		{Name: "b", Position: mgl32.Vec3{2, 0, 0}, Duration: 1},
	}
	s, _ := NewSequencer(vps, subj)
	_ = s.Start()

	s.Update(1.5)
	if s.Transitions() != 1 || s.Cursor() != 1 {
		t.Fatalf("transitions=%d cursor=%d, want 1 and 1", s.Transitions(), s.Cursor())
	}
	if !mgl32.FloatEqualThreshold(subj.pos.X(), 1.5, 1e-4) {
		t.Errorf("x = %f, want 1.5 half way through the second leg", subj.pos.X())
	}
}

func TestZeroLengthToursDoNotSpin(t *testing.T) {
	subj := &fakeSubject{}
	vps := []Viewpoint{
		{Name: "a", Position: mgl32.Vec3{1, 0, 0}},
		{Name: "b", Position: mgl32.Vec3{2, 0, 0}},
	}
	s, _ := NewSequencer(vps, subj)
	_ = s.Start()
	s.Update(0.016)
	if s.Transitions() != 2 {
		t.Errorf("Transitions = %d, want one lap (2)", s.Transitions())
	}
}

func TestNegativeDeltaIsIgnored(t *testing.T) {
	subj := &fakeSubject{}
	s, _ := NewSequencer(tour(), subj)
	_ = s.Start()
	s.Update(1)
	s.Update(-5)
	s.Update(1.5)
	if s.Phase() != PhaseDelay {
		t.Errorf("phase = %s, want delay (2.5 of 3 s elapsed)", s.Phase())
	}
}
