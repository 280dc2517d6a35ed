package animator

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/engine/model"
)

func newCharacter(clipNames ...string) model.Model {
	clips := make([]*model.AnimationClip, len(clipNames))
	for i, name := range clipNames {
		clips[i] = &model.AnimationClip{Name: name, Duration: 3}
	}
	return model.NewModel(model.WithName("character"), model.WithAnimations(clips))
}

// attachedController returns a controller with 2 primary clips and 3 auxiliary slots, all filled.
func attachedController(t *testing.T, options ...ControllerBuilderOption) Controller {
	t.Helper()
	c := NewController(3, options...)
	c.Attach(newCharacter("dance", "idle"))
	for slot, name := range []string{"push-up", "flair", "flip"} {
		idx, err := c.SetAuxiliary(slot, &model.AnimationClip{Name: name, Duration: 2})
		if err != nil {
			t.Fatalf("SetAuxiliary(%d): %v", slot, err)
		}
		if idx != 2+slot {
			t.Fatalf("SetAuxiliary(%d) index = %d, want %d", slot, idx, 2+slot)
		}
	}
	return c
}

func activeClipName(t *testing.T, c Controller) string {
	t.Helper()
	for _, st := range c.Mixer().States() {
		if st.Enabled {
			a := c.Mixer().ClipAction(st.Clip)
			if !a.FadingOut() {
				return st.Clip.Name
			}
		}
	}
	return ""
}

func TestAttachActivatesFirstClip(t *testing.T) {
	c := NewController(0)
	m := c.Attach(newCharacter("dance", "idle"))
	if m == nil || c.Mixer() != m {
		t.Fatal("Attach did not expose its mixer")
	}
	idx, ok := c.Active()
	if !ok || idx != 0 {
		t.Fatalf("Active = (%d, %v), want (0, true)", idx, ok)
	}
	if name := activeClipName(t, c); name != "dance" {
		t.Errorf("active clip = %q, want dance", name)
	}
}

func TestAttachWithoutClips(t *testing.T) {
	c := NewController(1)
	c.Attach(newCharacter())
	if _, ok := c.Active(); ok {
		t.Error("a model without clips should leave nothing active")
	}
	if err := c.SwitchTo(0); !errors.Is(err, ErrClipNotLoaded) {
		t.Errorf("SwitchTo(0) on empty slot = %v, want ErrClipNotLoaded", err)
	}
}

func TestSwitchBeforeAttach(t *testing.T) {
	c := NewController(6)
	if err := c.SwitchTo(0); !errors.Is(err, ErrNotAttached) {
		t.Errorf("SwitchTo before Attach = %v, want ErrNotAttached", err)
	}
	if _, err := c.SetAuxiliary(0, &model.AnimationClip{}); !errors.Is(err, ErrNotAttached) {
		t.Errorf("SetAuxiliary before Attach = %v, want ErrNotAttached", err)
	}
	c.Update(1)
}

func TestSwitchIndexPartition(t *testing.T) {
	c := attachedController(t)
	want := []string{"dance", "idle", "push-up", "flair", "flip"}
	for i, name := range want {
		if err := c.SwitchTo(i); err != nil {
			t.Fatalf("SwitchTo(%d): %v", i, err)
		}
		if got := activeClipName(t, c); got != name {
			t.Errorf("SwitchTo(%d) activated %q, want %q", i, got, name)
		}
	}
}

func TestSwitchOutOfRange(t *testing.T) {
	c := attachedController(t)
	for _, idx := range []int{-1, 5, 100} {
		if err := c.SwitchTo(idx); !errors.Is(err, ErrClipOutOfRange) {
			t.Errorf("SwitchTo(%d) = %v, want ErrClipOutOfRange", idx, err)
		}
	}
	if idx, _ := c.Active(); idx != 0 {
		t.Errorf("failed switch changed active index to %d", idx)
	}
}

func TestSwitchToUnfilledSlot(t *testing.T) {
	c := NewController(6)
	c.Attach(newCharacter("dance", "idle"))
	if _, err := c.SetAuxiliary(3, &model.AnimationClip{Name: "swim", Duration: 1}); err != nil {
		t.Fatal(err)
	}
	if err := c.SwitchTo(2); !errors.Is(err, ErrClipNotLoaded) {
		t.Errorf("SwitchTo(2) = %v, want ErrClipNotLoaded", err)
	}
	if err := c.SwitchTo(5); err != nil {
		t.Errorf("SwitchTo(5): %v", err)
	}
	if _, err := c.SetAuxiliary(6, &model.AnimationClip{}); !errors.Is(err, ErrClipOutOfRange) {
		t.Errorf("SetAuxiliary(6) = %v, want ErrClipOutOfRange", err)
	}
}

func TestReselectActiveClip(t *testing.T) {
	c := attachedController(t)
	if err := c.SwitchTo(3); err != nil {
		t.Fatal(err)
	}
	c.Update(0.2)
	if err := c.SwitchTo(3); err != nil {
		t.Fatalf("re-selecting the active clip failed: %v", err)
	}
	idx, ok := c.Active()
	if !ok || idx != 3 {
		t.Fatalf("Active = (%d, %v), want (3, true)", idx, ok)
	}
	c.Update(1)
	if name := activeClipName(t, c); name != "flair" {
		t.Errorf("active clip after settling = %q, want flair", name)
	}
}

func TestExactlyOneActiveAfterRapidSwitches(t *testing.T) {
	c := attachedController(t)
	for _, idx := range []int{1, 2, 3, 4, 0, 2} {
		if err := c.SwitchTo(idx); err != nil {
			t.Fatal(err)
		}
		c.Update(0.05)
	}

	idx, _ := c.Active()
	if idx != 2 {
		t.Fatalf("Active = %d, want 2", idx)
	}

	notFadingOut := 0
	for _, st := range c.Mixer().States() {
		a := c.Mixer().ClipAction(st.Clip)
		if st.Enabled && !a.FadingOut() {
			notFadingOut++
		}
		if st.Weight < 0 || st.Weight > 1 {
			t.Errorf("clip %s weight %f outside [0, 1]", st.Clip.Name, st.Weight)
		}
	}
	if notFadingOut != 1 {
		t.Errorf("%d clips are enabled and not fading out, want exactly 1", notFadingOut)
	}

	c.Update(1)
	enabled := 0
	for _, st := range c.Mixer().States() {
		if st.Enabled {
			enabled++
		}
	}
	if enabled != 1 {
		t.Errorf("%d clips enabled after fades settle, want 1", enabled)
	}
}

func TestMaxFadingOutStopsOldest(t *testing.T) {
	c := attachedController(t, WithMaxFadingOut(1))
	for _, idx := range []int{1, 2, 3} {
		if err := c.SwitchTo(idx); err != nil {
			t.Fatal(err)
		}
	}
	fading := 0
	for _, st := range c.Mixer().States() {
		if c.Mixer().ClipAction(st.Clip).FadingOut() {
			fading++
		}
	}
	if fading != 1 {
		t.Errorf("%d clips fading out, want 1 with the cap", fading)
	}
}

func TestWithTimeScaleAppliesToMixer(t *testing.T) {
	c := NewController(0, WithTimeScale(0.5), WithFadeDuration(0.25))
	m := c.Attach(newCharacter("dance"))
	if m.TimeScale() != 0.5 {
		t.Errorf("TimeScale = %f, want 0.5", m.TimeScale())
	}
}

func TestCrossFadeCompletesAfterLongUptime(t *testing.T) {
	character := newCharacter("dance", "idle")
	c := NewController(0)
	mx := c.Attach(character)

	// Push the mixer clock past 2^19 s, where a float32 clock no longer moves by 1/60 s.
	for mx.Time() < 1<<19+1 {
		c.Update(60)
	}
	before := mx.(*mixer).time
	c.Update(1.0 / 60)
	if after := mx.(*mixer).time; after <= before {
		t.Fatalf("mixer clock stalled at %v", before)
	}

	if err := c.SwitchTo(1); err != nil {
		t.Fatal(err)
	}
	outgoing := mx.ClipAction(character.Animations()[0])
	incoming := mx.ClipAction(character.Animations()[1])

	for i := 0; i < 20; i++ {
		c.Update(1.0 / 60)
	}
	if w := incoming.Weight(); w <= 0 || w >= 1 {
		t.Errorf("incoming weight a third into the fade = %f, want strictly between 0 and 1", w)
	}

	for i := 0; i < 20; i++ {
		c.Update(1.0 / 60)
	}
	if incoming.Weight() != 1 || incoming.FadingIn() {
		t.Errorf("incoming weight = %f fadingIn=%v, want 1 and settled", incoming.Weight(), incoming.FadingIn())
	}
	if outgoing.Enabled() || outgoing.Weight() != 0 {
		t.Errorf("outgoing enabled=%v weight=%f, want disabled at 0", outgoing.Enabled(), outgoing.Weight())
	}
}
