package profiler

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	core, logs := observer.New(zap.InfoLevel)
	p := NewProfiler(
		WithLogger(zap.New(core)),
		WithTimeSource(func() time.Time { return now }),
	)

	for i := 0; i < 49; i++ {
		now = now.Add(20 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("reported early on frame %d", i+1)
		}
	}
	now = now.Add(20 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("no report after one second")
	}

	if fps := p.Last().FPS; fps < 49.9 || fps > 50.1 {
		t.Errorf("FPS = %v, want 50", fps)
	}
	if logs.FilterMessage("frame stats").Len() != 1 {
		t.Errorf("logged %d stats lines, want 1", logs.Len())
	}
}
