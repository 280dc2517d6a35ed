package panel

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Carmen-Shannon/oxy-showreel/common"
	"go.uber.org/zap"
)

func TestActionsOrderedByIndex(t *testing.T) {
	p := NewPanel()
	// Registered out of order, as clips arriving from parallel loads are.
	p.Register(3, "Animation 4", nil)
	p.Register(0, "Animation 1", nil)
	p.Register(1, "Animation 2", nil)
	p.Register(-1, "dropped", nil)

	got := p.Actions()
	want := []Action{{0, "Animation 1"}, {1, "Animation 2"}, {3, "Animation 4"}}
	if len(got) != len(want) {
		t.Fatalf("Actions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Actions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if a, ok := p.Lookup(3); !ok || a.Label != "Animation 4" {
		t.Errorf("Lookup(3) = %v, %v", a, ok)
	}
	if _, ok := p.Lookup(2); ok {
		t.Error("Lookup(2) found an action in a gap")
	}
}

func TestKeysFollowIndexNotArrival(t *testing.T) {
	var ran []string
	arrivals := [][]int{{4, 0, 2}, {2, 4, 0}, {0, 2, 4}}
	for _, order := range arrivals {
		p := NewPanel()
		for _, idx := range order {
			label := fmt.Sprintf("Animation %d", idx+1)
			p.Register(idx, label, func() { ran = append(ran, label) })
		}
		ran = nil
		if !p.HandleKey(common.Key5) {
			t.Fatalf("arrival order %v: key 5 dispatched nothing", order)
		}
		if p.HandleKey(common.Key2) {
			t.Errorf("arrival order %v: key 2 dispatched into a gap", order)
		}
		if len(ran) != 1 || ran[0] != "Animation 5" {
			t.Errorf("arrival order %v: key 5 ran %v, want Animation 5", order, ran)
		}
	}
}

func TestInvokeGoesThroughDispatcher(t *testing.T) {
	var queued []func()
	p := NewPanel(WithDispatcher(func(task func()) { queued = append(queued, task) }))
	ran := false
	p.Register(0, "Animation 1", func() { ran = true })

	if err := p.Invoke(0); err != nil {
		t.Fatalf("Invoke(0) = %v", err)
	}
	if ran {
		t.Fatal("action ran before the dispatcher drained it")
	}
	queued[0]()
	if !ran {
		t.Error("action did not run when drained")
	}

	if err := p.Invoke(3); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Invoke(3) = %v, want ErrUnknownAction", err)
	}
}

func TestHandleKeyBindings(t *testing.T) {
	p := NewPanel()
	var invoked []int
	for i := 0; i < 10; i++ {
		p.Register(i, "a", func() { invoked = append(invoked, i) })
	}

	tests := []struct {
		key  uint32
		want int
		ok   bool
	}{
		{common.Key1, 0, true},
		{common.Key9, 8, true},
		{common.Key0, 9, true},
		{common.KeyW, 0, false},
	}
	for _, tt := range tests {
		invoked = nil
		if got := p.HandleKey(tt.key); got != tt.ok {
			t.Errorf("HandleKey(%d) = %v, want %v", tt.key, got, tt.ok)
			continue
		}
		if tt.ok && (len(invoked) != 1 || invoked[0] != tt.want) {
			t.Errorf("HandleKey(%d) invoked %v, want [%d]", tt.key, invoked, tt.want)
		}
	}
}

func TestHandleKeyBeyondRegistered(t *testing.T) {
	p := NewPanel()
	p.Register(0, "Animation 1", func() {})
	if p.HandleKey(common.Key5) {
		t.Error("HandleKey(5) with one action should not dispatch")
	}
}

func TestHTTPActions(t *testing.T) {
	invoked := -1
	p := NewPanel(WithStatus(func() any { return map[string]int{"active": 1} }))
	p.Register(0, "Animation 1", func() { invoked = 0 })
	p.Register(1, "Animation 2", func() { invoked = 1 })
	h := NewHandler(p, zap.NewNop())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/actions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /actions = %d", w.Code)
	}
	var actions []Action
	if err := json.NewDecoder(w.Body).Decode(&actions); err != nil {
		t.Fatal(err)
	}
	if len(actions) != 2 || actions[1].Label != "Animation 2" {
		t.Errorf("GET /actions = %v", actions)
	}

	tests := []struct {
		path string
		code int
	}{
		{"/actions/1", http.StatusAccepted},
		{"/actions/7", http.StatusNotFound},
		{"/actions/x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
		if w.Code != tt.code {
			t.Errorf("POST %s = %d, want %d", tt.path, w.Code, tt.code)
		}
	}
	if invoked != 1 {
		t.Errorf("invoked = %d, want 1", invoked)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /status = %d, want 200", w.Code)
	}
}

func TestHTTPStatusWithoutSource(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(NewPanel(), nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /status = %d, want 404", w.Code)
	}
}
