package panel

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-showreel/common"
	"go.uber.org/zap"
)

// ErrUnknownAction is returned by Invoke for an index with no registered action.
var ErrUnknownAction = errors.New("unknown panel action")

// Action describes one registered control.
type Action struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// Dispatcher hands an action callback to the context that is allowed to run it.
type Dispatcher func(task func())

type entry struct {
	label string
	fn    func()
}

// panel implements the Panel interface.
type panel struct {
	mu *sync.Mutex

	entries  map[int]entry
	dispatch Dispatcher
	status   func() any
	logger   *zap.Logger
}

// Panel is the user-facing control surface: labelled actions addressed by a caller-chosen index,
// bound to the number keys and exposed over HTTP.
// Indices are stable no matter in which order actions are registered, so a key or URL always
// reaches the same action.
type Panel interface {
	// Register binds a labelled action to index, replacing any action already there.
	//
	// Parameters:
	//   - index: the action index (non-negative)
	//   - label: the text shown for the control
	//   - fn: the callback run when the control is invoked
	Register(index int, label string, fn func())

	// Invoke dispatches the action at index.
	//
	// Parameters:
	//   - index: the action index
	//
	// Returns:
	//   - error: ErrUnknownAction if nothing is registered at index
	Invoke(index int) error

	// HandleKey invokes the action bound to a number key: 1 to 9 select indices 0 to 8, 0 selects index 9.
	//
	// Parameters:
	//   - keyCode: the pressed key
	//
	// Returns:
	//   - bool: true if an action was dispatched
	HandleKey(keyCode uint32) bool

	// Lookup returns the action registered at index.
	//
	// Returns:
	//   - Action: the action
	//   - bool: false if nothing is registered at index
	Lookup(index int) (Action, bool)

	// Actions returns the registered actions ordered by index.
	//
	// Returns:
	//   - []Action: the actions
	Actions() []Action

	// Status returns the value served at GET /status, or nil if no status source is configured.
	//
	// Returns:
	//   - any: a JSON-encodable status snapshot
	Status() any
}

var _ Panel = &panel{}

// NewPanel creates an empty Panel. Without WithDispatcher actions run on the caller's goroutine.
//
// Parameters:
//   - options: functional options for the panel
//
// Returns:
//   - Panel: the newly created panel
func NewPanel(options ...PanelBuilderOption) Panel {
	p := &panel{
		mu:       &sync.Mutex{},
		entries:  make(map[int]entry),
		dispatch: func(task func()) { task() },
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *panel) Register(index int, label string, fn func()) {
	if index < 0 {
		p.logger.Warn("panel action with negative index dropped", zap.Int("index", index), zap.String("label", label))
		return
	}
	p.mu.Lock()
	p.entries[index] = entry{label: label, fn: fn}
	p.mu.Unlock()
	p.logger.Debug("panel action registered", zap.Int("index", index), zap.String("label", label))
}

func (p *panel) Invoke(index int) error {
	p.mu.Lock()
	e, ok := p.entries[index]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAction, index)
	}

	p.logger.Debug("panel action invoked", zap.Int("index", index), zap.String("label", e.label))
	if e.fn != nil {
		p.dispatch(e.fn)
	}
	return nil
}

func (p *panel) HandleKey(keyCode uint32) bool {
	slot, ok := common.DigitSlot(keyCode)
	if !ok {
		return false
	}
	return p.Invoke(slot) == nil
}

func (p *panel) Lookup(index int) (Action, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[index]
	if !ok {
		return Action{}, false
	}
	return Action{Index: index, Label: e.label}, true
}

func (p *panel) Actions() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Action, 0, len(p.entries))
	for i, e := range p.entries {
		out = append(out, Action{Index: i, Label: e.label})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

func (p *panel) Status() any {
	if p.status == nil {
		return nil
	}
	return p.status()
}
