package machine

import (
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/lixenwraith/audio-director/graph"
)

// Observer receives state machine notifications
// All methods are invoked synchronously on the calling goroutine
type Observer interface {
	ParameterChanged(name string, value any)
	TransitionStarted(t *graph.StateTransition, to *graph.AudioState)
	TransitionCompleted(t *graph.StateTransition, to *graph.AudioState)
	StateEntered(state, previous *graph.AudioState)
}

// Machine is the runtime evaluator over a StateGraph
//
// Single logical thread of control: all mutation happens on the goroutine
// calling SetParameter/Update/TriggerEvent. The transitioning flag is the
// only re-entrancy guard and deliberately not a lock
type Machine struct {
	graph    *graph.StateGraph
	clock    Clock
	rng      *rand.Rand
	observer Observer
	logger   *log.Logger

	current   *graph.AudioState
	entryTime time.Time
	elapsedMs float64 // deterministic state time, advanced by Update deltas

	params    map[string]any
	cooldowns map[string]float64 // transition id -> remaining ms

	transitioning bool
	pending       *pendingTransition
}

// pendingTransition is the cancellable deferred completion of a transition
// Advanced by Update ticks; cleared by ForceState/LoadGraph/Restore
type pendingTransition struct {
	transition  *graph.StateTransition
	remainingMs float64
}

// Option configures a Machine
type Option func(*Machine)

// WithClock injects a time source
func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithRand injects the random source used by random conditions
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) { m.rng = r }
}

// WithObserver attaches a notification sink
func WithObserver(o Observer) Option {
	return func(m *Machine) { m.observer = o }
}

// WithLogger overrides the logger used for configuration errors
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// New creates a machine over the given graph and enters its initial state
func New(g *graph.StateGraph, opts ...Option) *Machine {
	m := &Machine{
		clock:     SystemClock{},
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    log.Default(),
		params:    make(map[string]any),
		cooldowns: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.LoadGraph(g)
	return m
}

// LoadGraph replaces the active graph
// Cancels any pending transition completion, resets parameters to their
// declared defaults, clears cooldowns and enters the new initial state
func (m *Machine) LoadGraph(g *graph.StateGraph) {
	m.pending = nil
	m.transitioning = false
	m.graph = g
	m.params = make(map[string]any)
	m.cooldowns = make(map[string]float64)
	m.current = nil

	if g == nil {
		return
	}
	for i := range g.Parameters {
		p := &g.Parameters[i]
		if p.Default != nil {
			m.params[p.Name] = p.Default
		}
	}
	if initial := g.InitialState(); initial != nil {
		m.enterState(initial)
	}
}

// SetParameter stores a declared parameter value and re-evaluates transitions
// Unknown names are logged and ignored; numeric values are clamped to the
// declared min/max
func (m *Machine) SetParameter(name string, value any) {
	if m.graph == nil {
		return
	}
	decl, ok := m.graph.ParameterByName(name)
	if !ok {
		m.logger.Printf("machine: ignoring unknown parameter %q", name)
		return
	}

	if decl.Type == graph.ParamNumber {
		if n, ok := toNumber(value); ok {
			if decl.Min != nil && n < *decl.Min {
				n = *decl.Min
			}
			if decl.Max != nil && n > *decl.Max {
				n = *decl.Max
			}
			value = n
		}
	}

	m.params[name] = value
	if m.observer != nil {
		m.observer.ParameterChanged(name, value)
	}
	m.evaluateTransitions()
}

// Parameter returns the stored value for a parameter name
func (m *Machine) Parameter(name string) (any, bool) {
	v, ok := m.params[name]
	return v, ok
}

// Parameters returns a copy of the full parameter table
func (m *Machine) Parameters() map[string]any {
	out := make(map[string]any, len(m.params))
	for k, v := range m.params {
		out[k] = v
	}
	return out
}

// Update advances cooldowns, pending transition completion and state time,
// then re-evaluates transitions
func (m *Machine) Update(deltaMs float64) {
	if m.graph == nil {
		return
	}

	for id, remaining := range m.cooldowns {
		remaining -= deltaMs
		if remaining <= 0 {
			delete(m.cooldowns, id)
		} else {
			m.cooldowns[id] = remaining
		}
	}

	m.elapsedMs += deltaMs

	if m.pending != nil {
		m.pending.remainingMs -= deltaMs
		if m.pending.remainingMs <= 0 {
			p := m.pending
			m.pending = nil
			m.completeTransition(p.transition)
		}
	}

	m.evaluateTransitions()
}

// ForceState immediately enters the named state, bypassing all conditions
// Cancels any pending transition completion. Returns false if the state
// does not exist
func (m *Machine) ForceState(stateID string) bool {
	if m.graph == nil {
		return false
	}
	state, ok := m.graph.StateByID(stateID)
	if !ok {
		m.logger.Printf("machine: force to unknown state %q", stateID)
		return false
	}
	m.pending = nil
	m.transitioning = false
	m.enterState(state)
	return true
}

// CancelPendingTransition drops any in-flight transition completion
// without changing state. Called on shutdown so a stale completion cannot
// fire later
func (m *Machine) CancelPendingTransition() {
	m.pending = nil
	m.transitioning = false
}

// TriggerEvent fires the highest-priority transition from the current state
// carrying a matching event condition. Event conditions are matched
// independently of the transition's combine mode. Returns false when no
// transition is eligible
func (m *Machine) TriggerEvent(eventName string) bool {
	if m.graph == nil || m.current == nil || m.transitioning {
		return false
	}

	var eligible []*graph.StateTransition
	for _, t := range m.graph.TransitionsFrom(m.current.ID) {
		if _, cooling := m.cooldowns[t.ID]; cooling {
			continue
		}
		for i := range t.Conditions {
			c := &t.Conditions[i]
			if c.Kind == graph.CondEvent && c.Event == eventName {
				eligible = append(eligible, t)
				break
			}
		}
	}
	if len(eligible) == 0 {
		return false
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Priority > eligible[j].Priority
	})
	m.executeTransition(eligible[0])
	return true
}

// CurrentState returns the current state, never nil after construction
// over a graph with at least one state
func (m *Machine) CurrentState() *graph.AudioState {
	return m.current
}

// StateDuration returns wall time elapsed since the current state was entered
func (m *Machine) StateDuration() time.Duration {
	if m.current == nil {
		return 0
	}
	return m.clock.Now().Sub(m.entryTime)
}

// StateElapsedMs returns deterministic state time accumulated from Update deltas
func (m *Machine) StateElapsedMs() float64 {
	return m.elapsedMs
}

// IsTransitioning reports whether a transition completion is in flight
func (m *Machine) IsTransitioning() bool {
	return m.transitioning
}

// Cooldowns returns a copy of the outstanding cooldown table
func (m *Machine) Cooldowns() map[string]float64 {
	out := make(map[string]float64, len(m.cooldowns))
	for k, v := range m.cooldowns {
		out[k] = v
	}
	return out
}

// evaluateTransitions fires the first satisfied transition from the current
// state in descending priority order. No-op while a transition is executing
func (m *Machine) evaluateTransitions() {
	if m.current == nil || m.transitioning {
		return
	}

	candidates := m.graph.TransitionsFrom(m.current.ID)
	if len(candidates) == 0 {
		return
	}

	available := candidates[:0:0]
	for _, t := range candidates {
		if _, cooling := m.cooldowns[t.ID]; !cooling {
			available = append(available, t)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Priority > available[j].Priority
	})

	for _, t := range available {
		if m.conditionsSatisfied(t) {
			m.executeTransition(t)
			return
		}
	}
}

// executeTransition starts a transition, deferring completion by its duration
// Zero-duration transitions complete synchronously
func (m *Machine) executeTransition(t *graph.StateTransition) {
	m.transitioning = true

	if m.observer != nil {
		to, _ := m.graph.StateByID(t.To)
		m.observer.TransitionStarted(t, to)
	}

	if t.DurationMs <= 0 {
		m.completeTransition(t)
		return
	}
	m.pending = &pendingTransition{transition: t, remainingMs: t.DurationMs}
}

// completeTransition finishes an executing transition: arms the cooldown,
// enters the destination and notifies. A missing destination aborts silently
// with the transitioning flag cleared
func (m *Machine) completeTransition(t *graph.StateTransition) {
	dest, ok := m.graph.StateByID(t.To)
	if !ok {
		m.logger.Printf("machine: transition %q targets unknown state %q, aborting", t.ID, t.To)
		m.transitioning = false
		return
	}

	if t.CooldownMs > 0 {
		m.cooldowns[t.ID] = t.CooldownMs
	}

	m.enterState(dest)

	if m.observer != nil {
		m.observer.TransitionCompleted(t, dest)
	}
	m.transitioning = false

	// The new state may immediately satisfy an outgoing transition
	m.evaluateTransitions()
}

// enterState makes the given state current and resets state time
func (m *Machine) enterState(state *graph.AudioState) {
	previous := m.current
	m.current = state
	m.entryTime = m.clock.Now()
	m.elapsedMs = 0

	if m.observer != nil {
		m.observer.StateEntered(state, previous)
	}
}
