package engine

import (
	"log"
	"math/rand"
	"sync"

	"github.com/lixenwraith/audio-director/events"
	"github.com/lixenwraith/audio-director/graph"
	"github.com/lixenwraith/audio-director/machine"
	"github.com/lixenwraith/audio-director/mapping"
)

// Director is the engine facade: one state machine plus one parameter
// mapper, ticked at a fixed rate, with outputs routed to the audio layer
//
// All public methods are safe to call from any goroutine; internally the
// facade serializes everything onto one logical thread of control
type Director struct {
	mu sync.Mutex

	cfg     Config
	machine *machine.Machine
	mapper  *mapping.Mapper
	layer   Layer
	clock   machine.Clock
	logger  *log.Logger

	queue  *events.Queue
	router *events.Router
	rng    *rand.Rand

	loop *tickLoop
}

// Option configures a Director
type Option func(*Director)

// WithLayer attaches the audio rendering collaborator
func WithLayer(l Layer) Option {
	return func(d *Director) {
		if l != nil {
			d.layer = l
		}
	}
}

// WithClock injects a time source, shared with the state machine
func WithClock(c machine.Clock) Option {
	return func(d *Director) { d.clock = c }
}

// WithLogger overrides the logger for configuration errors
func WithLogger(l *log.Logger) Option {
	return func(d *Director) { d.logger = l }
}

// WithRand injects the machine's random condition source
// Used by tests that need deterministic random conditions
func WithRand(r *rand.Rand) Option {
	return func(d *Director) { d.rng = r }
}

// New creates a director over the given graph
func New(cfg Config, g *graph.StateGraph, opts ...Option) *Director {
	if cfg.TickInterval <= 0 {
		cfg = DefaultConfig()
	}
	d := &Director{
		cfg:    cfg,
		layer:  NewNopLayer(),
		clock:  machine.SystemClock{},
		logger: log.Default(),
		mapper: mapping.NewMapper(),
		queue:  events.NewQueue(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.router = events.NewRouter(d.queue)
	d.mapper.SetLogger(d.logger)

	mopts := []machine.Option{
		machine.WithClock(d.clock),
		machine.WithObserver(&machineObserver{d: d}),
		machine.WithLogger(d.logger),
	}
	if d.rng != nil {
		mopts = append(mopts, machine.WithRand(d.rng))
	}
	d.machine = machine.New(g, mopts...)
	d.loop = newTickLoop(d, cfg.TickInterval)
	return d
}

// SetParameter forwards a gameplay value to both subsystems
// Either may legitimately ignore a name the other recognizes
func (d *Director) SetParameter(name string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.machine.SetParameter(name, value)
	d.mapper.SetGameParameter(name, value)
}

// TriggerEvent fires event-matched transitions on the state machine
func (d *Director) TriggerEvent(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.machine.TriggerEvent(name)
}

// ForceState authoritatively enters a state, bypassing conditions
func (d *Director) ForceState(stateID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.machine.ForceState(stateID)
}

// LoadGraph hot-swaps the active state graph
// Any in-flight transition completion is cancelled
func (d *Director) LoadGraph(g *graph.StateGraph) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.machine.LoadGraph(g)
}

// AddMapping registers a parameter mapping
func (d *Director) AddMapping(m *mapping.ParameterMapping) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mapper.AddMapping(m)
}

// RemoveMapping unregisters a parameter mapping
func (d *Director) RemoveMapping(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mapper.RemoveMapping(id)
}

// SetMappingEnabled toggles a mapping
func (d *Director) SetMappingEnabled(id string, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mapper.SetMappingEnabled(id, enabled)
}

// RegisterHandler subscribes an external handler to engine events
// Must be called before Start
func (d *Director) RegisterHandler(h events.Handler) {
	d.router.Register(h)
}

// RegisterAllEvents subscribes a handler to every event type
func (d *Director) RegisterAllEvents(h events.Handler) {
	d.router.RegisterAll(h)
}

// CurrentState returns the machine's current state
func (d *Director) CurrentState() *graph.AudioState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.machine.CurrentState()
}

// MappedValue returns the smoothed value for a mapping id
func (d *Director) MappedValue(id string) (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mapper.CurrentValue(id)
}

// Start launches the fixed-rate tick loop
func (d *Director) Start() {
	d.loop.start()
}

// Stop cancels the tick loop and any pending transition completion
func (d *Director) Stop() {
	d.loop.stop()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.machine.CancelPendingTransition()
}

// Tick advances both subsystems by deltaMs and routes mapper output
// State machine first, then mapper, so state side effects are visible
// within the same tick. Exposed for deterministic testing
func (d *Director) Tick(deltaMs float64) {
	d.mu.Lock()
	d.machine.Update(deltaMs)
	changes := d.mapper.Update(deltaMs)
	for _, ch := range changes {
		d.routeChange(ch)
	}
	d.mu.Unlock()

	d.router.DispatchAll()
}

// routeChange resolves a mapping's target descriptor to an audio layer call
// Target kinds the facade does not special-case are forwarded as opaque
// effect/param notifications rather than rejected
func (d *Director) routeChange(ch mapping.Change) {
	t := ch.Mapping.Target

	switch t.Kind {
	case mapping.TargetLayerVolume:
		d.layer.SetLayerVolume(t.ID, ch.Value)
	case mapping.TargetLayerPan:
		d.layer.SetLayerPan(t.ID, ch.Value)
	case mapping.TargetLayerPitch:
		d.layer.SetLayerPitch(t.ID, ch.Value)
	case mapping.TargetMasterVolume:
		d.layer.SetMasterVolume(ch.Value)
	case mapping.TargetEffectParam:
		d.layer.SetEffectParam(t.ID, t.Param, ch.Value)
	default:
		d.queue.Push(events.Event{
			Type: events.EventEffectParamChanged,
			Payload: &events.EffectParamChangedPayload{
				EffectType: string(t.Kind),
				Param:      t.ID,
				Value:      ch.Value,
			},
		})
	}

	d.queue.Push(events.Event{
		Type: events.EventParameterMapped,
		Payload: &events.ParameterMappedPayload{
			MappingID: ch.ID,
			Value:     ch.Value,
			Kind:      string(t.Kind),
			TargetID:  t.ID,
			Param:     t.Param,
		},
	})
}

// machineObserver bridges state machine notifications into the event queue
// and applies state payloads to the audio layer
type machineObserver struct {
	d *Director
}

func (o *machineObserver) ParameterChanged(name string, value any) {
	o.d.queue.Push(events.Event{
		Type:    events.EventParameterChanged,
		Payload: &events.ParameterChangedPayload{Name: name, Value: value},
	})
}

func (o *machineObserver) TransitionStarted(t *graph.StateTransition, to *graph.AudioState) {
	o.d.queue.Push(events.Event{
		Type:    events.EventTransitionStarted,
		Payload: &events.TransitionPayload{Transition: t, To: to},
	})
}

func (o *machineObserver) TransitionCompleted(t *graph.StateTransition, to *graph.AudioState) {
	o.d.queue.Push(events.Event{
		Type:    events.EventTransitionCompleted,
		Payload: &events.TransitionPayload{Transition: t, To: to},
	})
}

func (o *machineObserver) StateEntered(state, previous *graph.AudioState) {
	o.d.layer.ApplyState(state.Config)
	o.d.queue.Push(events.Event{
		Type: events.EventStateEntered,
		Payload: &events.StateEnteredPayload{
			State:    state,
			Previous: previous,
			Config:   state.Config,
		},
	})
}
