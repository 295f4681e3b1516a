package mapping

import (
	"log"
	"math"

	"github.com/lixenwraith/audio-director/graph"
)

// convergenceEpsilon is the |current-target| threshold below which a value
// is considered settled. Exponential smoothing never exactly reaches its
// target, so settling is defined by this bound
const convergenceEpsilon = 1e-4

// Change reports a mapping whose smoothed value moved this tick
type Change struct {
	ID      string
	Value   float64
	Mapping *ParameterMapping
}

// Subscriber receives a mapping's new smoothed value
type Subscriber func(id string, value float64)

// valueState is the per-mapping runtime triple
type valueState struct {
	current  float64
	target   float64
	velocity float64
}

// Mapper evaluates a set of parameter mappings
//
// Single logical thread of control, like Machine: mutation happens on the
// goroutine calling SetGameParameter/Update
type Mapper struct {
	mappings map[string]*ParameterMapping
	order    []string // registration order, for deterministic iteration
	values   map[string]*valueState
	enabled  map[string]bool // mapper-owned; descriptors are never mutated
	params   map[string]any  // raw game parameter values

	subs    map[string][]Subscriber
	allSubs []Subscriber

	logger *log.Logger
}

// NewMapper creates an empty mapper
func NewMapper() *Mapper {
	return &Mapper{
		mappings: make(map[string]*ParameterMapping),
		values:   make(map[string]*valueState),
		enabled:  make(map[string]bool),
		params:   make(map[string]any),
		subs:     make(map[string][]Subscriber),
		logger:   log.Default(),
	}
}

// SetLogger overrides the logger used for configuration errors
func (mp *Mapper) SetLogger(l *log.Logger) {
	if l != nil {
		mp.logger = l
	}
}

// AddMapping registers a mapping and initializes its current, target and
// velocity to zero. Re-adding an id replaces the descriptor and resets state
// The descriptor's Enabled flag seeds the mapper's own enablement table
func (mp *Mapper) AddMapping(m *ParameterMapping) {
	if m == nil || m.ID == "" {
		mp.logger.Printf("mapper: rejecting mapping with empty id")
		return
	}
	if _, exists := mp.mappings[m.ID]; !exists {
		mp.order = append(mp.order, m.ID)
	}
	mp.mappings[m.ID] = m
	mp.values[m.ID] = &valueState{}
	mp.enabled[m.ID] = m.Enabled
}

// RemoveMapping unregisters a mapping and zeroes its runtime state
func (mp *Mapper) RemoveMapping(id string) {
	if _, ok := mp.mappings[id]; !ok {
		return
	}
	delete(mp.mappings, id)
	delete(mp.values, id)
	delete(mp.enabled, id)
	for i, mid := range mp.order {
		if mid == id {
			mp.order = append(mp.order[:i], mp.order[i+1:]...)
			break
		}
	}
}

// SetMappingEnabled toggles a mapping without touching its runtime state
// or the caller's descriptor
func (mp *Mapper) SetMappingEnabled(id string, enabled bool) {
	if _, ok := mp.mappings[id]; ok {
		mp.enabled[id] = enabled
	}
}

// MappingEnabled reports the mapper's enablement for an id
func (mp *Mapper) MappingEnabled(id string) bool {
	return mp.enabled[id]
}

// Mapping returns the registered descriptor for an id
func (mp *Mapper) Mapping(id string) (*ParameterMapping, bool) {
	m, ok := mp.mappings[id]
	return m, ok
}

// SetGameParameter stores a raw value and recomputes the target of every
// enabled mapping whose source matches and whose gates pass
// The smoothed current value only moves on Update
func (mp *Mapper) SetGameParameter(name string, value any) {
	mp.params[name] = value

	for _, id := range mp.order {
		m := mp.mappings[id]
		if !mp.enabled[id] || m.Source.Name != name {
			continue
		}
		if !mp.gatesPass(m) {
			continue
		}
		mp.values[id].target = MapValue(value, m)
	}
}

// GameParameter returns the stored raw value for a game parameter
func (mp *Mapper) GameParameter(name string) (any, bool) {
	v, ok := mp.params[name]
	return v, ok
}

// Update advances smoothing for every enabled mapping and returns the set
// whose value changed this tick. Subscribers are notified per change
func (mp *Mapper) Update(deltaMs float64) []Change {
	var changes []Change

	for _, id := range mp.order {
		m := mp.mappings[id]
		if !mp.enabled[id] {
			continue
		}
		vs := mp.values[id]
		if math.Abs(vs.current-vs.target) < convergenceEpsilon {
			continue
		}

		if m.Smoothing.Enabled {
			vs.current, vs.velocity = m.Smoothing.advance(vs.current, vs.target, vs.velocity, deltaMs)
		} else {
			vs.current = vs.target
			vs.velocity = 0
		}

		changes = append(changes, Change{ID: id, Value: vs.current, Mapping: m})
		mp.notify(id, vs.current)
	}
	return changes
}

// CurrentValue returns the smoothed value for a mapping id
func (mp *Mapper) CurrentValue(id string) (float64, bool) {
	vs, ok := mp.values[id]
	if !ok {
		return 0, false
	}
	return vs.current, true
}

// TargetValue returns the latest curve-mapped target for a mapping id
func (mp *Mapper) TargetValue(id string) (float64, bool) {
	vs, ok := mp.values[id]
	if !ok {
		return 0, false
	}
	return vs.target, true
}

// CurrentValues returns a copy of all smoothed values, for snapshots
func (mp *Mapper) CurrentValues() map[string]float64 {
	out := make(map[string]float64, len(mp.values))
	for id, vs := range mp.values {
		out[id] = vs.current
	}
	return out
}

// RestoreValues replaces smoothed values from a snapshot
// Targets follow the restored values and velocities reset to zero, so
// restored springs start at rest
func (mp *Mapper) RestoreValues(values map[string]float64) {
	for id, v := range values {
		if vs, ok := mp.values[id]; ok {
			vs.current = v
			vs.target = v
			vs.velocity = 0
		}
	}
}

// Reset zeroes all runtime state and raw parameter values
func (mp *Mapper) Reset() {
	for _, vs := range mp.values {
		vs.current, vs.target, vs.velocity = 0, 0, 0
	}
	mp.params = make(map[string]any)
}

// Subscribe registers a per-mapping subscriber
func (mp *Mapper) Subscribe(id string, fn Subscriber) {
	mp.subs[id] = append(mp.subs[id], fn)
}

// SubscribeAll registers a subscriber for every mapping's changes
func (mp *Mapper) SubscribeAll(fn Subscriber) {
	mp.allSubs = append(mp.allSubs, fn)
}

func (mp *Mapper) notify(id string, value float64) {
	for _, fn := range mp.subs[id] {
		fn(id, value)
	}
	for _, fn := range mp.allSubs {
		fn(id, value)
	}
}

// gatesPass evaluates a mapping's conditions against the raw parameter
// table. Implicit AND; a referenced parameter that was never set passes
func (mp *Mapper) gatesPass(m *ParameterMapping) bool {
	for i := range m.Conditions {
		c := &m.Conditions[i]
		stored, ok := mp.params[c.Parameter]
		if !ok {
			continue
		}
		if !compareGate(stored, c.Operator, c.Value) {
			return false
		}
	}
	return true
}

func compareGate(stored any, op graph.Operator, target any) bool {
	sn, sok := toNumber(stored)
	tn, tok := toNumber(target)

	if sok && tok {
		switch op {
		case graph.OpGreater:
			return sn > tn
		case graph.OpLess:
			return sn < tn
		case graph.OpGreaterEqual:
			return sn >= tn
		case graph.OpLessEqual:
			return sn <= tn
		case graph.OpEqual:
			return sn == tn
		case graph.OpNotEqual:
			return sn != tn
		}
		return false
	}

	// Non-numeric values only support equality
	switch op {
	case graph.OpEqual:
		return toString(stored) == toString(target)
	case graph.OpNotEqual:
		return toString(stored) != toString(target)
	}
	return false
}
