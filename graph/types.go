package graph

// ParamType declares the value type of a graph parameter
type ParamType string

const (
	ParamNumber ParamType = "number"
	ParamBool   ParamType = "bool"
	ParamString ParamType = "string"
)

// TransitionStyle tags how the audio layer should render a transition
// The engine never interprets it
type TransitionStyle string

const (
	StyleInstant   TransitionStyle = "instant"
	StyleCrossfade TransitionStyle = "crossfade"
	StyleMusical   TransitionStyle = "musical"
	StyleStinger   TransitionStyle = "stinger"
	StyleDuck      TransitionStyle = "duck"
	StyleLayerIn   TransitionStyle = "layer_in"
	StyleLayerOut  TransitionStyle = "layer_out"
)

// CombineMode selects how a transition's conditions are combined
type CombineMode string

const (
	CombineAll CombineMode = "and"
	CombineAny CombineMode = "or"
)

// ConditionKind discriminates TransitionCondition variants
type ConditionKind string

const (
	CondParameter     ConditionKind = "parameter"
	CondEvent         ConditionKind = "event"
	CondTimer         ConditionKind = "timer"
	CondStateDuration ConditionKind = "state_duration"
	CondRandom        ConditionKind = "random"
)

// Operator is a comparison operator for parameter conditions
type Operator string

const (
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
)

// LayerConfig describes one audio layer inside a state's payload
type LayerConfig struct {
	ID     string  `toml:"id"`
	Volume float64 `toml:"volume"`
	Pan    float64 `toml:"pan,omitempty"`
	Pitch  float64 `toml:"pitch,omitempty"`
	Loop   bool    `toml:"loop,omitempty"`
}

// AudioConfig is the opaque payload handed to the audio layer on state entry
// The state machine treats it as data only
type AudioConfig struct {
	Layers  []LayerConfig      `toml:"layers,omitempty"`
	Effects map[string]float64 `toml:"effects,omitempty"`
}

// AudioState is a named audio configuration the machine can be in
type AudioState struct {
	ID        string      `toml:"id"`
	Name      string      `toml:"name,omitempty"`
	Tags      []string    `toml:"tags,omitempty"`
	IsInitial bool        `toml:"initial,omitempty"`
	Config    AudioConfig `toml:"config,omitempty"`
}

// TransitionCondition is a single gate on a transition
// Fields are populated according to Kind; unused fields stay zero
type TransitionCondition struct {
	Kind ConditionKind `toml:"kind"`

	// CondParameter
	Parameter  string   `toml:"parameter,omitempty"`
	Operator   Operator `toml:"operator,omitempty"`
	Value      any      `toml:"value,omitempty"`
	Hysteresis float64  `toml:"hysteresis,omitempty"`

	// CondEvent
	Event string `toml:"event,omitempty"`

	// CondTimer / CondStateDuration: elapsed state time threshold
	DurationMs float64 `toml:"duration_ms,omitempty"`

	// CondRandom: Bernoulli threshold, 0 means the 0.5 default
	Threshold float64 `toml:"threshold,omitempty"`
}

// StateTransition is a directed, conditioned, prioritized edge between states
type StateTransition struct {
	ID          string                `toml:"id"`
	From        string                `toml:"from"`
	To          string                `toml:"to"`
	Style       TransitionStyle       `toml:"style,omitempty"`
	DurationMs  float64               `toml:"duration_ms,omitempty"`
	Conditions  []TransitionCondition `toml:"conditions,omitempty"`
	Combine     CombineMode           `toml:"combine,omitempty"`
	Priority    int                   `toml:"priority,omitempty"`
	CooldownMs  float64               `toml:"cooldown_ms,omitempty"`
	Description string                `toml:"description,omitempty"`
}

// GraphParameter declares a legal parameter name for a machine instance
type GraphParameter struct {
	Name    string    `toml:"name"`
	Type    ParamType `toml:"type"`
	Default any       `toml:"default,omitempty"`
	Min     *float64  `toml:"min,omitempty"`
	Max     *float64  `toml:"max,omitempty"`
}

// StateGraph is the static description of states, transitions and parameters
// It carries no runtime behavior
type StateGraph struct {
	ID          string            `toml:"id,omitempty"`
	Name        string            `toml:"name,omitempty"`
	States      []AudioState      `toml:"states"`
	Transitions []StateTransition `toml:"transitions,omitempty"`
	Parameters  []GraphParameter  `toml:"parameters,omitempty"`
}

// StateByID returns the state with the given id
func (g *StateGraph) StateByID(id string) (*AudioState, bool) {
	for i := range g.States {
		if g.States[i].ID == id {
			return &g.States[i], true
		}
	}
	return nil, false
}

// InitialState returns the state flagged initial, or the first declared state
// Returns nil for an empty graph
func (g *StateGraph) InitialState() *AudioState {
	for i := range g.States {
		if g.States[i].IsInitial {
			return &g.States[i]
		}
	}
	if len(g.States) > 0 {
		return &g.States[0]
	}
	return nil
}

// TransitionsFrom returns transitions leaving the given state in declaration order
func (g *StateGraph) TransitionsFrom(stateID string) []*StateTransition {
	var out []*StateTransition
	for i := range g.Transitions {
		if g.Transitions[i].From == stateID {
			out = append(out, &g.Transitions[i])
		}
	}
	return out
}

// ParameterByName returns the declared parameter with the given name
func (g *StateGraph) ParameterByName(name string) (*GraphParameter, bool) {
	for i := range g.Parameters {
		if g.Parameters[i].Name == name {
			return &g.Parameters[i], true
		}
	}
	return nil, false
}

// RandomThreshold returns the effective Bernoulli threshold for a random condition
func (c *TransitionCondition) RandomThreshold() float64 {
	if c.Threshold == 0 {
		return 0.5
	}
	return c.Threshold
}
