package events

import "github.com/lixenwraith/audio-director/graph"

// EventType identifies an engine event
type EventType int

const (
	// EventParameterChanged signals a state machine parameter write
	// Payload: *ParameterChangedPayload
	EventParameterChanged EventType = iota + 1

	// EventStateEntered signals the machine entered a state, carrying the
	// state's audio configuration payload
	// Payload: *StateEnteredPayload
	EventStateEntered

	// EventTransitionStarted signals a transition began executing
	// Payload: *TransitionPayload
	EventTransitionStarted

	// EventTransitionCompleted signals a transition finished and its
	// destination state was entered
	// Payload: *TransitionPayload
	EventTransitionCompleted

	// EventParameterMapped signals a mapper value change with its
	// fully-resolved target descriptor
	// Payload: *ParameterMappedPayload
	EventParameterMapped

	// EventEffectParamChanged carries target kinds the facade does not
	// special-case, preserving forward compatibility
	// Payload: *EffectParamChangedPayload
	EventEffectParamChanged
)

// Event is a typed engine event with its payload
type Event struct {
	Type    EventType
	Payload any
}

// ParameterChangedPayload carries a parameter write
type ParameterChangedPayload struct {
	Name  string
	Value any
}

// StateEnteredPayload carries a state entry
type StateEnteredPayload struct {
	State    *graph.AudioState
	Previous *graph.AudioState
	Config   graph.AudioConfig
}

// TransitionPayload carries a transition lifecycle notification
type TransitionPayload struct {
	Transition *graph.StateTransition
	To         *graph.AudioState
}

// ParameterMappedPayload carries a mapped value and its target descriptor
type ParameterMappedPayload struct {
	MappingID string
	Value     float64
	Kind      string // mapping target kind tag
	TargetID  string
	Param     string
}

// EffectParamChangedPayload is the opaque forward-compatible notification
type EffectParamChangedPayload struct {
	EffectType string
	Param      string
	Value      float64
}
