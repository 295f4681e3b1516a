package machine

import (
	"testing"

	"github.com/lixenwraith/audio-director/graph"
)

func hysteresisGraph() *graph.StateGraph {
	return &graph.StateGraph{
		States: []graph.AudioState{
			{ID: "calm", IsInitial: true},
			{ID: "tense"},
		},
		Transitions: []graph.StateTransition{
			{
				ID: "calm_to_tense", From: "calm", To: "tense",
				Conditions: []graph.TransitionCondition{
					{Kind: graph.CondParameter, Parameter: "threat", Operator: graph.OpGreater, Value: 0.5, Hysteresis: 0.1},
				},
			},
			{
				ID: "tense_to_calm", From: "tense", To: "calm",
				Conditions: []graph.TransitionCondition{
					{Kind: graph.CondParameter, Parameter: "threat", Operator: graph.OpLess, Value: 0.5, Hysteresis: 0.1},
				},
			},
		},
		Parameters: []graph.GraphParameter{
			{Name: "threat", Type: graph.ParamNumber, Default: 0.0},
		},
	}
}

func TestHysteresisWidensThresholdUpward(t *testing.T) {
	m := New(hysteresisGraph(), WithLogger(quietLogger()))

	// Inside the hysteresis band: 0.55 is not above 0.5 + 0.1
	m.SetParameter("threat", 0.55)
	if got := m.CurrentState().ID; got != "calm" {
		t.Errorf("value inside band should not fire, got %s", got)
	}

	m.SetParameter("threat", 0.61)
	if got := m.CurrentState().ID; got != "tense" {
		t.Errorf("value beyond band should fire, got %s", got)
	}
}

func TestHysteresisWidensThresholdDownward(t *testing.T) {
	m := New(hysteresisGraph(), WithLogger(quietLogger()))
	m.SetParameter("threat", 0.9)
	if m.CurrentState().ID != "tense" {
		t.Fatal("setup failed")
	}

	// 0.45 is not below 0.5 - 0.1, must hold tense
	m.SetParameter("threat", 0.45)
	if got := m.CurrentState().ID; got != "tense" {
		t.Errorf("value inside band should not fire back, got %s", got)
	}

	m.SetParameter("threat", 0.39)
	if got := m.CurrentState().ID; got != "calm" {
		t.Errorf("value beyond band should fire back, got %s", got)
	}
}

func TestCompareNumericOperators(t *testing.T) {
	cases := []struct {
		name   string
		stored any
		op     graph.Operator
		target any
		want   bool
	}{
		{"greater true", 2.0, graph.OpGreater, 1.0, true},
		{"greater false on equal", 1.0, graph.OpGreater, 1.0, false},
		{"less true", 0.5, graph.OpLess, 1.0, true},
		{"greater or equal on equal", 1.0, graph.OpGreaterEqual, 1.0, true},
		{"less or equal on equal", 1.0, graph.OpLessEqual, 1.0, true},
		{"equal ints and floats", 3, graph.OpEqual, 3.0, true},
		{"not equal", 3.0, graph.OpNotEqual, 4.0, true},
		{"bool coerces to one", true, graph.OpGreater, 0.0, true},
		{"numeric string coerces", "2.5", graph.OpGreater, 2.0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := compare(tc.stored, tc.op, tc.target, 0); got != tc.want {
				t.Errorf("compare(%v %s %v) = %v, want %v", tc.stored, tc.op, tc.target, got, tc.want)
			}
		})
	}
}

func TestCompareStringsSupportEqualityOnly(t *testing.T) {
	if !compare("zone_cave", graph.OpEqual, "zone_cave", 0) {
		t.Error("string equality should hold")
	}
	if !compare("zone_cave", graph.OpNotEqual, "zone_field", 0) {
		t.Error("string inequality should hold")
	}
	if compare("zone_cave", graph.OpGreater, "zone_field", 0) {
		t.Error("ordering operators on non-numeric strings should be false")
	}
}

func TestCombineAnyFiresOnSingleMatch(t *testing.T) {
	g := &graph.StateGraph{
		States: []graph.AudioState{{ID: "a", IsInitial: true}, {ID: "b"}},
		Transitions: []graph.StateTransition{
			{
				ID: "either", From: "a", To: "b", Combine: graph.CombineAny,
				Conditions: []graph.TransitionCondition{
					{Kind: graph.CondParameter, Parameter: "x", Operator: graph.OpGreater, Value: 10.0},
					{Kind: graph.CondParameter, Parameter: "y", Operator: graph.OpGreater, Value: 0.0},
				},
			},
		},
		Parameters: []graph.GraphParameter{
			{Name: "x", Type: graph.ParamNumber, Default: 0.0},
			{Name: "y", Type: graph.ParamNumber, Default: 0.0},
		},
	}
	m := New(g, WithLogger(quietLogger()))

	m.SetParameter("y", 1.0)
	if got := m.CurrentState().ID; got != "b" {
		t.Errorf("any-combined transition should fire on one match, got %s", got)
	}
}

func TestCombineAllRequiresEveryCondition(t *testing.T) {
	g := &graph.StateGraph{
		States: []graph.AudioState{{ID: "a", IsInitial: true}, {ID: "b"}},
		Transitions: []graph.StateTransition{
			{
				ID: "both", From: "a", To: "b", Combine: graph.CombineAll,
				Conditions: []graph.TransitionCondition{
					{Kind: graph.CondParameter, Parameter: "x", Operator: graph.OpGreater, Value: 0.0},
					{Kind: graph.CondParameter, Parameter: "y", Operator: graph.OpGreater, Value: 0.0},
				},
			},
		},
		Parameters: []graph.GraphParameter{
			{Name: "x", Type: graph.ParamNumber, Default: 0.0},
			{Name: "y", Type: graph.ParamNumber, Default: 0.0},
		},
	}
	m := New(g, WithLogger(quietLogger()))

	m.SetParameter("x", 1.0)
	if got := m.CurrentState().ID; got != "a" {
		t.Errorf("all-combined transition fired with one condition unmet, got %s", got)
	}

	m.SetParameter("y", 1.0)
	if got := m.CurrentState().ID; got != "b" {
		t.Errorf("all-combined transition should fire once both hold, got %s", got)
	}
}

func TestEmptyConditionListNeverFires(t *testing.T) {
	g := &graph.StateGraph{
		States: []graph.AudioState{{ID: "a", IsInitial: true}, {ID: "b"}},
		Transitions: []graph.StateTransition{
			{ID: "unconditioned", From: "a", To: "b"},
		},
		Parameters: []graph.GraphParameter{{Name: "x", Type: graph.ParamNumber}},
	}
	m := New(g, WithLogger(quietLogger()))

	m.SetParameter("x", 1.0)
	m.Update(1000)
	if got := m.CurrentState().ID; got != "a" {
		t.Errorf("transition without conditions fired passively, got %s", got)
	}
}
