package graph

import "fmt"

// Validate checks referential integrity of the graph
// These are authoring errors; the runtime degrades to no-ops when they slip through
func (g *StateGraph) Validate() error {
	if len(g.States) == 0 {
		return fmt.Errorf("graph '%s' has no states", g.ID)
	}

	seen := make(map[string]bool, len(g.States))
	for i := range g.States {
		s := &g.States[i]
		if s.ID == "" {
			return fmt.Errorf("graph '%s': state %d has empty id", g.ID, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("graph '%s': duplicate state id '%s'", g.ID, s.ID)
		}
		seen[s.ID] = true
	}

	initials := 0
	for i := range g.States {
		if g.States[i].IsInitial {
			initials++
		}
	}
	if initials > 1 {
		return fmt.Errorf("graph '%s': %d states flagged initial, want at most one", g.ID, initials)
	}

	transSeen := make(map[string]bool, len(g.Transitions))
	for i := range g.Transitions {
		t := &g.Transitions[i]
		if t.ID == "" {
			return fmt.Errorf("graph '%s': transition %d has empty id", g.ID, i)
		}
		if transSeen[t.ID] {
			return fmt.Errorf("graph '%s': duplicate transition id '%s'", g.ID, t.ID)
		}
		transSeen[t.ID] = true

		if !seen[t.From] {
			return fmt.Errorf("transition '%s' references unknown from-state '%s'", t.ID, t.From)
		}
		if !seen[t.To] {
			return fmt.Errorf("transition '%s' references unknown to-state '%s'", t.ID, t.To)
		}
		if t.Combine != "" && t.Combine != CombineAll && t.Combine != CombineAny {
			return fmt.Errorf("transition '%s' has unknown combine mode '%s'", t.ID, t.Combine)
		}

		for j := range t.Conditions {
			if err := validateCondition(g, &t.Conditions[j]); err != nil {
				return fmt.Errorf("transition '%s' condition %d: %w", t.ID, j, err)
			}
		}
	}

	paramSeen := make(map[string]bool, len(g.Parameters))
	for i := range g.Parameters {
		p := &g.Parameters[i]
		if p.Name == "" {
			return fmt.Errorf("graph '%s': parameter %d has empty name", g.ID, i)
		}
		if paramSeen[p.Name] {
			return fmt.Errorf("graph '%s': duplicate parameter '%s'", g.ID, p.Name)
		}
		paramSeen[p.Name] = true

		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			return fmt.Errorf("parameter '%s': min %g exceeds max %g", p.Name, *p.Min, *p.Max)
		}
	}

	return nil
}

func validateCondition(g *StateGraph, c *TransitionCondition) error {
	switch c.Kind {
	case CondParameter:
		if c.Parameter == "" {
			return fmt.Errorf("parameter condition has empty parameter name")
		}
		if _, ok := g.ParameterByName(c.Parameter); !ok {
			return fmt.Errorf("parameter condition references undeclared parameter '%s'", c.Parameter)
		}
		switch c.Operator {
		case OpGreater, OpLess, OpGreaterEqual, OpLessEqual, OpEqual, OpNotEqual:
		default:
			return fmt.Errorf("unknown operator '%s'", c.Operator)
		}
	case CondEvent:
		if c.Event == "" {
			return fmt.Errorf("event condition has empty event name")
		}
	case CondTimer, CondStateDuration:
		if c.DurationMs < 0 {
			return fmt.Errorf("timer condition has negative duration %g", c.DurationMs)
		}
	case CondRandom:
		if c.Threshold < 0 || c.Threshold > 1 {
			return fmt.Errorf("random threshold %g outside [0,1]", c.Threshold)
		}
	default:
		return fmt.Errorf("unknown condition kind '%s'", c.Kind)
	}
	return nil
}
