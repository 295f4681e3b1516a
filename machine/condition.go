package machine

import (
	"strconv"

	"github.com/lixenwraith/audio-director/graph"
)

// conditionsSatisfied applies the transition's AND/OR combine rule during
// passive evaluation. Event conditions never pass here; they only fire
// through TriggerEvent
func (m *Machine) conditionsSatisfied(t *graph.StateTransition) bool {
	if len(t.Conditions) == 0 {
		return false
	}

	any := t.Combine == graph.CombineAny
	for i := range t.Conditions {
		ok := m.evaluateCondition(&t.Conditions[i])
		if any && ok {
			return true
		}
		if !any && !ok {
			return false
		}
	}
	return !any
}

func (m *Machine) evaluateCondition(c *graph.TransitionCondition) bool {
	switch c.Kind {
	case graph.CondParameter:
		stored, ok := m.params[c.Parameter]
		if !ok {
			return false
		}
		return compare(stored, c.Operator, c.Value, c.Hysteresis)

	case graph.CondEvent:
		return false

	case graph.CondTimer, graph.CondStateDuration:
		return m.elapsedMs >= c.DurationMs

	case graph.CondRandom:
		return m.rng.Float64() < c.RandomThreshold()

	default:
		return false
	}
}

// compare evaluates a stored parameter value against a condition target
// Numeric order operators widen the threshold by the hysteresis band away
// from the firing direction, so values must clear the band to fire
func compare(stored any, op graph.Operator, target any, hysteresis float64) bool {
	sn, sok := toNumber(stored)
	tn, tok := toNumber(target)

	if sok && tok {
		switch op {
		case graph.OpGreater:
			return sn > tn+hysteresis
		case graph.OpLess:
			return sn < tn-hysteresis
		case graph.OpGreaterEqual:
			return sn >= tn+hysteresis
		case graph.OpLessEqual:
			return sn <= tn-hysteresis
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

// toNumber coerces a parameter value to float64
// Booleans map to 0/1, numeric strings are parsed
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	if f, ok := toNumber(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return ""
}
