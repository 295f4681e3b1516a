package mapping

import "strconv"

// ValueTransform scales curve output into the target's value space
type ValueTransform struct {
	InputRange  [2]float64  `toml:"input_range,omitempty"` // falls back to the source range when degenerate
	OutputRange [2]float64  `toml:"output_range"`
	Clamp       bool        `toml:"clamp,omitempty"`
	Invert      bool        `toml:"invert,omitempty"`
	Deadzone    *[2]float64 `toml:"deadzone,omitempty"` // normalized sub-range pinned to the output midpoint
	Scale       *float64    `toml:"scale,omitempty"`    // post-curve multiplicative
	Offset      *float64    `toml:"offset,omitempty"`   // post-curve additive
}

// MapValue runs the full value pipeline for a mapping: coerce, normalize,
// deadzone, clamp, invert, curve, scale into the output range, then the
// optional post scale and offset. Pure function of the raw input and config
func MapValue(raw any, m *ParameterMapping) float64 {
	x := coerce(raw)

	lo, hi := m.Transform.InputRange[0], m.Transform.InputRange[1]
	if hi == lo {
		lo, hi = m.Source.Range[0], m.Source.Range[1]
	}

	// Degenerate range guard: treat as normalized 0 rather than divide by zero
	var norm float64
	if hi != lo {
		norm = (x - lo) / (hi - lo)
	}

	outLo, outHi := m.Transform.OutputRange[0], m.Transform.OutputRange[1]

	if dz := m.Transform.Deadzone; dz != nil && norm >= dz[0] && norm <= dz[1] {
		return (outLo + outHi) / 2
	}

	if m.Transform.Clamp {
		if norm < 0 {
			norm = 0
		} else if norm > 1 {
			norm = 1
		}
	}

	if m.Transform.Invert {
		norm = 1 - norm
	}

	shaped := m.Curve.Apply(norm)

	out := outLo + shaped*(outHi-outLo)

	if m.Transform.Scale != nil {
		out *= *m.Transform.Scale
	}
	if m.Transform.Offset != nil {
		out += *m.Transform.Offset
	}
	return out
}

// toNumber coerces a value to float64, reporting whether it was numeric
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

// coerce turns any raw game value into a number for the value pipeline
// Non-numeric values fall back to 0
func coerce(v any) float64 {
	f, _ := toNumber(v)
	return f
}
