package mapping

import "math"

// CurveType selects the shaping function applied to normalized input
type CurveType string

const (
	CurveLinear      CurveType = "linear"
	CurveExponential CurveType = "exponential"
	CurveLogarithmic CurveType = "logarithmic"
	CurveSCurve      CurveType = "s_curve"
	CurveStep        CurveType = "step"
	CurveCustom      CurveType = "custom"
)

// Interpolation selects how custom curve segments blend between points
type Interpolation string

const (
	InterpLinear     Interpolation = "linear"
	InterpSmoothstep Interpolation = "smoothstep"
)

// CurvePoint is a control point of a custom curve, ordered by X
type CurvePoint struct {
	X             float64       `toml:"x"`
	Y             float64       `toml:"y"`
	Interpolation Interpolation `toml:"interpolation,omitempty"`
}

// Curve shapes a normalized [0,1] input
// Step and custom curves may legitimately leave [0,1]; authoring mistakes
// propagate rather than being masked
type Curve struct {
	Type CurveType `toml:"type"`

	Exponent  float64 `toml:"exponent,omitempty"`  // exponential
	Base      float64 `toml:"base,omitempty"`      // logarithmic
	Steepness float64 `toml:"steepness,omitempty"` // s_curve

	Steps  []float64    `toml:"steps,omitempty"`  // step: quantized output levels
	Points []CurvePoint `toml:"points,omitempty"` // custom: ordered control points
}

// Apply shapes a normalized input value
func (c Curve) Apply(x float64) float64 {
	switch c.Type {
	case CurveExponential:
		exp := c.Exponent
		if exp <= 0 {
			exp = 2
		}
		return math.Pow(x, exp)

	case CurveLogarithmic:
		base := c.Base
		if base <= 1 {
			base = 10
		}
		if x <= 0 {
			return 0
		}
		return math.Log(1+x*(base-1)) / math.Log(base)

	case CurveSCurve:
		steep := c.Steepness
		if steep <= 0 {
			steep = 10
		}
		return 1 / (1 + math.Exp(-steep*(x-0.5)))

	case CurveStep:
		if len(c.Steps) == 0 {
			return x
		}
		idx := int(x * float64(len(c.Steps)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(c.Steps) {
			idx = len(c.Steps) - 1
		}
		return c.Steps[idx]

	case CurveCustom:
		return c.applyCustom(x)

	default: // CurveLinear
		return x
	}
}

// applyCustom interpolates between the two bracketing points by X, using
// the upper point's interpolation mode. Inputs outside the point range
// clamp to the nearest endpoint value
func (c Curve) applyCustom(x float64) float64 {
	pts := c.Points
	if len(pts) == 0 {
		return x
	}
	if x <= pts[0].X {
		return pts[0].Y
	}
	last := pts[len(pts)-1]
	if x >= last.X {
		return last.Y
	}

	for i := 1; i < len(pts); i++ {
		lo, hi := pts[i-1], pts[i]
		if x > hi.X {
			continue
		}
		span := hi.X - lo.X
		if span <= 0 {
			return hi.Y
		}
		t := (x - lo.X) / span
		if hi.Interpolation == InterpSmoothstep {
			t = t * t * (3 - 2*t)
		}
		return lo.Y + (hi.Y-lo.Y)*t
	}
	return last.Y
}
