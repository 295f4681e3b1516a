package mapping

import "math"

// SmoothingType selects how a mapping's current value chases its target
type SmoothingType string

const (
	SmoothLinear      SmoothingType = "linear"
	SmoothExponential SmoothingType = "exponential"
	SmoothSpring      SmoothingType = "spring"
)

// Default spring coefficients when unset
const (
	defaultTension = 100.0
	defaultDamping = 10.0
)

// SmoothingConfig controls per-tick value smoothing
// Rise and fall times apply asymmetrically by direction of movement
type SmoothingConfig struct {
	Enabled    bool          `toml:"enabled"`
	Type       SmoothingType `toml:"type,omitempty"`
	RiseTimeMs float64       `toml:"rise_time_ms,omitempty"`
	FallTimeMs float64       `toml:"fall_time_ms,omitempty"`
	Tension    float64       `toml:"tension,omitempty"`
	Damping    float64       `toml:"damping,omitempty"`
}

// advance moves current toward target over deltaMs, returning the new
// current and velocity. Velocity is only meaningful for spring smoothing
func (s SmoothingConfig) advance(current, target, velocity, deltaMs float64) (float64, float64) {
	switch s.Type {
	case SmoothExponential:
		t := s.timeFor(current, target)
		if t <= 0 {
			return target, 0
		}
		return current + (target-current)*(1-math.Exp(-deltaMs/(t*0.3))), 0

	case SmoothSpring:
		tension, damping := s.Tension, s.Damping
		if tension <= 0 {
			tension = defaultTension
		}
		if damping <= 0 {
			damping = defaultDamping
		}
		dt := deltaMs / 1000
		force := tension*(target-current) - damping*velocity
		velocity += force * dt
		current += velocity * dt
		return current, velocity

	default: // SmoothLinear
		t := s.timeFor(current, target)
		if t <= 0 {
			return target, 0
		}
		step := deltaMs / t
		if target > current {
			current += step
			if current > target {
				current = target
			}
		} else {
			current -= step
			if current < target {
				current = target
			}
		}
		return current, 0
	}
}

// timeFor picks the rise or fall time by direction of movement
func (s SmoothingConfig) timeFor(current, target float64) float64 {
	if target < current && s.FallTimeMs > 0 {
		return s.FallTimeMs
	}
	if s.RiseTimeMs > 0 {
		return s.RiseTimeMs
	}
	return s.FallTimeMs
}
