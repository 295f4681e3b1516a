package mapping

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// MappingSet is the declarative document form of a mapping collection
type MappingSet struct {
	ID       string             `toml:"id,omitempty"`
	Name     string             `toml:"name,omitempty"`
	Mappings []ParameterMapping `toml:"mappings"`
}

// Load parses a TOML byte slice into a validated mapping set
func Load(data []byte) (*MappingSet, error) {
	var set MappingSet
	if err := toml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mapping set: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// LoadFile reads and parses a mapping set definition file
func LoadFile(path string) (*MappingSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	set, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Validate checks each mapping for authoring errors
func (s *MappingSet) Validate() error {
	seen := make(map[string]bool, len(s.Mappings))
	for i := range s.Mappings {
		m := &s.Mappings[i]
		if m.ID == "" {
			return fmt.Errorf("mapping %d has empty id", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate mapping id '%s'", m.ID)
		}
		seen[m.ID] = true
		if err := m.Validate(); err != nil {
			return fmt.Errorf("mapping '%s': %w", m.ID, err)
		}
	}
	return nil
}

// Validate checks a single mapping descriptor
func (m *ParameterMapping) Validate() error {
	if m.Source.Name == "" {
		return fmt.Errorf("empty source name")
	}
	if m.Target.Kind == "" {
		return fmt.Errorf("empty target kind")
	}
	if m.Source.Range[0] == m.Source.Range[1] &&
		m.Transform.InputRange[0] == m.Transform.InputRange[1] {
		return fmt.Errorf("degenerate input range")
	}

	switch m.Curve.Type {
	case "", CurveLinear, CurveExponential, CurveLogarithmic, CurveSCurve:
	case CurveStep:
		if len(m.Curve.Steps) == 0 {
			return fmt.Errorf("step curve has no steps")
		}
	case CurveCustom:
		if len(m.Curve.Points) < 2 {
			return fmt.Errorf("custom curve needs at least two points")
		}
		for i := 1; i < len(m.Curve.Points); i++ {
			if m.Curve.Points[i].X < m.Curve.Points[i-1].X {
				return fmt.Errorf("custom curve points not ordered by x")
			}
		}
	default:
		return fmt.Errorf("unknown curve type '%s'", m.Curve.Type)
	}

	if dz := m.Transform.Deadzone; dz != nil && dz[0] > dz[1] {
		return fmt.Errorf("deadzone [%g,%g] is inverted", dz[0], dz[1])
	}

	switch m.Smoothing.Type {
	case "", SmoothLinear, SmoothExponential, SmoothSpring:
	default:
		return fmt.Errorf("unknown smoothing type '%s'", m.Smoothing.Type)
	}

	return nil
}
