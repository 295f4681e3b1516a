package mapping

import "testing"

func TestLoadParsesMappingSet(t *testing.T) {
	doc := `
id = "combat_mix"

[[mappings]]
id = "intensity_volume"
enabled = true

[mappings.source]
name = "intensity"
range = [0.0, 1.0]

[mappings.target]
kind = "layer_volume"
id = "combat"

[mappings.curve]
type = "exponential"
exponent = 2.0

[mappings.transform]
output_range = [0.0, 1.0]
clamp = true

[mappings.smoothing]
enabled = true
type = "linear"
rise_time_ms = 100.0
fall_time_ms = 400.0

[[mappings.conditions]]
parameter = "in_combat"
operator = "=="
value = 1.0
`
	set, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("failed to load mapping set: %v", err)
	}
	if set.ID != "combat_mix" || len(set.Mappings) != 1 {
		t.Fatalf("unexpected set: %+v", set)
	}

	m := set.Mappings[0]
	if m.Source.Name != "intensity" || m.Target.Kind != TargetLayerVolume {
		t.Errorf("source/target not decoded: %+v", m)
	}
	if m.Curve.Type != CurveExponential || m.Curve.Exponent != 2 {
		t.Errorf("curve not decoded: %+v", m.Curve)
	}
	if !m.Smoothing.Enabled || m.Smoothing.FallTimeMs != 400 {
		t.Errorf("smoothing not decoded: %+v", m.Smoothing)
	}
	if len(m.Conditions) != 1 || m.Conditions[0].Parameter != "in_combat" {
		t.Errorf("conditions not decoded: %+v", m.Conditions)
	}
}

func TestValidateRejectsDuplicateMappingIDs(t *testing.T) {
	set := &MappingSet{Mappings: []ParameterMapping{
		*intensityMapping(),
		*intensityMapping(),
	}}
	if err := set.Validate(); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestValidateMappingErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ParameterMapping)
	}{
		{"empty source", func(m *ParameterMapping) { m.Source.Name = "" }},
		{"empty target kind", func(m *ParameterMapping) { m.Target.Kind = "" }},
		{"degenerate range", func(m *ParameterMapping) { m.Source.Range = [2]float64{1, 1} }},
		{"step without steps", func(m *ParameterMapping) { m.Curve = Curve{Type: CurveStep} }},
		{"custom with one point", func(m *ParameterMapping) {
			m.Curve = Curve{Type: CurveCustom, Points: []CurvePoint{{X: 0, Y: 0}}}
		}},
		{"custom out of order", func(m *ParameterMapping) {
			m.Curve = Curve{Type: CurveCustom, Points: []CurvePoint{{X: 0.5, Y: 0}, {X: 0.2, Y: 1}}}
		}},
		{"unknown curve type", func(m *ParameterMapping) { m.Curve = Curve{Type: "zigzag"} }},
		{"inverted deadzone", func(m *ParameterMapping) {
			dz := [2]float64{0.8, 0.2}
			m.Transform.Deadzone = &dz
		}},
		{"unknown smoothing", func(m *ParameterMapping) { m.Smoothing.Type = "bezier" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := intensityMapping()
			tc.mutate(m)
			if err := m.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateAcceptsTransformInputRangeOverDegenerateSource(t *testing.T) {
	m := intensityMapping()
	m.Source.Range = [2]float64{0, 0}
	m.Transform.InputRange = [2]float64{0, 100}
	if err := m.Validate(); err != nil {
		t.Errorf("transform input range should satisfy the range check: %v", err)
	}
}
