package mapping

import "github.com/lixenwraith/audio-director/graph"

// TargetKind tags what audio control a mapping drives
type TargetKind string

const (
	TargetLayerVolume    TargetKind = "layer_volume"
	TargetLayerPan       TargetKind = "layer_pan"
	TargetLayerPitch     TargetKind = "layer_pitch"
	TargetMasterVolume   TargetKind = "master_volume"
	TargetEffectParam    TargetKind = "effect_param"
	TargetMusicIntensity TargetKind = "music_intensity"
	TargetRTPC           TargetKind = "rtpc"
	TargetStateBlend     TargetKind = "state_blend"
	TargetCustom         TargetKind = "custom"
)

// ParameterSource names the game parameter feeding a mapping and its
// declared input range, used for normalization
type ParameterSource struct {
	Name  string     `toml:"name"`
	Range [2]float64 `toml:"range"`
}

// ParameterTarget is the fully-resolved audio control descriptor
// ID carries a layer id for layer targets, an effect name for effect_param,
// an RTPC name for rtpc, and so on
type ParameterTarget struct {
	Kind  TargetKind `toml:"kind"`
	ID    string     `toml:"id,omitempty"`
	Param string     `toml:"param,omitempty"` // effect_param sub-parameter
}

// MappingCondition gates a mapping on another game parameter
// All conditions must pass for the mapping to accept new input; a referenced
// parameter that was never set passes
type MappingCondition struct {
	Parameter string         `toml:"parameter"`
	Operator  graph.Operator `toml:"operator"`
	Value     any            `toml:"value"`
}

// ParameterMapping is the declarative source-to-target pipeline descriptor
type ParameterMapping struct {
	ID         string             `toml:"id"`
	Name       string             `toml:"name,omitempty"`
	Source     ParameterSource    `toml:"source"`
	Target     ParameterTarget    `toml:"target"`
	Curve      Curve              `toml:"curve"`
	Transform  ValueTransform     `toml:"transform"`
	Smoothing  SmoothingConfig    `toml:"smoothing,omitempty"`
	Conditions []MappingCondition `toml:"conditions,omitempty"`
	Enabled    bool               `toml:"enabled"`
}
