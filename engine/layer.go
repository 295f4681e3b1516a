package engine

import "github.com/lixenwraith/audio-director/graph"

// Layer is the audio rendering collaborator boundary
// The engine only emits intents; the implementation owns actual playback
type Layer interface {
	// ApplyState activates a state's audio configuration
	ApplyState(cfg graph.AudioConfig)

	SetLayerVolume(id string, volume float64)
	SetLayerPan(id string, pan float64)
	SetLayerPitch(id string, pitch float64)
	SetLayerPlaying(id string, playing bool)
	SetMasterVolume(volume float64)
	SetEffectParam(effect, param string, value float64)

	// LayerStates reports per-layer playback state for snapshots
	LayerStates() []LayerState
	MasterVolume() float64
}

// LayerState is the snapshot form of one audio layer
type LayerState struct {
	ID        string  `toml:"id"`
	IsPlaying bool    `toml:"is_playing"`
	Volume    float64 `toml:"volume"`
	Pan       float64 `toml:"pan"`
}

// NopLayer discards all intents; useful for tests and headless runs
type NopLayer struct {
	master float64
}

// NewNopLayer creates a silent layer with full master volume
func NewNopLayer() *NopLayer {
	return &NopLayer{master: 1}
}

func (n *NopLayer) ApplyState(graph.AudioConfig)           {}
func (n *NopLayer) SetLayerVolume(string, float64)         {}
func (n *NopLayer) SetLayerPan(string, float64)            {}
func (n *NopLayer) SetLayerPitch(string, float64)          {}
func (n *NopLayer) SetLayerPlaying(string, bool)           {}
func (n *NopLayer) SetMasterVolume(v float64)              { n.master = v }
func (n *NopLayer) SetEffectParam(string, string, float64) {}
func (n *NopLayer) LayerStates() []LayerState              { return nil }
func (n *NopLayer) MasterVolume() float64                  { return n.master }
