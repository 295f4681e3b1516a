package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/audio-director/engine"
	"github.com/lixenwraith/audio-director/graph"
)

const (
	// DefaultSampleRate matches common game audio output
	DefaultSampleRate = beep.SampleRate(48000)

	// silenceFloor is the linear volume below which a channel goes silent
	// instead of chasing -inf dB
	silenceFloor = 0.001
)

// Renderer is a beep-backed implementation of the engine's audio layer
// Each layer is a Ctrl-gated volume/pan/resample chain over a procedural
// oscillator (or a registered streamer) feeding one mixer
type Renderer struct {
	mu sync.Mutex

	sr     beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume

	layers  map[string]*layerChannel
	order   []string
	sources map[string]beep.Streamer

	masterVol float64
	effects   map[string]map[string]float64

	started bool
}

// layerChannel is one layer's playback chain
type layerChannel struct {
	ctrl      *beep.Ctrl
	vol       *effects.Volume
	pan       *effects.Pan
	resampler *beep.Resampler

	volume  float64
	panning float64
	pitch   float64
	playing bool
}

// NewRenderer creates a renderer; no audio device is opened until Start
func NewRenderer(sr beep.SampleRate) *Renderer {
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	mixer := &beep.Mixer{}
	r := &Renderer{
		sr:        sr,
		mixer:     mixer,
		master:    &effects.Volume{Streamer: mixer, Base: 2},
		layers:    make(map[string]*layerChannel),
		sources:   make(map[string]beep.Streamer),
		masterVol: 1,
		effects:   make(map[string]map[string]float64),
	}
	return r
}

// RegisterSource attaches a streamer to a layer id before that layer is
// first activated. Layers without a source get a default oscillator
func (r *Renderer) RegisterSource(id string, s beep.Streamer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[id] = s
}

// Start opens the speaker and begins playback of the master chain
func (r *Renderer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	if err := speaker.Init(r.sr, r.sr.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(r.master)
	r.started = true
	return nil
}

// Stop silences and detaches everything from the speaker
func (r *Renderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	speaker.Lock()
	for _, ch := range r.layers {
		ch.ctrl.Paused = true
	}
	speaker.Unlock()
	speaker.Clear()
	r.started = false
}

// locked runs fn under the speaker lock when the device is live, so chain
// mutation cannot race the audio callback
func (r *Renderer) locked(fn func()) {
	if r.started {
		speaker.Lock()
		fn()
		speaker.Unlock()
		return
	}
	fn()
}

// ApplyState activates a state's layer set; layers absent from the payload
// are paused
func (r *Renderer) ApplyState(cfg graph.AudioConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make(map[string]bool, len(cfg.Layers))
	r.locked(func() {
		for _, lc := range cfg.Layers {
			active[lc.ID] = true
			ch := r.ensureLayer(lc.ID)
			ch.playing = true
			ch.ctrl.Paused = false
			r.applyVolume(ch, lc.Volume)
			r.applyPan(ch, lc.Pan)
			r.applyPitch(ch, lc.Pitch)
		}
		for id, ch := range r.layers {
			if !active[id] {
				ch.playing = false
				ch.ctrl.Paused = true
			}
		}
	})

	for effect, value := range cfg.Effects {
		r.setEffect(effect, "level", value)
	}
}

// SetLayerVolume sets a layer's linear volume in [0,1]
func (r *Renderer) SetLayerVolume(id string, volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked(func() {
		r.applyVolume(r.ensureLayer(id), volume)
	})
}

// SetLayerPan sets a layer's stereo position in [-1,1]
func (r *Renderer) SetLayerPan(id string, pan float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked(func() {
		r.applyPan(r.ensureLayer(id), pan)
	})
}

// SetLayerPitch sets a layer's playback rate ratio; 1 is unshifted
func (r *Renderer) SetLayerPitch(id string, pitch float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked(func() {
		r.applyPitch(r.ensureLayer(id), pitch)
	})
}

// SetLayerPlaying pauses or resumes a layer
func (r *Renderer) SetLayerPlaying(id string, playing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked(func() {
		ch := r.ensureLayer(id)
		ch.playing = playing
		ch.ctrl.Paused = !playing
	})
}

// SetMasterVolume sets the master linear volume in [0,1]
func (r *Renderer) SetMasterVolume(volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked(func() {
		r.masterVol = clamp01(volume)
		setGain(r.master, r.masterVol)
	})
}

// SetEffectParam records a named effect parameter
// The renderer carries no DSP effect chain; values are retained so
// collaborators can poll the intended settings
func (r *Renderer) SetEffectParam(effect, param string, value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setEffect(effect, param, value)
}

// EffectParam returns the last value recorded for an effect parameter
func (r *Renderer) EffectParam(effect, param string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	params, ok := r.effects[effect]
	if !ok {
		return 0, false
	}
	v, ok := params[param]
	return v, ok
}

// LayerStates reports per-layer playback state in activation order
func (r *Renderer) LayerStates() []engine.LayerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]engine.LayerState, 0, len(r.order))
	for _, id := range r.order {
		ch := r.layers[id]
		out = append(out, engine.LayerState{
			ID:        id,
			IsPlaying: ch.playing,
			Volume:    ch.volume,
			Pan:       ch.panning,
		})
	}
	return out
}

// MasterVolume returns the current master linear volume
func (r *Renderer) MasterVolume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.masterVol
}

// ensureLayer creates the playback chain for an id on first use
// Caller holds r.mu (and the speaker lock when live)
func (r *Renderer) ensureLayer(id string) *layerChannel {
	if ch, ok := r.layers[id]; ok {
		return ch
	}

	src, ok := r.sources[id]
	if !ok {
		src = NewOscillator(defaultFrequency(id), WaveSine, r.sr)
	}

	resampler := beep.ResampleRatio(4, 1, src)
	vol := &effects.Volume{Streamer: resampler, Base: 2, Silent: true}
	pan := &effects.Pan{Streamer: vol}
	ctrl := &beep.Ctrl{Streamer: pan, Paused: true}

	ch := &layerChannel{
		ctrl:      ctrl,
		vol:       vol,
		pan:       pan,
		resampler: resampler,
		pitch:     1,
	}
	r.layers[id] = ch
	r.order = append(r.order, id)
	r.mixer.Add(ctrl)
	return ch
}

func (r *Renderer) applyVolume(ch *layerChannel, volume float64) {
	ch.volume = clamp01(volume)
	setGain(ch.vol, ch.volume)
}

func (r *Renderer) applyPan(ch *layerChannel, pan float64) {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	ch.panning = pan
	ch.pan.Pan = pan
}

func (r *Renderer) applyPitch(ch *layerChannel, pitch float64) {
	if pitch <= 0 {
		pitch = 1
	}
	ch.pitch = pitch
	ch.resampler.SetRatio(pitch)
}

func (r *Renderer) setEffect(effect, param string, value float64) {
	params, ok := r.effects[effect]
	if !ok {
		params = make(map[string]float64)
		r.effects[effect] = params
	}
	params[param] = value
}

// setGain maps linear volume onto beep's exponential volume control
func setGain(v *effects.Volume, linear float64) {
	if linear <= silenceFloor {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(linear)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
