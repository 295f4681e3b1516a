package engine

import "github.com/lixenwraith/audio-director/machine"

// Snapshot captures the director's observable runtime state
// Round-trips bit-for-bit except spring velocities, which restart at rest
type Snapshot struct {
	StateMachine *machine.Snapshot  `toml:"state_machine,omitempty"`
	Parameters   map[string]float64 `toml:"parameters,omitempty"` // mapping id -> current value
	Layers       []LayerState       `toml:"layers,omitempty"`
	MasterVolume float64            `toml:"master_volume"`
}

// Snapshot captures the state machine, mapper values and audio layer state
func (d *Director) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return &Snapshot{
		StateMachine: d.machine.Snapshot(),
		Parameters:   d.mapper.CurrentValues(),
		Layers:       d.layer.LayerStates(),
		MasterVolume: d.layer.MasterVolume(),
	}
}

// LoadSnapshot restores runtime state
// Restoring fires no transition side effects beyond what re-entering the
// stored state implies. Layer state is reapplied after the machine so the
// stored mix wins over the state's default payload
func (d *Director) LoadSnapshot(s *Snapshot) bool {
	if s == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	ok := true
	if s.StateMachine != nil {
		ok = d.machine.Restore(s.StateMachine)
	}
	d.mapper.RestoreValues(s.Parameters)

	for _, ls := range s.Layers {
		d.layer.SetLayerPlaying(ls.ID, ls.IsPlaying)
		d.layer.SetLayerVolume(ls.ID, ls.Volume)
		d.layer.SetLayerPan(ls.ID, ls.Pan)
	}
	d.layer.SetMasterVolume(s.MasterVolume)
	return ok
}
