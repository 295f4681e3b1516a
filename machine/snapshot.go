package machine

import "time"

// Snapshot captures the machine's observable runtime state
type Snapshot struct {
	CurrentStateID string             `toml:"current_state_id"`
	Parameters     map[string]any     `toml:"parameters,omitempty"`
	StateEntryTime int64              `toml:"state_entry_time"` // epoch ms
	Cooldowns      map[string]float64 `toml:"cooldowns,omitempty"`
}

// Snapshot captures current state id, the parameter table, the state entry
// timestamp and outstanding cooldowns
func (m *Machine) Snapshot() *Snapshot {
	if m.current == nil {
		return nil
	}
	return &Snapshot{
		CurrentStateID: m.current.ID,
		Parameters:     m.Parameters(),
		StateEntryTime: m.entryTime.UnixMilli(),
		Cooldowns:      m.Cooldowns(),
	}
}

// Restore replaces runtime state from a snapshot
// Cancels any pending transition completion. Re-entering the stored state
// emits a state-entered notification but fires no transitions
func (m *Machine) Restore(s *Snapshot) bool {
	if s == nil || m.graph == nil {
		return false
	}
	state, ok := m.graph.StateByID(s.CurrentStateID)
	if !ok {
		m.logger.Printf("machine: snapshot references unknown state %q", s.CurrentStateID)
		return false
	}

	m.pending = nil
	m.transitioning = false

	m.params = make(map[string]any, len(s.Parameters))
	for k, v := range s.Parameters {
		m.params[k] = v
	}
	m.cooldowns = make(map[string]float64, len(s.Cooldowns))
	for k, v := range s.Cooldowns {
		m.cooldowns[k] = v
	}

	m.enterState(state)
	m.entryTime = time.UnixMilli(s.StateEntryTime)
	m.elapsedMs = float64(m.clock.Now().Sub(m.entryTime).Milliseconds())
	if m.elapsedMs < 0 {
		m.elapsedMs = 0
	}
	return true
}
