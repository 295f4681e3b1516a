// Interactive demo: drive the audio director with the keyboard and watch
// states, parameters and mapped values respond in real time
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/audio-director/audio"
	"github.com/lixenwraith/audio-director/engine"
	"github.com/lixenwraith/audio-director/graph"
	"github.com/lixenwraith/audio-director/mapping"
	"github.com/lixenwraith/audio-director/store"
)

const graphTOML = `
id = "sandbox"
name = "Sandbox Combat Graph"

[[states]]
id = "exploration"
name = "Exploration"
initial = true

[[states.config.layers]]
id = "ambient"
volume = 0.6
loop = true

[[states]]
id = "combat_low"
name = "Combat (Low)"

[[states.config.layers]]
id = "ambient"
volume = 0.3
loop = true

[[states.config.layers]]
id = "drums"
volume = 0.7
loop = true

[[states]]
id = "combat_high"
name = "Combat (High)"

[[states.config.layers]]
id = "drums"
volume = 1.0
loop = true

[[states.config.layers]]
id = "lead"
volume = 0.8
loop = true

[[transitions]]
id = "explore_to_low"
from = "exploration"
to = "combat_low"
duration_ms = 400.0
style = "crossfade"

[[transitions.conditions]]
kind = "parameter"
parameter = "threat"
operator = ">"
value = 0.2
hysteresis = 0.05

[[transitions]]
id = "low_to_high"
from = "combat_low"
to = "combat_high"
duration_ms = 250.0
priority = 5

[[transitions.conditions]]
kind = "parameter"
parameter = "threat"
operator = ">"
value = 0.7

[[transitions]]
id = "high_to_low"
from = "combat_high"
to = "combat_low"
duration_ms = 600.0

[[transitions.conditions]]
kind = "parameter"
parameter = "threat"
operator = "<"
value = 0.7
hysteresis = 0.05

[[transitions]]
id = "low_to_explore"
from = "combat_low"
to = "exploration"
duration_ms = 1200.0
cooldown_ms = 2000.0

[[transitions.conditions]]
kind = "parameter"
parameter = "threat"
operator = "<="
value = 0.2

[[transitions]]
id = "hit_stinger"
from = "exploration"
to = "combat_low"

[[transitions.conditions]]
kind = "event"
event = "player_hit"

[[parameters]]
name = "threat"
type = "number"
default = 0.0
min = 0.0
max = 1.0

[[parameters]]
name = "health"
type = "number"
default = 100.0
min = 0.0
max = 100.0
`

const mappingsTOML = `
id = "sandbox_mix"

[[mappings]]
id = "threat_drums"
enabled = true

[mappings.source]
name = "threat"
range = [0.0, 1.0]

[mappings.target]
kind = "layer_volume"
id = "drums"

[mappings.curve]
type = "exponential"
exponent = 2.0

[mappings.transform]
output_range = [0.0, 1.0]
clamp = true

[mappings.smoothing]
enabled = true
type = "linear"
rise_time_ms = 200.0
fall_time_ms = 1500.0

[[mappings]]
id = "health_master"
enabled = true

[mappings.source]
name = "health"
range = [0.0, 100.0]

[mappings.target]
kind = "master_volume"

[mappings.curve]
type = "logarithmic"

[mappings.transform]
output_range = [0.4, 1.0]
clamp = true

[mappings.smoothing]
enabled = true
type = "exponential"
rise_time_ms = 300.0
`

type sandbox struct {
	screen   tcell.Screen
	director *engine.Director
	renderer *audio.Renderer
	snaps    *store.FileStore[engine.Snapshot]

	threat    float64
	health    float64
	audioLive bool
	status    string
}

func newSandbox() (*sandbox, error) {
	g, err := graph.Load([]byte(graphTOML))
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	set, err := mapping.Load([]byte(mappingsTOML))
	if err != nil {
		return nil, fmt.Errorf("mappings: %w", err)
	}

	cfg, err := engine.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	renderer := audio.NewRenderer(audio.DefaultSampleRate)
	d := engine.New(cfg, g, engine.WithLayer(renderer))
	for i := range set.Mappings {
		d.AddMapping(&set.Mappings[i])
	}

	snaps, err := store.NewFileStore[engine.Snapshot](
		filepath.Join(os.TempDir(), "director-sandbox"))
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	s := &sandbox{
		screen:   screen,
		director: d,
		renderer: renderer,
		snaps:    snaps,
		health:   100,
		status:   "ready",
	}

	if err := renderer.Start(); err != nil {
		// Non-fatal, the demo runs silently without a device
		s.status = fmt.Sprintf("audio unavailable: %v", err)
	} else {
		s.audioLive = true
	}
	return s, nil
}

func (s *sandbox) close() {
	s.director.Stop()
	if s.audioLive {
		s.renderer.Stop()
	}
	s.screen.Fini()
}

func (s *sandbox) run() {
	s.director.Start()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- s.screen.PollEvent()
		}
	}()

	redraw := time.NewTicker(50 * time.Millisecond)
	defer redraw.Stop()

	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if !s.handleKey(tev) {
					return
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		case <-redraw.C:
			s.draw()
		}
	}
}

// handleKey returns false when the sandbox should exit
func (s *sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.setThreat(s.threat + 0.1)
	case tcell.KeyDown:
		s.setThreat(s.threat - 0.1)
	case tcell.KeyLeft:
		s.setHealth(s.health - 10)
	case tcell.KeyRight:
		s.setHealth(s.health + 10)
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'e':
		fired := s.director.TriggerEvent("player_hit")
		s.status = fmt.Sprintf("event player_hit fired=%v", fired)
	case 'f':
		s.director.ForceState("exploration")
		s.status = "forced exploration"
	case 's':
		if err := s.snaps.Put("session", *s.director.Snapshot()); err != nil {
			s.status = fmt.Sprintf("save failed: %v", err)
		} else {
			s.status = "snapshot saved"
		}
	case 'l':
		snap, err := s.snaps.Get("session")
		if err != nil {
			s.status = fmt.Sprintf("load failed: %v", err)
		} else if s.director.LoadSnapshot(&snap) {
			s.status = "snapshot restored"
		} else {
			s.status = "snapshot rejected"
		}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.setThreat(float64(ev.Rune()-'0') / 9)
	}
	return true
}

func (s *sandbox) setThreat(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	s.threat = v
	s.director.SetParameter("threat", v)
}

func (s *sandbox) setHealth(v float64) {
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}
	s.health = v
	s.director.SetParameter("health", v)
}

func (s *sandbox) draw() {
	s.screen.Clear()

	header := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	label := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	row := 1
	puts(s.screen, 2, row, header, "audio director sandbox")
	row += 2

	state := s.director.CurrentState()
	name := "(none)"
	if state != nil {
		name = state.ID
		if state.Name != "" {
			name = fmt.Sprintf("%s  %q", state.ID, state.Name)
		}
	}
	puts(s.screen, 2, row, label, fmt.Sprintf("state    %s", name))
	row++
	puts(s.screen, 2, row, label, fmt.Sprintf("threat   %.2f   (up/down, 0-9)", s.threat))
	row++
	puts(s.screen, 2, row, label, fmt.Sprintf("health   %.0f   (left/right)", s.health))
	row += 2

	puts(s.screen, 2, row, header, "mapped values")
	row++
	for _, id := range []string{"threat_drums", "health_master"} {
		if v, ok := s.director.MappedValue(id); ok {
			puts(s.screen, 2, row, label, fmt.Sprintf("%-14s %6.3f %s", id, v, bar(v)))
			row++
		}
	}
	row++

	puts(s.screen, 2, row, header, "layers")
	row++
	for _, ls := range s.renderer.LayerStates() {
		mark := "paused "
		if ls.IsPlaying {
			mark = "playing"
		}
		puts(s.screen, 2, row, label,
			fmt.Sprintf("%-10s %s  vol %5.2f  pan %5.2f", ls.ID, mark, ls.Volume, ls.Pan))
		row++
	}
	row++

	puts(s.screen, 2, row, dim, "e: event  f: force explore  s/l: save/load snapshot  q: quit")
	row++
	puts(s.screen, 2, row, dim, s.status)

	s.screen.Show()
}

// bar renders a 20-cell meter for a [0,1] value
func bar(v float64) string {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	filled := int(v * 20)
	out := make([]rune, 20)
	for i := range out {
		if i < filled {
			out[i] = '#'
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

func puts(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func main() {
	s, err := newSandbox()
	if err != nil {
		log.Fatalf("sandbox init failed: %v", err)
	}
	defer s.close()
	s.run()
}
