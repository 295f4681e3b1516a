package engine

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/lixenwraith/audio-director/graph"
)

func TestTickLoopRunsAndStops(t *testing.T) {
	layer := newRecordingLayer()
	d := New(Config{TickInterval: 5 * time.Millisecond}, directorGraph(),
		WithLayer(layer), WithLogger(log.New(io.Discard, "", 0)))

	d.Start()
	time.Sleep(100 * time.Millisecond)
	d.Stop()

	ticked := d.loop.ticks()
	if ticked == 0 {
		t.Fatal("loop never ticked")
	}

	// No more ticks after stop
	time.Sleep(20 * time.Millisecond)
	if got := d.loop.ticks(); got != ticked {
		t.Errorf("loop ticked after stop: %d -> %d", ticked, got)
	}
}

func TestTickLoopStartIsIdempotent(t *testing.T) {
	d := New(Config{TickInterval: 5 * time.Millisecond}, directorGraph(),
		WithLogger(log.New(io.Discard, "", 0)))

	d.Start()
	d.Start()
	d.Stop()
	d.Stop()
}

func TestTickLoopRestartsAfterStop(t *testing.T) {
	d := New(Config{TickInterval: 5 * time.Millisecond}, directorGraph(),
		WithLogger(log.New(io.Discard, "", 0)))

	d.Start()
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	first := d.loop.ticks()
	if first == 0 {
		t.Fatal("loop never ticked before stop")
	}

	d.Start()
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	if got := d.loop.ticks(); got <= first {
		t.Errorf("loop did not tick after restart: %d -> %d", first, got)
	}
}

func TestTickLoopDrivesStateMachineTimers(t *testing.T) {
	g := directorGraph()
	g.Transitions[0].Conditions = []graph.TransitionCondition{
		{Kind: graph.CondStateDuration, DurationMs: 30},
	}

	d := New(Config{TickInterval: 5 * time.Millisecond}, g,
		WithLogger(log.New(io.Discard, "", 0)))

	d.Start()
	defer d.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if d.CurrentState().ID == "combat" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timer transition never fired under the tick loop")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
