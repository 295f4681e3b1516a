package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// tickLoop drives the director at a fixed interval with drift correction
// Modeled as a single goroutine; pause-free variant of a game clock scheduler
type tickLoop struct {
	d        *Director
	interval time.Duration

	stopChan chan struct{}
	running  atomic.Bool
	wg       sync.WaitGroup

	tickCount atomic.Uint64
}

func newTickLoop(d *Director, interval time.Duration) *tickLoop {
	return &tickLoop{
		d:        d,
		interval: interval,
	}
}

// start begins the loop; repeated calls are no-ops
// A stopped loop can be started again
func (tl *tickLoop) start() {
	if tl.running.CompareAndSwap(false, true) {
		tl.stopChan = make(chan struct{})
		tl.wg.Add(1)
		go tl.run(tl.stopChan)
	}
}

// stop halts the loop and waits for the goroutine to exit
// Repeated calls are no-ops
func (tl *tickLoop) stop() {
	if tl.running.CompareAndSwap(true, false) {
		close(tl.stopChan)
		tl.wg.Wait()
	}
}

// run ticks until the stop channel passed at launch closes
// The channel is a parameter so a restart cannot race the old goroutine
func (tl *tickLoop) run(stop <-chan struct{}) {
	defer tl.wg.Done()

	last := time.Now()
	deadline := last.Add(tl.interval)

	timer := time.NewTimer(tl.interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return

		case now := <-timer.C:
			delta := now.Sub(last)
			last = now

			tl.d.Tick(float64(delta) / float64(time.Millisecond))
			tl.tickCount.Add(1)

			deadline = deadline.Add(tl.interval)

			// Re-anchor when falling too far behind instead of burst-ticking
			maxBehind := tl.interval * 2
			if now.Sub(deadline) > maxBehind {
				deadline = now.Add(tl.interval)
			}

			sleep := time.Until(deadline)
			if sleep < 0 {
				sleep = 0
			}
			timer.Reset(sleep)
		}
	}
}

// ticks returns the number of completed ticks
func (tl *tickLoop) ticks() uint64 {
	return tl.tickCount.Load()
}
