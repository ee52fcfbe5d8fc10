// SPDX-License-Identifier: EPL-2.0

package viz

import (
	"context"
	"time"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/player"
)

// DefaultTickRate is the visualization update rate in Hz. 40 ticks per
// second means one 25 ms chunk of audio per update.
const DefaultTickRate = 40

// Renderer consumes one update per tick: the waveform snapshot and the
// colored spectrum frame. The core makes no assumption about how it draws.
type Renderer interface {
	Render(waveform []float32, spectrum []Bin)
}

// Scheduler is the fixed-rate driver coupling the playback state to the
// renderer. Each tick it reads the clock position, pushes the newest
// samples into the waveform ring, recomputes the spectrum for the
// trailing analysis window, and hands both to the renderer.
//
// The tick loop runs on its own goroutine, off the audio path: it only
// snapshots transport state and indexes the immutable buffer.
type Scheduler struct {
	transport *player.Transport
	buf       *audio.Buffer
	ring      *Ring
	analyzer  *Analyzer
	renderer  Renderer

	tickRate   int
	driveClock bool // advance the clock ourselves (no audio output attached)

	lastPos   int
	wasActive bool
}

// NewScheduler wires the pipeline stages together. With driveClock set
// the scheduler advances the transport by one tick's worth of frames per
// update, for headless operation; with an audio output attached the
// output drives the clock and driveClock must be false.
func NewScheduler(t *player.Transport, ring *Ring, analyzer *Analyzer, r Renderer, tickRate int, driveClock bool) *Scheduler {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Scheduler{
		transport:  t,
		buf:        t.Buffer(),
		ring:       ring,
		analyzer:   analyzer,
		renderer:   r,
		tickRate:   tickRate,
		driveClock: driveClock,
	}
}

// FramesPerTick returns how many frames elapse per update at the track's
// sample rate.
func (s *Scheduler) FramesPerTick() int {
	return s.buf.SampleRate() / s.tickRate
}

// Run ticks until ctx is cancelled. time.Ticker drops ticks when the
// receiver lags, so an overloaded renderer skips updates instead of
// queuing a backlog; the next update always reflects the current
// position.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick performs one update. Exported so tests and headless callers can
// drive updates without real time.
func (s *Scheduler) Tick() {
	if s.driveClock {
		s.transport.Advance(s.FramesPerTick())
	}

	state, pos, _ := s.transport.Snapshot()

	if state == player.Stopped && pos == 0 {
		// Explicit stop: clear the display once, then idle.
		if s.wasActive {
			s.ring.Reset()
			s.wasActive = false
			s.lastPos = 0
			s.emit(0)
		}
		return
	}
	s.wasActive = true

	// Push only what played since the last tick, capped at one ring's
	// worth; a seek simply restarts the window at the new position.
	advanced := pos - s.lastPos
	if advanced < 0 || advanced > s.ring.Cap() {
		s.ring.Reset()
		advanced = min(pos, s.ring.Cap())
	}
	if advanced > 0 {
		s.ring.Push(s.buf.Window(pos, advanced))
	}
	s.lastPos = pos

	s.emit(pos)
}

func (s *Scheduler) emit(pos int) {
	spectrum := s.analyzer.Analyze(s.buf.Window(pos, s.analyzer.Size()))
	s.renderer.Render(s.ring.Snapshot(), spectrum)
}
