// SPDX-License-Identifier: EPL-2.0

package player

import (
	"sync"

	"github.com/ik5/audviz/audio"
)

// State is the transport mode governing clock advancement.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// DefaultVolume matches the 50% slider position the UI starts with.
const DefaultVolume = 0.5

// Transport is the playback state machine. It owns the (state, position,
// volume) triple behind a single mutex so a command is never observed
// half-applied by the audio callback or the visualization tick. The lock
// is held only for the state read/write itself, never across sample
// processing.
//
// Redundant commands (pause while stopped, play while playing) are no-ops,
// not errors.
type Transport struct {
	mu       sync.Mutex
	state    State
	clock    *Clock
	volume   float64
	finished bool
	seq      uint64 // bumped whenever position moves non-linearly
	buf      *audio.Buffer
}

// NewTransport creates a stopped transport over buf at DefaultVolume.
func NewTransport(buf *audio.Buffer) *Transport {
	return &Transport{
		state:  Stopped,
		clock:  NewClock(buf.TotalFrames()),
		volume: DefaultVolume,
		buf:    buf,
	}
}

// Buffer returns the decoded track the transport plays.
func (t *Transport) Buffer() *audio.Buffer { return t.buf }

// Play starts or resumes playback. From Stopped after the track finished
// it rewinds to the beginning first.
func (t *Transport) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == Playing {
		return
	}

	if t.state == Stopped && t.finished {
		t.clock.pos = 0
		t.finished = false
		t.seq++
	}

	t.state = Playing
	t.clock.SetRunning(true)
}

// Pause suspends playback, keeping the position. No-op unless Playing.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Playing {
		return
	}

	t.state = Paused
	t.clock.SetRunning(false)
}

// Stop halts playback and rewinds to frame zero. No-op when already
// Stopped at the start of the track.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = Stopped
	t.clock.SetRunning(false)
	t.clock.pos = 0
	t.finished = false
	t.seq++
}

// SeekFrame repositions the clock, valid in any transport state. Fails
// with audio.ErrOutOfRange for a frame outside the track.
func (t *Transport) SeekFrame(frame int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.clock.Seek(frame); err != nil {
		return err
	}
	t.finished = false
	t.seq++
	return nil
}

// SeekTo repositions to a time offset in seconds. The conversion saturates
// at the track bounds, so any input is acceptable; UI scrubbing goes
// through here.
func (t *Transport) SeekTo(seconds float64) {
	// FrameForTime saturates, so SeekFrame cannot fail here.
	_ = t.SeekFrame(t.buf.FrameForTime(seconds))
}

// SetVolume sets the linear output gain, clamped into [0, 1]. Volume never
// affects the visualization feed, which reads the source signal directly.
func (t *Transport) SetVolume(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.volume = max(0, min(v, 1))
}

// Volume returns the current linear gain.
func (t *Transport) Volume() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.volume
}

// State returns the current transport state.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Position returns the current frame position.
func (t *Transport) Position() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clock.Position()
}

// PositionTime returns the current position in seconds.
func (t *Transport) PositionTime() float64 {
	return t.buf.TimeForFrame(t.Position())
}

// Finished reports whether the track ran to its end (as opposed to an
// explicit Stop, which rewinds instead).
func (t *Transport) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// Snapshot returns the triple in one lock acquisition, for readers that
// must see a consistent view.
func (t *Transport) Snapshot() (state State, position int, volume float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.clock.Position(), t.volume
}

// Advance moves the clock forward while Playing, handling end-of-stream by
// stopping in place. Exactly one driver calls this: the audio output
// callback when a speaker is attached, the scheduler otherwise.
func (t *Transport) Advance(frames int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Playing {
		return
	}
	if t.clock.Advance(frames) {
		t.endOfStream()
	}
}

// beginRead opens a read pass for the audio callback: a consistent
// snapshot plus the sequence token to commit against.
func (t *Transport) beginRead() (pos int, volume float64, playing bool, seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clock.Position(), t.volume, t.state == Playing, t.seq
}

// commitRead publishes the position reached by the audio callback. The
// commit is discarded when a seek or stop intervened since beginRead, so a
// stale in-flight block can never clobber a fresh position.
func (t *Transport) commitRead(seq uint64, pos int, eos bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seq != seq || t.state != Playing {
		return
	}

	t.clock.pos = min(pos, t.clock.total)
	if eos {
		t.endOfStream()
	}
}

// endOfStream transitions to Stopped leaving the position at the end.
// Callers hold the mutex.
func (t *Transport) endOfStream() {
	t.state = Stopped
	t.clock.SetRunning(false)
	t.finished = true
}
