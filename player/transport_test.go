// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audviz/audio"
)

func testBuffer(t *testing.T, frames int) *audio.Buffer {
	t.Helper()

	buf, err := audio.NewBuffer(44100, 1, make([]float32, frames))
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	return buf
}

func TestTransport_InitialState(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 44100))

	if tr.State() != Stopped {
		t.Errorf("State() = %v, want Stopped", tr.State())
	}
	if tr.Position() != 0 {
		t.Errorf("Position() = %d, want 0", tr.Position())
	}
	if tr.Volume() != DefaultVolume {
		t.Errorf("Volume() = %v, want %v", tr.Volume(), DefaultVolume)
	}
}

func TestTransport_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ops  func(tr *Transport)
		want State
	}{
		{"play from stopped", func(tr *Transport) { tr.Play() }, Playing},
		{"pause while playing", func(tr *Transport) { tr.Play(); tr.Pause() }, Paused},
		{"resume from paused", func(tr *Transport) { tr.Play(); tr.Pause(); tr.Play() }, Playing},
		{"stop while playing", func(tr *Transport) { tr.Play(); tr.Stop() }, Stopped},
		{"stop while paused", func(tr *Transport) { tr.Play(); tr.Pause(); tr.Stop() }, Stopped},
		// Redundant commands are no-ops
		{"pause while stopped", func(tr *Transport) { tr.Pause() }, Stopped},
		{"play twice", func(tr *Transport) { tr.Play(); tr.Play() }, Playing},
		{"stop twice", func(tr *Transport) { tr.Play(); tr.Stop(); tr.Stop() }, Stopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransport(testBuffer(t, 44100))
			tt.ops(tr)
			if got := tr.State(); got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransport_PauseKeepsPosition(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 44100))
	tr.Play()
	tr.Advance(10000)
	tr.Pause()

	if tr.Position() != 10000 {
		t.Fatalf("Position() after pause = %d, want 10000", tr.Position())
	}

	// Resume continues from the held position
	tr.Play()
	tr.Advance(100)
	if tr.Position() != 10100 {
		t.Errorf("Position() after resume = %d, want 10100", tr.Position())
	}
}

func TestTransport_StopRewinds(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 44100))
	tr.Play()
	tr.Advance(20000)
	tr.Stop()

	if tr.Position() != 0 {
		t.Errorf("Position() after Stop = %d, want 0", tr.Position())
	}
	if tr.State() != Stopped {
		t.Errorf("State() after Stop = %v, want Stopped", tr.State())
	}
}

func TestTransport_SeekInAnyState(t *testing.T) {
	t.Parallel()

	for _, setup := range []struct {
		name string
		prep func(tr *Transport)
	}{
		{"stopped", func(tr *Transport) {}},
		{"playing", func(tr *Transport) { tr.Play() }},
		{"paused", func(tr *Transport) { tr.Play(); tr.Pause() }},
	} {
		t.Run(setup.name, func(t *testing.T) {
			tr := NewTransport(testBuffer(t, 44100))
			setup.prep(tr)
			before := tr.State()

			if err := tr.SeekFrame(12345); err != nil {
				t.Fatalf("SeekFrame() error = %v", err)
			}
			if tr.Position() != 12345 {
				t.Errorf("Position() = %d, want 12345", tr.Position())
			}
			if tr.State() != before {
				t.Errorf("State() changed from %v to %v on seek", before, tr.State())
			}
		})
	}
}

func TestTransport_SeekOutOfRange(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 1000))

	if err := tr.SeekFrame(5000); !errors.Is(err, audio.ErrOutOfRange) {
		t.Errorf("SeekFrame(5000) error = %v, want ErrOutOfRange", err)
	}
	if err := tr.SeekFrame(-1); !errors.Is(err, audio.ErrOutOfRange) {
		t.Errorf("SeekFrame(-1) error = %v, want ErrOutOfRange", err)
	}

	// The seconds-based variant saturates instead of failing
	tr.SeekTo(9999)
	if tr.Position() != 1000 {
		t.Errorf("Position() after SeekTo(9999) = %d, want 1000", tr.Position())
	}
	tr.SeekTo(-1)
	if tr.Position() != 0 {
		t.Errorf("Position() after SeekTo(-1) = %d, want 0", tr.Position())
	}

	// Non-finite input saturates too instead of producing a garbage frame
	tr.SeekTo(9999)
	tr.SeekTo(math.NaN())
	if tr.Position() != 0 {
		t.Errorf("Position() after SeekTo(NaN) = %d, want 0", tr.Position())
	}
	tr.SeekTo(math.Inf(1))
	if tr.Position() != 1000 {
		t.Errorf("Position() after SeekTo(+Inf) = %d, want 1000", tr.Position())
	}
}

func TestTransport_VolumeClamped(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 1000))

	tests := []struct {
		in, want float64
	}{
		{0.7, 0.7},
		{0, 0},
		{1, 1},
		{1.5, 1},
		{-0.5, 0},
	}

	for _, tt := range tests {
		tr.SetVolume(tt.in)
		if got := tr.Volume(); got != tt.want {
			t.Errorf("Volume() after SetVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Volume changes keep the transport state
	if tr.State() != Stopped {
		t.Errorf("State() changed by SetVolume, got %v", tr.State())
	}
}

func TestTransport_EndOfStream(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 1000))
	tr.Play()
	tr.Advance(1500)

	// End of stream is a transition to Stopped, not an error; position
	// holds at the end until the next Play rewinds.
	if tr.State() != Stopped {
		t.Fatalf("State() at eos = %v, want Stopped", tr.State())
	}
	if !tr.Finished() {
		t.Fatal("Finished() = false at eos")
	}
	if tr.Position() != 1000 {
		t.Fatalf("Position() at eos = %d, want 1000", tr.Position())
	}

	tr.Play()
	if tr.Position() != 0 {
		t.Errorf("Position() after replay = %d, want 0", tr.Position())
	}
	if tr.State() != Playing || tr.Finished() {
		t.Errorf("replay state = %v finished=%v, want Playing finished=false", tr.State(), tr.Finished())
	}
}

func TestTransport_CommitDiscardedAfterSeek(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 44100))
	tr.Play()

	// An audio callback opens a read pass...
	pos, _, playing, seq := tr.beginRead()
	if !playing || pos != 0 {
		t.Fatalf("beginRead() = (%d, %v), want (0, true)", pos, playing)
	}

	// ...a user seek lands while the block renders...
	if err := tr.SeekFrame(30000); err != nil {
		t.Fatalf("SeekFrame() error = %v", err)
	}

	// ...so the stale commit must be discarded.
	tr.commitRead(seq, pos+4410, false)
	if tr.Position() != 30000 {
		t.Errorf("Position() = %d after stale commit, want 30000", tr.Position())
	}
}

func TestTransport_CommitAppliesWhenClean(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 44100))
	tr.Play()

	pos, _, _, seq := tr.beginRead()
	tr.commitRead(seq, pos+4410, false)

	if tr.Position() != 4410 {
		t.Errorf("Position() = %d after commit, want 4410", tr.Position())
	}
}

func TestTransport_Snapshot(t *testing.T) {
	t.Parallel()

	tr := NewTransport(testBuffer(t, 44100))
	tr.Play()
	tr.Advance(100)
	tr.SetVolume(0.25)

	state, pos, vol := tr.Snapshot()
	if state != Playing || pos != 100 || vol != 0.25 {
		t.Errorf("Snapshot() = (%v, %d, %v), want (Playing, 100, 0.25)", state, pos, vol)
	}
}
