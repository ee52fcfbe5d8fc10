// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Streamer adapts a Transport to beep.Streamer. The speaker goroutine is
// the real-time audio path: each Stream call snapshots the playback state
// under the transport lock, renders samples without holding it, then
// commits the advanced position. Consuming samples is what drives the
// clock forward, so the visualization can never drift from what is heard.
//
// While not Playing the streamer emits silence and stays alive, so pause
// and stop need no speaker-side bookkeeping.
type Streamer struct {
	t   *Transport
	tmp []float32
}

// NewStreamer creates the output stage for a transport.
func NewStreamer(t *Transport) *Streamer {
	return &Streamer{t: t}
}

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	pos, vol, playing, seq := s.t.beginRead()

	if !playing {
		for i := range samples {
			samples[i][0] = 0
			samples[i][1] = 0
		}
		return len(samples), true
	}

	buf := s.t.Buffer()
	channels := buf.Channels()

	want := len(samples) * channels
	if cap(s.tmp) < want {
		s.tmp = make([]float32, want)
	}
	s.tmp = s.tmp[:want]

	frames, err := buf.CopyFrames(s.tmp, pos)
	if err != nil {
		// Cannot happen with an aligned tmp and a committed position.
		frames = 0
	}

	for i := 0; i < frames; i++ {
		var left, right float64
		switch channels {
		case 1:
			v := float64(s.tmp[i])
			left, right = v, v
		case 2:
			left = float64(s.tmp[i*2])
			right = float64(s.tmp[i*2+1])
		default:
			// Fold extra channels down through the precomputed mono track
			v, _ := buf.MonoAt(pos + i)
			m := float64(v)
			left, right = m, m
		}
		samples[i][0] = left * vol
		samples[i][1] = right * vol
	}
	for i := frames; i < len(samples); i++ {
		samples[i][0] = 0
		samples[i][1] = 0
	}

	eos := pos+frames >= buf.TotalFrames()
	s.t.commitRead(seq, pos+frames, eos)

	return len(samples), true
}

func (s *Streamer) Err() error { return nil }

// Output owns the speaker device.
type Output struct {
	sr beep.SampleRate
}

// OpenOutput initializes the speaker at the given sample rate with a
// 1/10th second hardware buffer.
func OpenOutput(sampleRate int) (*Output, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &Output{sr: sr}, nil
}

// Start begins pulling from the streamer.
func (o *Output) Start(s beep.Streamer) {
	speaker.Play(s)
}

// Close silences and releases the speaker.
func (o *Output) Close() {
	speaker.Clear()
	speaker.Close()
}
