// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/audviz/utils"
)

// Buffer is a fully decoded track held in memory: interleaved float32
// samples plus a per-frame mono mixdown used by the visualization path.
// A Buffer is immutable after construction, so any number of readers may
// index it without synchronization.
type Buffer struct {
	sampleRate int
	channels   int
	data       []float32 // interleaved, len = frames*channels
	mono       []float32 // len = frames
}

// NewBuffer wraps interleaved samples in a Buffer. The data slice is
// retained, not copied; the caller must not modify it afterwards.
func NewBuffer(sampleRate, channels int, data []float32) (*Buffer, error) {
	if sampleRate <= 0 || channels <= 0 || len(data)%channels != 0 {
		return nil, ErrInvalidFormat
	}

	b := &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data,
	}
	if err := b.mixdown(); err != nil {
		return nil, err
	}

	return b, nil
}

// ReadAll drains src into a Buffer. This is the one long-running step of
// the pipeline and must run off the audio and visualization paths; the
// Buffer is handed over only once fully decoded.
func ReadAll(src Source) (*Buffer, error) {
	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidFormat
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}

	var data []float32
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// Drop a trailing partial frame from a truncated stream.
	data = data[:len(data)-len(data)%src.Channels()]

	return NewBuffer(src.SampleRate(), src.Channels(), data)
}

// mixdown builds the mono track by streaming the interleaved data back
// through a MonoMixer.
func (b *Buffer) mixdown() error {
	frames := len(b.data) / b.channels
	b.mono = make([]float32, 0, frames)

	mixer := NewMonoMixer(b.Source())
	buf := make([]float32, 4096)

	for {
		n, err := mixer.ReadSamples(buf)
		if n > 0 {
			b.mono = append(b.mono, buf[:n]...)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return b.channels }

// TotalFrames returns the number of frames (one sample per channel).
func (b *Buffer) TotalFrames() int { return len(b.data) / b.channels }

// Duration returns the track length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.TotalFrames()) / float64(b.sampleRate)
}

// SampleAt returns the sample for one channel of one frame.
// Fails with ErrOutOfRange outside [0, TotalFrames) or an invalid channel.
func (b *Buffer) SampleAt(frame, channel int) (float32, error) {
	if frame < 0 || frame >= b.TotalFrames() || channel < 0 || channel >= b.channels {
		return 0, ErrOutOfRange
	}
	return b.data[frame*b.channels+channel], nil
}

// MonoAt returns the mono mixdown of one frame, bounds-checked like SampleAt.
func (b *Buffer) MonoAt(frame int) (float32, error) {
	if frame < 0 || frame >= len(b.mono) {
		return 0, ErrOutOfRange
	}
	return b.mono[frame], nil
}

// FrameForTime converts seconds to a frame index, saturating at the buffer
// bounds so UI scrubbing can never fault. NaN maps to frame zero.
func (b *Buffer) FrameForTime(seconds float64) int {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	// Clamp before the int conversion, which is undefined for values
	// outside the int range (e.g. +Inf).
	frame := seconds * float64(b.sampleRate)
	if total := b.TotalFrames(); frame >= float64(total) {
		return total
	}
	return int(frame)
}

// TimeForFrame converts a frame index to seconds, saturating like FrameForTime.
func (b *Buffer) TimeForFrame(frame int) float64 {
	if frame <= 0 {
		return 0
	}
	if total := b.TotalFrames(); frame > total {
		frame = total
	}
	return float64(frame) / float64(b.sampleRate)
}

// Window copies the n mono samples ending at frame end (exclusive) into a
// new slice. Regions before the start or past the end of the track are
// zero-padded, so the result always has length n.
func (b *Buffer) Window(end, n int) []float32 {
	out := make([]float32, n)
	if n <= 0 {
		return out
	}

	start := end - n
	lo := max(start, 0)
	hi := min(end, len(b.mono))
	if lo >= hi {
		return out
	}

	copy(out[lo-start:], b.mono[lo:hi])
	return out
}

// CopyFrames copies interleaved samples starting at frame from into dst,
// which must hold whole frames. Returns the number of frames copied; zero
// means the position is at or past the end of the track.
func (b *Buffer) CopyFrames(dst []float32, from int) (int, error) {
	if len(dst)%b.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if from < 0 {
		return 0, ErrOutOfRange
	}

	frames := min(len(dst)/b.channels, b.TotalFrames()-from)
	if frames <= 0 {
		return 0, nil
	}

	copy(dst, b.data[from*b.channels:(from+frames)*b.channels])
	return frames, nil
}

// Source re-streams the buffer through the Source interface, for feeding
// the in-memory data back into pipeline stages (mixdown, resampling, export).
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

// PCM16 renders the mono mixdown as 16-bit PCM, e.g. for WAV export.
func (b *Buffer) PCM16() []int16 {
	out := make([]int16, len(b.mono))
	for i, s := range b.mono {
		out[i] = utils.Float32ToInt16(s)
	}
	return out
}

// bufferSource adapts a Buffer back to the streaming Source interface.
type bufferSource struct {
	buf *Buffer
	pos int // in samples, not frames
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.data) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.data[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.data) {
		return n, io.EOF
	}
	return n, nil
}
