// SPDX-License-Identifier: EPL-2.0

package audviz

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/formats/aiff"
	"github.com/ik5/audviz/formats/mp3"
	"github.com/ik5/audviz/formats/vorbis"
	"github.com/ik5/audviz/formats/wav"
	"github.com/ik5/audviz/player"
	"github.com/ik5/audviz/viz"
)

// DefaultSampleRate is the session sample rate in Hz. Tracks decoded at a
// different rate are resampled to it, so the playback clock, the speaker
// and the analyzer all run on one time base.
const DefaultSampleRate = 44100

// DefaultWaveformSeconds is the scrolling waveform window length.
const DefaultWaveformSeconds = 5.0

var ErrNoRenderer = errors.New("no renderer configured")

// DefaultRegistry returns a registry with all built-in decoders registered,
// keyed by file extension.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

var defaultRegistry = DefaultRegistry()

// Open loads an audio file into memory, decoded and normalized to
// DefaultSampleRate. The decoder is selected by the file extension; an
// unregistered extension fails with audio.ErrUnsupportedFormat, while a
// corrupt file of a known format fails with the decoder's own error.
func Open(path string) (*audio.Buffer, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	dec, ok := defaultRegistry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%q: %w", ext, audio.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer src.Close()

	return ReadSource(src)
}

// ReadSource drains an already decoded source into an in-memory buffer at
// DefaultSampleRate, resampling with cubic interpolation when the source
// runs at another rate.
func ReadSource(src audio.Source) (*audio.Buffer, error) {
	if src.SampleRate() != DefaultSampleRate {
		src = audio.NewResampler(src, DefaultSampleRate)
	}
	return audio.ReadAll(src)
}

// Config tunes a Session. The zero value works: every field falls back to
// the defaults documented on it.
type Config struct {
	// TickRate is the visualization update rate in Hz.
	// Defaults to viz.DefaultTickRate (40, one 25 ms chunk per update).
	TickRate int

	// FFTSize is the spectrum analysis window in frames, a power of two.
	// Defaults to viz.DefaultFFTSize.
	FFTSize int

	// WaveformSeconds is the scrolling waveform window length.
	// Defaults to DefaultWaveformSeconds.
	WaveformSeconds float64

	// Palette maps frequencies to colors. Defaults to viz.DefaultPalette().
	Palette []viz.ColorStep

	// FlatPalette disables interpolation between palette steps; each bin
	// gets the color of the nearest step above it.
	FlatPalette bool

	// Headless skips the speaker output. The scheduler then drives the
	// playback clock itself at the tick rate.
	Headless bool
}

// Session wires a decoded track to a renderer: transport, optional speaker
// output, waveform ring, spectrum analyzer and the update scheduler.
type Session struct {
	buf       *audio.Buffer
	transport *player.Transport
	ring      *viz.Ring
	analyzer  *viz.Analyzer
	scheduler *viz.Scheduler

	output   *player.Output
	headless bool
}

// NewSession builds the pipeline for buf. The renderer receives one update
// per tick; it must not be nil.
func NewSession(buf *audio.Buffer, r viz.Renderer, cfg Config) (*Session, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}

	if cfg.TickRate <= 0 {
		cfg.TickRate = viz.DefaultTickRate
	}
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = viz.DefaultFFTSize
	}
	if cfg.WaveformSeconds <= 0 {
		cfg.WaveformSeconds = DefaultWaveformSeconds
	}
	if cfg.Palette == nil {
		cfg.Palette = viz.DefaultPalette()
	}

	grad, err := viz.NewGradient(cfg.Palette, !cfg.FlatPalette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	analyzer, err := viz.NewAnalyzer(cfg.FFTSize, buf.SampleRate(), grad)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	transport := player.NewTransport(buf)
	ring := viz.NewRing(int(cfg.WaveformSeconds * float64(buf.SampleRate())))

	return &Session{
		buf:       buf,
		transport: transport,
		ring:      ring,
		analyzer:  analyzer,
		scheduler: viz.NewScheduler(transport, ring, analyzer, r, cfg.TickRate, cfg.Headless),
		headless:  cfg.Headless,
	}, nil
}

// Start opens the speaker (unless headless) and runs the update loop until
// ctx is cancelled. Transport commands may arrive before or after Start.
func (s *Session) Start(ctx context.Context) error {
	if !s.headless {
		out, err := player.OpenOutput(s.buf.SampleRate())
		if err != nil {
			return err
		}
		s.output = out
		out.Start(player.NewStreamer(s.transport))
	}

	go s.scheduler.Run(ctx)
	return nil
}

// Close releases the speaker, if one was opened.
func (s *Session) Close() {
	if s.output != nil {
		s.output.Close()
		s.output = nil
	}
}

// Play starts or resumes playback.
func (s *Session) Play() { s.transport.Play() }

// Pause suspends playback, keeping the position.
func (s *Session) Pause() { s.transport.Pause() }

// Stop halts playback and rewinds to the start. The next update clears the
// waveform display.
func (s *Session) Stop() { s.transport.Stop() }

// SeekTo jumps to a time offset in seconds, saturating at the track bounds.
func (s *Session) SeekTo(seconds float64) { s.transport.SeekTo(seconds) }

// SetVolume sets the output gain in [0, 1]. It has no effect on the
// visualization, which always reflects the source signal.
func (s *Session) SetVolume(v float64) { s.transport.SetVolume(v) }

// Transport exposes the playback state machine for direct queries.
func (s *Session) Transport() *player.Transport { return s.transport }

// Scheduler exposes the update loop, mainly so callers without real time
// can drive ticks themselves.
func (s *Session) Scheduler() *viz.Scheduler { return s.scheduler }

// Buffer returns the decoded track.
func (s *Session) Buffer() *audio.Buffer { return s.buf }
