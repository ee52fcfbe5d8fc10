// SPDX-License-Identifier: EPL-2.0

// Package audviz provides real-time audio playback with synchronized
// visualization for Go applications.
//
// The package decodes an audio file into memory, plays it through the
// system speaker, and delivers fixed-rate updates carrying a scrolling
// waveform window and a color-mapped frequency spectrum. Playback and
// visualization share one frame-accurate clock, so what is drawn always
// matches what is heard.
//
// # Supported Formats
//
// The package supports decoding the following audio formats:
//   - WAV via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// All tracks are normalized to 44100 Hz on load; other rates are
// resampled with cubic interpolation.
//
// # Quick Start
//
// The simplest way to play and visualize a file:
//
//	buf, err := audviz.Open("track.mp3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := audviz.NewSession(buf, myRenderer, audviz.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	session.Start(ctx)
//	session.Play()
//
// The renderer implements viz.Renderer and receives 40 updates per second
// by default, each carrying the last 5 seconds of waveform samples and
// the spectrum of the trailing analysis window.
//
// # Transport
//
// Playback is controlled through the session:
//
//	session.Play()
//	session.Pause()
//	session.SeekTo(12.5) // seconds, saturating at the track bounds
//	session.SetVolume(0.8)
//	session.Stop()       // rewinds and clears the display
//
// Volume only affects the speaker; the visualization always reflects the
// source signal.
//
// # Pipeline Stages
//
// For more control, the stages compose directly:
//
//	transport := player.NewTransport(buf)
//	ring := viz.NewRing(5 * buf.SampleRate())
//	grad, _ := viz.NewGradient(viz.DefaultPalette(), true)
//	analyzer, _ := viz.NewAnalyzer(viz.DefaultFFTSize, buf.SampleRate(), grad)
//	sched := viz.NewScheduler(transport, ring, analyzer, renderer,
//	    viz.DefaultTickRate, true)
//	go sched.Run(ctx)
//
// With the last argument true the scheduler advances the clock itself,
// for headless operation without a speaker.
//
// # Audio Processing
//
// The audio subpackage holds the building blocks: the Source interface
// shared by all decoders, the in-memory Buffer with its precomputed mono
// mixdown, the Resampler and the MonoMixer.
//
// See the individual subpackages for more detailed documentation.
package audviz
