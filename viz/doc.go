// SPDX-License-Identifier: EPL-2.0

// Package viz contains the visualization side of the pipeline: the
// waveform ring buffer, the spectrum analyzer with its color gradient,
// and the fixed-rate scheduler that feeds a Renderer.
//
// # Update cycle
//
// The Scheduler ticks at a fixed visual rate (40 Hz by default),
// independent of the audio output callback rate. Per tick it pushes the
// newest mono samples into the Ring, analyzes the trailing window ending
// at the current clock position, and calls Renderer.Render with the
// waveform snapshot and the colored spectrum frame. Delayed ticks are
// skipped, never queued: the display tracks the current position, not a
// backlog.
//
// # Spectrum
//
//	grad, _ := viz.NewGradient(viz.DefaultPalette(), true)
//	an, _ := viz.NewAnalyzer(viz.DefaultFFTSize, 44100, grad)
//	bins := an.Analyze(buf.Window(pos, an.Size()))
//
// Magnitudes are |bin|/N of the Hann-windowed transform and reflect the
// source signal: output volume is applied downstream of the analyzer and
// never rescales the display.
package viz
