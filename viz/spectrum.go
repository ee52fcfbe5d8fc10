// SPDX-License-Identifier: EPL-2.0

package viz

import (
	"math"
	"math/cmplx"

	"github.com/madelynnblue/go-dsp/fft"
)

// DefaultFFTSize is the analysis window the visualizer ships with.
const DefaultFFTSize = 2048

// Bin is one entry of a spectrum frame: a frequency, the source signal's
// magnitude there, and the palette color for drawing it.
type Bin struct {
	Freq      float64
	Magnitude float64
	Color     RGBA
}

// Analyzer turns a block of recent samples into a magnitude spectrum.
// Each tick it Hann-windows the block, runs an FFT and normalizes the
// magnitudes by the transform size. The DC bin is dropped; frames carry
// bins 1..N/2.
type Analyzer struct {
	size       int
	sampleRate int
	grad       *Gradient

	hann []float64 // precomputed window
	work []float64 // reusable FFT input, avoids per-tick allocation
	freq []float64 // precomputed bin frequencies
}

// NewAnalyzer creates an analyzer for the given transform size and sample
// rate. size must be a power of two (ErrFFTSize otherwise); the gradient
// supplies per-bin colors and is validated by its own constructor.
func NewAnalyzer(size, sampleRate int, grad *Gradient) (*Analyzer, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, ErrFFTSize
	}

	a := &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		grad:       grad,
		hann:       make([]float64, size),
		work:       make([]float64, size),
		freq:       make([]float64, size/2),
	}

	for i := range a.hann {
		a.hann[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}
	binHz := float64(sampleRate) / float64(size)
	for i := range a.freq {
		a.freq[i] = float64(i+1) * binHz
	}

	return a, nil
}

// Size returns the transform size.
func (a *Analyzer) Size() int { return a.size }

// Analyze computes the spectrum frame for a sample block. A block shorter
// than the transform size is zero-padded on the right, so windows at the
// stream edges analyze cleanly instead of failing. Longer blocks use only
// the first size samples.
func (a *Analyzer) Analyze(samples []float32) []Bin {
	clear(a.work)
	n := min(len(samples), a.size)
	for i := 0; i < n; i++ {
		a.work[i] = float64(samples[i]) * a.hann[i]
	}

	spectrum := fft.FFTReal(a.work)

	norm := 1 / float64(a.size)
	bins := make([]Bin, a.size/2)
	for i := range bins {
		mag := cmplx.Abs(spectrum[i+1]) * norm
		bins[i] = Bin{
			Freq:      a.freq[i],
			Magnitude: mag,
			Color:     a.grad.At(a.freq[i]),
		}
	}

	return bins
}
