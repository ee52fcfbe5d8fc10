// SPDX-License-Identifier: EPL-2.0

package viz

import "errors"

var (
	// ErrPaletteEmpty reports a gradient configured with no steps.
	ErrPaletteEmpty = errors.New("palette must have at least one step")

	// ErrPaletteOrder reports thresholds that are not strictly increasing.
	ErrPaletteOrder = errors.New("palette thresholds must be strictly increasing")

	// ErrFFTSize reports a transform size that is not a power of two.
	ErrFFTSize = errors.New("fft size must be a power of two")
)
