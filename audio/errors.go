// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrOutOfRange reports a frame index outside the decoded buffer.
	ErrOutOfRange = errors.New("frame index out of range")

	// ErrInvalidFormat reports decode metadata that cannot describe PCM
	// (non-positive sample rate or channel count, misaligned data length).
	ErrInvalidFormat = errors.New("invalid sample rate, channel count or data length")

	// ErrUnsupportedFormat reports a file extension with no registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
