// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decode and buffering layer of the
// visualization pipeline.
//
// This package contains the building blocks everything else consumes:
//   - Source interface for streaming decoded audio
//   - Buffer, the fully decoded in-memory track
//   - Resampler for sample rate conversion
//   - MonoMixer for channel mixing
//   - Registry mapping file extensions to decoders
//
// # Source Interface
//
// The Source interface is how decoders hand over PCM:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All decoders and processing stages implement it, so stages can be
// chained (decode -> resample -> mixdown) before the result is captured.
//
// # Buffer
//
// Playback and visualization both read from a Buffer, built once per
// loaded file:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//	sample, _ := buf.SampleAt(frame, 0)
//	window := buf.Window(end, 2048)
//
// A Buffer is immutable, so the audio output callback and the
// visualization tick can index it concurrently with no locking. Window
// extraction zero-pads near the stream edges rather than failing.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]: 0.0 is silence, the extremes are
// full scale. Frames are one sample per channel; interleaved data has
// length frames*channels.
//
// # Error Handling
//
// Streaming stages return io.EOF when exhausted. Indexed Buffer access
// returns ErrOutOfRange for bad frame indices, and construction returns
// ErrInvalidFormat when metadata cannot describe PCM.
package audio
