// SPDX-License-Identifier: EPL-2.0

// Package player provides the transport state machine, the frame-accurate
// playback clock, and the speaker output stage.
//
// # Transport
//
// Transport is the single writer of playback state. Commands are
// fire-and-forget and idempotent:
//
//	t := player.NewTransport(buf)
//	t.Play()
//	t.SeekTo(12.5)
//	t.SetVolume(0.8)
//	t.Pause()
//	t.Stop()
//
// Stopped -> Playing starts from the beginning (or resumes, if the stop
// was an end-of-stream), Paused -> Playing resumes in place, Stop rewinds
// to zero. Volume is a linear gain in [0, 1] applied only at the output
// stage; the visualization always sees the source signal's amplitude.
//
// # Clock driving
//
// Two execution contexts read the transport: the speaker callback and the
// visualization tick. Exactly one context advances the clock. With a
// speaker attached the Streamer drives it by the frames it consumes;
// headless setups call Transport.Advance from the tick loop instead.
package player
