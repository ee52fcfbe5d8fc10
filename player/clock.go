// SPDX-License-Identifier: EPL-2.0

package player

import "github.com/ik5/audviz/audio"

// Clock tracks the playback position as a frame counter. Deriving position
// from consumed frames instead of wall-clock deltas keeps the audio output
// and the visualization in lockstep even under scheduler jitter.
//
// Clock does no locking of its own: the Transport owns one and guards it
// together with the rest of the playback state.
type Clock struct {
	pos     int
	total   int
	running bool
}

// NewClock creates a clock for a track of totalFrames frames.
func NewClock(totalFrames int) *Clock {
	return &Clock{total: totalFrames}
}

// Position returns the current frame position.
func (c *Clock) Position() int { return c.pos }

// TotalFrames returns the saturation bound of the clock.
func (c *Clock) TotalFrames() int { return c.total }

// Running reports whether the clock advances on ticks.
func (c *Clock) Running() bool { return c.running }

// SetRunning starts or stops advancement. Position is untouched.
func (c *Clock) SetRunning(running bool) { c.running = running }

// Advance moves the position forward by frames and reports whether the end
// of the stream was reached. While stopped the call is a no-op. Position
// clamps at TotalFrames and never decreases except through Seek.
func (c *Clock) Advance(frames int) (eos bool) {
	if !c.running || frames <= 0 {
		return false
	}

	c.pos += frames
	if c.pos >= c.total {
		c.pos = c.total
		return true
	}
	return false
}

// Seek sets the position directly. Valid in any state; fails with
// audio.ErrOutOfRange outside [0, TotalFrames].
func (c *Clock) Seek(frame int) error {
	if frame < 0 || frame > c.total {
		return audio.ErrOutOfRange
	}
	c.pos = frame
	return nil
}
