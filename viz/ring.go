// SPDX-License-Identifier: EPL-2.0

package viz

import "sync"

// Ring is a fixed-capacity circular buffer of recent mono samples backing
// the waveform display. The scheduler pushes one tick's worth of samples
// per update, overwriting the oldest; the renderer may snapshot
// concurrently. Capacity is fixed at construction; changing the window
// means building a new Ring and discarding history.
type Ring struct {
	mu    sync.RWMutex
	buf   []float32
	head  int // next write position
	count int // valid samples, up to capacity
}

// NewRing creates a ring holding capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]float32, capacity)}
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Len returns the number of valid samples, at most Cap.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Push appends block, discarding the oldest samples once at capacity.
// O(len(block)) regardless of fill level.
func (r *Ring) Push(block []float32) {
	if len(block) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// A block larger than the ring reduces to its tail
	if len(block) > len(r.buf) {
		block = block[len(block)-len(r.buf):]
	}

	n := copy(r.buf[r.head:], block)
	if n < len(block) {
		copy(r.buf, block[n:])
	}
	r.head = (r.head + len(block)) % len(r.buf)
	r.count = min(r.count+len(block), len(r.buf))
}

// Snapshot returns the current contents oldest-to-newest as a fresh slice.
func (r *Ring) Snapshot() []float32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]float32, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)

	n := copy(out, r.buf[start:min(start+r.count, len(r.buf))])
	copy(out[n:], r.buf[:r.count-n])

	return out
}

// Reset empties the ring, e.g. when playback stops.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.count = 0
}
