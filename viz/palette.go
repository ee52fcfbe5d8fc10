// SPDX-License-Identifier: EPL-2.0

package viz

// RGBA is a straight (non-premultiplied) 8-bit color handed to the renderer.
type RGBA struct {
	R, G, B, A uint8
}

// ColorStep anchors a color at a threshold value. Steps are ordered by
// strictly increasing Value; the first step conceptually covers
// everything from zero up to its threshold.
type ColorStep struct {
	Value float64
	Color RGBA
}

// Gradient maps a lookup value (here: a bin's frequency) to a color
// through an ordered list of ColorSteps. In interpolate mode the color
// ramps linearly between bracketing steps with no discontinuity at the
// thresholds; in flat mode each step paints its whole band. Values
// outside the step range clamp to the nearest endpoint color.
type Gradient struct {
	steps       []ColorStep
	interpolate bool
}

// NewGradient validates the step list once, at setup. A malformed list is
// a configuration error, not something to re-check per frame.
func NewGradient(steps []ColorStep, interpolate bool) (*Gradient, error) {
	if len(steps) == 0 {
		return nil, ErrPaletteEmpty
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Value <= steps[i-1].Value {
			return nil, ErrPaletteOrder
		}
	}

	return &Gradient{
		steps:       append([]ColorStep(nil), steps...),
		interpolate: interpolate,
	}, nil
}

// DefaultPalette is the frequency palette the visualizer ships with:
// green lows ramping through yellow, orange and red into purple highs,
// all half-transparent.
func DefaultPalette() []ColorStep {
	return []ColorStep{
		{Value: 20, Color: RGBA{0, 255, 0, 128}},
		{Value: 200, Color: RGBA{255, 255, 0, 128}},
		{Value: 1000, Color: RGBA{255, 165, 0, 128}},
		{Value: 5000, Color: RGBA{255, 0, 0, 128}},
		{Value: 20000, Color: RGBA{128, 0, 128, 128}},
	}
}

// At maps v to a color.
func (g *Gradient) At(v float64) RGBA {
	steps := g.steps

	if v <= steps[0].Value {
		return steps[0].Color
	}
	if v >= steps[len(steps)-1].Value {
		return steps[len(steps)-1].Color
	}

	// Find the bracketing pair
	hi := 1
	for steps[hi].Value < v {
		hi++
	}
	lo := hi - 1

	if !g.interpolate {
		return steps[hi].Color
	}

	span := steps[hi].Value - steps[lo].Value
	frac := (v - steps[lo].Value) / span
	return lerpRGBA(steps[lo].Color, steps[hi].Color, frac)
}

func lerpRGBA(a, b RGBA, frac float64) RGBA {
	return RGBA{
		R: lerp8(a.R, b.R, frac),
		G: lerp8(a.G, b.G, frac),
		B: lerp8(a.B, b.B, frac),
		A: lerp8(a.A, b.A, frac),
	}
}

func lerp8(a, b uint8, frac float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*frac + 0.5)
}
