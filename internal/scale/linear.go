package scale

import "math"

// Linear maps a numeric domain onto a numeric range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale from [d0, d1] to [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps v into the range without clamping.
func (l Linear) Scale(v float64) float64 {
	if l.d1 == l.d0 {
		return (l.r0 + l.r1) / 2
	}
	t := (v - l.d0) / (l.d1 - l.d0)
	return l.r0 + t*(l.r1-l.r0)
}

// Round maps v and rounds to the nearest integer.
func (l Linear) Round(v float64) int {
	return int(math.Round(l.Scale(v)))
}

// Domain returns the domain bounds.
func (l Linear) Domain() (float64, float64) {
	return l.d0, l.d1
}

// Range returns the range bounds.
func (l Linear) Range() (float64, float64) {
	return l.r0, l.r1
}
