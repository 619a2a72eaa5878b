// Package scale maps continuous values onto discrete color swatches and
// screen coordinates.
package scale

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// Threshold partitions a continuous domain into ordered buckets. Buckets are
// closed on the lower breakpoint and open on the upper one, so a value equal
// to a breakpoint falls into the bucket that begins there.
type Threshold struct {
	breakpoints []float64
	swatches    []string
}

// Extent is the value interval covered by one bucket. The first bucket has
// no lower bound and the last has no upper bound.
type Extent struct {
	Lo, Hi       float64
	HasLo, HasHi bool
}

// NewThreshold builds a threshold scale. There must be exactly one more
// swatch than breakpoints, and breakpoints must be strictly ascending.
func NewThreshold(breakpoints []float64, swatches []string) (*Threshold, error) {
	if len(swatches) != len(breakpoints)+1 {
		return nil, eris.Errorf("scale: %d breakpoints need %d swatches, got %d",
			len(breakpoints), len(breakpoints)+1, len(swatches))
	}
	for i := 1; i < len(breakpoints); i++ {
		if !(breakpoints[i] > breakpoints[i-1]) {
			return nil, eris.Errorf("scale: breakpoints not ascending at index %d", i)
		}
	}
	return &Threshold{
		breakpoints: append([]float64(nil), breakpoints...),
		swatches:    append([]string(nil), swatches...),
	}, nil
}

// EqualSteps splits [lo, hi] into n equal steps and returns the upper edge
// of each step. The last breakpoint is hi exactly.
func EqualSteps(lo, hi float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, eris.Errorf("scale: step count must be positive, got %d", n)
	}
	if !(hi > lo) {
		return nil, eris.Errorf("scale: empty domain [%g, %g]", lo, hi)
	}
	width := (hi - lo) / float64(n)
	out := make([]float64, n)
	for i := range n {
		out[i] = lo + width*float64(i+1)
	}
	out[n-1] = hi
	return out, nil
}

// Bucket returns the swatch index for v: the number of breakpoints <= v.
// NaN maps to the lowest bucket.
func (t *Threshold) Bucket(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return sort.Search(len(t.breakpoints), func(i int) bool {
		return t.breakpoints[i] > v
	})
}

// Color returns the swatch for v.
func (t *Threshold) Color(v float64) string {
	return t.swatches[t.Bucket(v)]
}

// Breakpoints returns a copy of the breakpoints.
func (t *Threshold) Breakpoints() []float64 {
	return append([]float64(nil), t.breakpoints...)
}

// Swatches returns a copy of the swatches, lowest bucket first.
func (t *Threshold) Swatches() []string {
	return append([]string(nil), t.swatches...)
}

// Len is the number of buckets.
func (t *Threshold) Len() int {
	return len(t.swatches)
}

// InvertExtent returns the value interval that maps to bucket i.
func (t *Threshold) InvertExtent(i int) (Extent, error) {
	if i < 0 || i >= len(t.swatches) {
		return Extent{}, eris.Errorf("scale: bucket %d out of range [0, %d)", i, len(t.swatches))
	}
	var e Extent
	if i > 0 {
		e.Lo, e.HasLo = t.breakpoints[i-1], true
	}
	if i < len(t.breakpoints) {
		e.Hi, e.HasHi = t.breakpoints[i], true
	}
	return e, nil
}
