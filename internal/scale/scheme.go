package scale

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Greens9 is the 9-class sequential "Greens" ColorBrewer scheme, lightest first.
var Greens9 = []string{
	"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476",
	"#41ab5d", "#238b45", "#006d2c", "#00441b",
}

var schemes = map[string][]string{
	"greens": Greens9,
}

// Scheme returns a named color scheme.
func Scheme(name string) ([]string, error) {
	s, ok := schemes[strings.ToLower(name)]
	if !ok {
		return nil, eris.Errorf("scale: unknown color scheme %q", name)
	}
	return append([]string(nil), s...), nil
}

// NewEducation builds the threshold scale used for the education map: n
// equal steps over [lo, hi] colored by the named scheme. The scheme must
// have n+1 swatches.
func NewEducation(lo, hi float64, n int, scheme string) (*Threshold, error) {
	breaks, err := EqualSteps(lo, hi, n)
	if err != nil {
		return nil, err
	}
	swatches, err := Scheme(scheme)
	if err != nil {
		return nil, err
	}
	return NewThreshold(breaks, swatches)
}
