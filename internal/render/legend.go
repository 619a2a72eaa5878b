package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/choropleth/internal/scale"
)

// LegendSwatch is one colored bar of the legend.
type LegendSwatch struct {
	X     int
	Width int
	Fill  string
}

// LegendTick labels a breakpoint under the legend.
type LegendTick struct {
	X     int
	Label string
}

// Legend lays out one swatch per bucket along the x axis. Open-ended
// extents are clamped to the axis domain.
func Legend(t *scale.Threshold, x scale.Linear) ([]LegendSwatch, []LegendTick, error) {
	d0, d1 := x.Domain()
	swatches := t.Swatches()

	out := make([]LegendSwatch, 0, len(swatches))
	for i, fill := range swatches {
		e, err := t.InvertExtent(i)
		if err != nil {
			return nil, nil, err
		}
		lo, hi := d0, d1
		if e.HasLo {
			lo = e.Lo
		}
		if e.HasHi {
			hi = e.Hi
		}
		x0 := x.Round(lo)
		w := x.Round(hi) - x0
		if w < 0 {
			w = 0
		}
		out = append(out, LegendSwatch{X: x0, Width: w, Fill: fill})
	}

	p := message.NewPrinter(language.English)
	breaks := t.Breakpoints()
	ticks := make([]LegendTick, 0, len(breaks)+1)
	ticks = append(ticks, LegendTick{X: x.Round(d0), Label: p.Sprintf("%.1f%%", d0)})
	for _, b := range breaks {
		if b <= d0 || b > d1 {
			continue
		}
		ticks = append(ticks, LegendTick{X: x.Round(b), Label: p.Sprintf("%.1f%%", b)})
	}
	return out, ticks, nil
}
