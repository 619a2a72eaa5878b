// Package render draws classified county regions as a static HTML page
// holding an SVG choropleth, a legend and a hover tooltip.
package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/choropleth/internal/model"
	"github.com/sells-group/choropleth/internal/scale"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

// Options configures page layout.
type Options struct {
	Width       int
	Height      int
	Title       string
	Description string
	Caption     string
	// DomainMin and DomainMax are the value span of the legend axis.
	DomainMin float64
	DomainMax float64
	// LegendX0 and LegendX1 are the pixel range of the legend axis.
	LegendX0   float64
	LegendX1   float64
	LegendY    int
	BarHeight  int
	StateColor string
}

// DefaultOptions returns the stock layout for the education map.
func DefaultOptions() Options {
	return Options{
		Width:       960,
		Height:      600,
		Title:       "United States Educational Attainment",
		Description: "Percentage of adults age 25 and older with a bachelor's degree or higher (2010-2014)",
		Caption:     "Bachelor's degree or higher",
		DomainMin:   2.6,
		DomainMax:   75.1,
		LegendX0:    600,
		LegendX1:    860,
		LegendY:     40,
		BarHeight:   8,
		StateColor:  "#ffffff",
	}
}

// Map is everything drawn on the page.
type Map struct {
	Regions []model.ClassifiedRegion
	// States is drawn as unfilled outlines; nil skips it.
	States *geom.MultiLineString
	Scale  *scale.Threshold
}

// Renderer writes Map pages.
type Renderer struct {
	opts Options
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

type countyView struct {
	FIPS      int
	Education string
	Label     string
	Fill      string
	D         string
}

type pageView struct {
	Options
	Counties    []countyView
	StatesD     string
	Swatches    []LegendSwatch
	Ticks       []LegendTick
	TickY       int
	SwatchCount int
}

// Render writes the HTML page for m.
func (r *Renderer) Render(w io.Writer, m Map) error {
	if m.Scale == nil {
		return eris.New("render: map has no scale")
	}
	x := scale.NewLinear(r.opts.DomainMin, r.opts.DomainMax, r.opts.LegendX0, r.opts.LegendX1)

	swatches, ticks, err := Legend(m.Scale, x)
	if err != nil {
		return eris.Wrap(err, "render: legend")
	}

	view := pageView{
		Options:     r.opts,
		Counties:    make([]countyView, len(m.Regions)),
		Swatches:    swatches,
		Ticks:       ticks,
		TickY:       r.opts.BarHeight + 13,
		SwatchCount: len(swatches),
	}
	for i, cr := range m.Regions {
		view.Counties[i] = countyView{
			FIPS:      cr.Region.ID,
			Education: model.FormatValue(cr.Value),
			Label:     cr.Label(),
			Fill:      cr.Color,
		}
		if cr.Region.Geometry != nil {
			view.Counties[i].D = PathData(cr.Region.Geometry)
		}
	}
	if m.States != nil {
		view.StatesD = PathData(m.States)
	}

	if err := pageTemplate.Execute(w, view); err != nil {
		return eris.Wrap(err, "render: execute template")
	}
	return nil
}
