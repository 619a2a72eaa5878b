package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// PathData converts a geometry into SVG path data. Polygon rings are closed
// with Z; line strings are left open. Unsupported geometries yield "".
// Coordinates are used as-is: the topology is already in screen space.
func PathData(g geom.T) string {
	var sb strings.Builder
	switch g := g.(type) {
	case *geom.MultiPolygon:
		for i := range g.NumPolygons() {
			writePolygon(&sb, g.Polygon(i))
		}
	case *geom.Polygon:
		writePolygon(&sb, g)
	case *geom.MultiLineString:
		for i := range g.NumLineStrings() {
			writeRun(&sb, g.LineString(i).FlatCoords(), g.Stride(), false)
		}
	case *geom.LineString:
		writeRun(&sb, g.FlatCoords(), g.Stride(), false)
	}
	return sb.String()
}

func writePolygon(sb *strings.Builder, p *geom.Polygon) {
	for i := range p.NumLinearRings() {
		writeRun(sb, p.LinearRing(i).FlatCoords(), p.Stride(), true)
	}
}

func writeRun(sb *strings.Builder, flat []float64, stride int, closed bool) {
	if stride < 2 || len(flat) < 2*stride {
		return
	}
	n := len(flat) / stride
	// The closing position duplicates the first and is implied by Z.
	if closed && n > 1 && flat[0] == flat[(n-1)*stride] && flat[1] == flat[(n-1)*stride+1] {
		n--
	}
	for i := range n {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		sb.WriteString(coord(flat[i*stride]))
		sb.WriteByte(',')
		sb.WriteString(coord(flat[i*stride+1]))
	}
	if closed {
		sb.WriteByte('Z')
	}
}

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
