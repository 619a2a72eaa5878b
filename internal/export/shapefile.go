package export

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/choropleth/internal/model"
)

// dBase attribute layout, in column order.
var shapeFields = []shp.Field{
	shp.NumberField("FIPS", 5),
	shp.FloatField("EDUCATION", 8, 2),
	shp.NumberField("BUCKET", 2),
	shp.StringField("COLOR", 7),
	shp.NumberField("MATCHED", 1),
	shp.StringField("AREA_NAME", 64),
	shp.StringField("STATE", 2),
}

// WriteShapefile writes regions as a polygon shapefile. path names the .shp
// file; the .shx and .dbf companions are written beside it.
func WriteShapefile(path string, regions []model.ClassifiedRegion) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))

	w, err := shp.Create(base+".shp", shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	if err := w.SetFields(shapeFields); err != nil {
		w.Close()
		return eris.Wrap(err, "export: set shapefile fields")
	}

	for _, row := range shapeRows(regions) {
		idx := int(w.Write(row.shape))
		for field, v := range row.attrs {
			if err := w.WriteAttribute(idx, field, v); err != nil {
				w.Close()
				return eris.Wrapf(err, "export: write attribute %s for fips %d",
					shapeFields[field], row.fips)
			}
		}
	}
	w.Close()

	// The writer names the attribute table "<base>dbf".
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return eris.Wrap(err, "export: rename dbf")
	}
	return nil
}

type shapeRow struct {
	fips  int
	shape *shp.Polygon
	attrs []any
}

func shapeRows(regions []model.ClassifiedRegion) []shapeRow {
	rows := Rows(regions)
	out := make([]shapeRow, len(rows))
	for i, row := range rows {
		matched := 0
		if row.Matched {
			matched = 1
		}
		out[i] = shapeRow{
			fips:  row.FIPS,
			shape: toShapePolygon(regions[i].Region.Geometry),
			attrs: []any{
				row.FIPS,
				row.Education,
				row.Bucket,
				row.Color,
				matched,
				truncate(row.AreaName, 64),
				truncate(row.State, 2),
			},
		}
	}
	return out
}

// toShapePolygon flattens every ring of every polygon into one part each.
// A nil geometry yields a polygon with no parts.
func toShapePolygon(mp *geom.MultiPolygon) *shp.Polygon {
	var parts [][]shp.Point
	if mp != nil {
		for i := range mp.NumPolygons() {
			poly := mp.Polygon(i)
			for j := range poly.NumLinearRings() {
				coords := poly.LinearRing(j).Coords()
				part := make([]shp.Point, len(coords))
				for k, c := range coords {
					part[k] = shp.Point{X: c.X(), Y: c.Y()}
				}
				parts = append(parts, part)
			}
		}
	}
	p := shp.Polygon(*shp.NewPolyLine(parts))
	return &p
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
