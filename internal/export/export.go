// Package export writes classified regions in machine-readable formats for
// external verification.
package export

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/choropleth/internal/model"
)

// Format is an output encoding.
type Format string

const (
	FormatGeoJSON   Format = "geojson"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatXLSX      Format = "xlsx"
	FormatShapefile Format = "shp"
)

// Streamable reports whether the format can be written to an arbitrary
// writer such as stdout. Shapefiles are written with WriteShapefile.
func (f Format) Streamable() bool {
	return f != FormatShapefile
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatGeoJSON, FormatJSON, FormatYAML, FormatXLSX, FormatShapefile:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "shapefile":
		return FormatShapefile, nil
	default:
		return "", eris.Errorf("export: unknown format %q (want geojson, json, yaml, xlsx or shp)", s)
	}
}

// Row is the flat, geometry-free form of a ClassifiedRegion.
type Row struct {
	FIPS      int     `json:"fips" yaml:"fips"`
	Education float64 `json:"education" yaml:"education"`
	Bucket    int     `json:"bucket" yaml:"bucket"`
	Color     string  `json:"color" yaml:"color"`
	Matched   bool    `json:"matched" yaml:"matched"`
	AreaName  string  `json:"area_name,omitempty" yaml:"area_name,omitempty"`
	State     string  `json:"state,omitempty" yaml:"state,omitempty"`
}

// Rows flattens classified regions in order.
func Rows(regions []model.ClassifiedRegion) []Row {
	out := make([]Row, len(regions))
	for i, cr := range regions {
		out[i] = Row{
			FIPS:      cr.Region.ID,
			Education: cr.Value,
			Bucket:    cr.Bucket,
			Color:     cr.Color,
			Matched:   cr.Matched,
		}
		if cr.Record != nil {
			out[i].AreaName = cr.Record.AreaName
			out[i].State = cr.Record.State
		}
	}
	return out
}

// Write encodes regions to w.
func Write(w io.Writer, f Format, regions []model.ClassifiedRegion) error {
	switch f {
	case FormatGeoJSON:
		return writeGeoJSON(w, regions)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Rows(regions)); err != nil {
			return eris.Wrap(err, "export: encode json")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Rows(regions)); err != nil {
			return eris.Wrap(err, "export: encode yaml")
		}
		return eris.Wrap(enc.Close(), "export: close yaml encoder")
	case FormatXLSX:
		return writeXLSX(w, regions)
	case FormatShapefile:
		return eris.New("export: shp needs a file path, use WriteShapefile")
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

// FeatureCollection builds one GeoJSON feature per region, keyed by FIPS.
// Regions without geometry get an empty MultiPolygon.
func FeatureCollection(regions []model.ClassifiedRegion) *geojson.FeatureCollection {
	rows := Rows(regions)
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, len(rows))}
	for i, row := range rows {
		var g geom.T = geom.NewMultiPolygon(geom.XY)
		if mp := regions[i].Region.Geometry; mp != nil {
			g = mp
		}
		fc.Features[i] = &geojson.Feature{
			ID:       strconv.Itoa(row.FIPS),
			Geometry: g,
			Properties: map[string]any{
				"fips":      row.FIPS,
				"education": row.Education,
				"bucket":    row.Bucket,
				"color":     row.Color,
				"matched":   row.Matched,
				"area_name": row.AreaName,
				"state":     row.State,
			},
		}
	}
	return fc
}

func writeGeoJSON(w io.Writer, regions []model.ClassifiedRegion) error {
	data, err := FeatureCollection(regions).MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}
