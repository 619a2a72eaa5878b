package topology

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth/internal/model"
)

// Feature converts the named object into regions, one per geometry, in
// document order. Geometries without arcs become regions with an empty
// MultiPolygon. Geometries without an integer id are skipped.
func (t *Topology) Feature(name string) ([]model.Region, error) {
	obj, err := t.object(name)
	if err != nil {
		return nil, err
	}

	geoms := []*Object{obj}
	if obj.Type == TypeGeometryCollection {
		geoms = obj.Geometries
	}

	log := zap.L().With(zap.String("component", "topology"), zap.String("object", name))

	regions := make([]model.Region, 0, len(geoms))
	for i, g := range geoms {
		if g == nil {
			continue
		}
		id, ok := g.IntID()
		if !ok {
			log.Warn("skipping geometry without integer id", zap.Int("index", i))
			continue
		}
		mp, err := t.multiPolygon(g)
		if err != nil {
			return nil, eris.Wrapf(err, "topology: geometry %d in %q", id, name)
		}
		regions = append(regions, model.Region{ID: id, Geometry: mp})
	}
	return regions, nil
}

func (t *Topology) multiPolygon(o *Object) (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(geom.XY)

	var polys [][][]int
	switch o.Type {
	case TypePolygon:
		var rings [][]int
		if err := unmarshalArcs(o, &rings); err != nil {
			return nil, err
		}
		if len(rings) > 0 {
			polys = [][][]int{rings}
		}
	case TypeMultiPolygon:
		if err := unmarshalArcs(o, &polys); err != nil {
			return nil, err
		}
	case "", "null":
		return mp, nil
	default:
		return nil, eris.Errorf("unsupported geometry type %q for a region", o.Type)
	}

	for _, rings := range polys {
		poly := geom.NewPolygon(geom.XY)
		for _, ring := range rings {
			lr := geom.NewLinearRingFlat(geom.XY, t.stitch(ring))
			if err := poly.Push(lr); err != nil {
				return nil, eris.Wrap(err, "push ring")
			}
		}
		if err := mp.Push(poly); err != nil {
			return nil, eris.Wrap(err, "push polygon")
		}
	}
	return mp, nil
}

// stitch joins a sequence of arcs into one flat coordinate list. Consecutive
// arcs share an endpoint, which is kept only once.
func (t *Topology) stitch(refs []int) []float64 {
	var flat []float64
	for _, ref := range refs {
		pts := t.arcPositions(ref)
		if len(flat) >= 2 && len(pts) >= 2 {
			pts = pts[2:]
		}
		flat = append(flat, pts...)
	}
	return flat
}
