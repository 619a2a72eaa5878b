package topology

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// MeshFilter decides whether an arc is kept, given the first and last
// geometry (by index within the object) that reference it. An arc used by a
// single geometry is passed the same index twice.
type MeshFilter func(a, b int) bool

// Interior keeps arcs shared by two different geometries, dropping the
// outer boundary.
func Interior(a, b int) bool {
	return a != b
}

// Mesh returns the arcs of the named object as a MultiLineString, each arc
// at most once, in arc order. A nil filter keeps every referenced arc.
func (t *Topology) Mesh(name string, filter MeshFilter) (*geom.MultiLineString, error) {
	obj, err := t.object(name)
	if err != nil {
		return nil, err
	}

	geomsByArc := make(map[int][]int)
	idx := 0
	var walk func(o *Object) error
	walk = func(o *Object) error {
		if o == nil {
			return nil
		}
		if o.Type == TypeGeometryCollection {
			for _, g := range o.Geometries {
				if err := walk(g); err != nil {
					return err
				}
			}
			return nil
		}
		refs, err := arcRefs(o)
		if err != nil {
			return err
		}
		for _, r := range refs {
			i := arcIndex(r)
			geomsByArc[i] = append(geomsByArc[i], idx)
		}
		idx++
		return nil
	}
	if err := walk(obj); err != nil {
		return nil, eris.Wrapf(err, "topology: mesh %q", name)
	}

	mls := geom.NewMultiLineString(geom.XY)
	for i := range t.Arcs {
		geoms, ok := geomsByArc[i]
		if !ok {
			continue
		}
		if filter != nil && !filter(geoms[0], geoms[len(geoms)-1]) {
			continue
		}
		pts := t.arcPositions(i)
		if len(pts) < 4 {
			continue
		}
		ls := geom.NewLineStringFlat(geom.XY, append([]float64(nil), pts...))
		if err := mls.Push(ls); err != nil {
			return nil, eris.Wrapf(err, "topology: mesh %q arc %d", name, i)
		}
	}
	return mls, nil
}
