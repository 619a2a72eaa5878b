// Package topology decodes TopoJSON documents into go-geom geometries.
//
// Arcs are shared between neighbouring geometries and may be quantized and
// delta-encoded; positions are resolved once on first use and cached.
package topology

import (
	"encoding/json"
	"sort"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"
)

// Geometry type names used by TopoJSON.
const (
	TypeTopology           = "Topology"
	TypeGeometryCollection = "GeometryCollection"
	TypePolygon            = "Polygon"
	TypeMultiPolygon       = "MultiPolygon"
	TypeLineString         = "LineString"
	TypeMultiLineString    = "MultiLineString"
)

// Transform converts quantized integer positions into coordinates.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Object is a TopoJSON geometry or geometry collection.
type Object struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Arcs       json.RawMessage `json:"arcs,omitempty"`
	Geometries []*Object       `json:"geometries,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// IntID parses the object's id. Both numeric and numeric-string ids are
// accepted; ok is false when the id is missing or not an integer.
func (o *Object) IntID() (int, bool) {
	if len(o.ID) == 0 {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(o.ID, &n); err == nil {
		if v, err := strconv.Atoi(n.String()); err == nil {
			return v, true
		}
		return 0, false
	}
	var s string
	if err := json.Unmarshal(o.ID, &s); err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Topology is a decoded TopoJSON document.
type Topology struct {
	Type      string             `json:"type"`
	Objects   map[string]*Object `json:"objects"`
	Arcs      [][][]float64      `json:"arcs"`
	Transform *Transform         `json:"transform,omitempty"`
	BBox      []float64          `json:"bbox,omitempty"`

	once      sync.Once
	positions [][]float64
}

// Validate checks the document type and that every object arc reference
// points at an existing arc.
func (t *Topology) Validate() error {
	if t.Type != TypeTopology {
		return eris.Errorf("topology: unexpected document type %q", t.Type)
	}
	if len(t.Objects) == 0 {
		return eris.New("topology: document has no objects")
	}
	for name, obj := range t.Objects {
		if err := t.validateObject(obj); err != nil {
			return eris.Wrapf(err, "topology: object %q", name)
		}
	}
	return nil
}

func (t *Topology) validateObject(o *Object) error {
	if o == nil {
		return nil
	}
	if o.Type == TypeGeometryCollection {
		for _, g := range o.Geometries {
			if err := t.validateObject(g); err != nil {
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
		if i := arcIndex(r); i < 0 || i >= len(t.Arcs) {
			return eris.Errorf("arc reference %d out of range (%d arcs)", r, len(t.Arcs))
		}
	}
	return nil
}

// ObjectNames lists the document's object names in sorted order.
func (t *Topology) ObjectNames() []string {
	names := make([]string, 0, len(t.Objects))
	for name := range t.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Topology) object(name string) (*Object, error) {
	obj, ok := t.Objects[name]
	if !ok || obj == nil {
		return nil, eris.Errorf("topology: object %q not found", name)
	}
	return obj, nil
}

// arcPositions returns the flat XY coordinates of arc i, reversed when the
// reference is negative (one's complement).
func (t *Topology) arcPositions(ref int) []float64 {
	t.once.Do(t.decodeArcs)
	src := t.positions[arcIndex(ref)]
	if ref >= 0 {
		return src
	}
	out := make([]float64, len(src))
	n := len(src) / 2
	for i := range n {
		out[2*i] = src[2*(n-1-i)]
		out[2*i+1] = src[2*(n-1-i)+1]
	}
	return out
}

func (t *Topology) decodeArcs() {
	t.positions = make([][]float64, len(t.Arcs))
	for i, arc := range t.Arcs {
		flat := make([]float64, 0, 2*len(arc))
		var x, y float64
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			if t.Transform == nil {
				flat = append(flat, p[0], p[1])
				continue
			}
			x += p[0]
			y += p[1]
			flat = append(flat,
				x*t.Transform.Scale[0]+t.Transform.Translate[0],
				y*t.Transform.Scale[1]+t.Transform.Translate[1],
			)
		}
		t.positions[i] = flat
	}
}

func arcIndex(ref int) int {
	if ref < 0 {
		return ^ref
	}
	return ref
}

// arcRefs flattens every arc reference of a single geometry.
func arcRefs(o *Object) ([]int, error) {
	var out []int
	switch o.Type {
	case TypeLineString:
		var a []int
		if err := unmarshalArcs(o, &a); err != nil {
			return nil, err
		}
		out = a
	case TypeMultiLineString, TypePolygon:
		var a [][]int
		if err := unmarshalArcs(o, &a); err != nil {
			return nil, err
		}
		for _, part := range a {
			out = append(out, part...)
		}
	case TypeMultiPolygon:
		var a [][][]int
		if err := unmarshalArcs(o, &a); err != nil {
			return nil, err
		}
		for _, poly := range a {
			for _, ring := range poly {
				out = append(out, ring...)
			}
		}
	}
	return out, nil
}

func unmarshalArcs(o *Object, dst any) error {
	if len(o.Arcs) == 0 {
		return nil
	}
	if err := json.Unmarshal(o.Arcs, dst); err != nil {
		return eris.Wrapf(err, "decode %s arcs", o.Type)
	}
	return nil
}
