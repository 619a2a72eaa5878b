package model

import (
	"github.com/twpayne/go-geom"
)

// Region is a county boundary decoded from the topology.
type Region struct {
	ID       int                `json:"id"`
	Geometry *geom.MultiPolygon `json:"-"`
}

// Education is one row of the county education dataset.
type Education struct {
	FIPS              int     `json:"fips" yaml:"fips"`
	BachelorsOrHigher float64 `json:"bachelorsOrHigher" yaml:"bachelors_or_higher"`
	AreaName          string  `json:"area_name" yaml:"area_name"`
	State             string  `json:"state" yaml:"state"`
}

// ClassifiedRegion pairs a Region with its resolved education value and
// color bucket. Value is 0 and Record is nil when no Education row matched.
type ClassifiedRegion struct {
	Region  Region     `json:"region"`
	Value   float64    `json:"value"`
	Bucket  int        `json:"bucket"`
	Color   string     `json:"color"`
	Matched bool       `json:"matched"`
	Record  *Education `json:"record,omitempty"`
}

// Label returns the tooltip text for the region: "area, state: value%".
// Unmatched regions render as "0".
func (c ClassifiedRegion) Label() string {
	if c.Record == nil {
		return "0"
	}
	return c.Record.AreaName + ", " + c.Record.State + ": " + formatPercent(c.Record.BachelorsOrHigher) + "%"
}
