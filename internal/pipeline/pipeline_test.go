package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/choropleth/internal/classify"
	"github.com/sells-group/choropleth/internal/fetcher"
	"github.com/sells-group/choropleth/internal/loader"
	"github.com/sells-group/choropleth/internal/scale"
)

// Two counties sharing an edge inside one state, plus a third county with
// no education row.
const topoJSON = `{
  "type": "Topology",
  "transform": {"scale": [1, 1], "translate": [0, 0]},
  "objects": {
    "counties": {"type": "GeometryCollection", "geometries": [
      {"type": "Polygon", "id": 1001, "arcs": [[0, 1]]},
      {"type": "Polygon", "id": 1003, "arcs": [[-1, 2]]},
      {"type": "Polygon", "id": 2013, "arcs": [[3]]}
    ]},
    "states": {"type": "GeometryCollection", "geometries": [
      {"type": "Polygon", "id": 1, "arcs": [[1, 2]]},
      {"type": "Polygon", "id": 2, "arcs": [[3]]}
    ]}
  },
  "arcs": [
    [[1, 0], [0, 1]],
    [[1, 1], [-1, 0], [0, -1], [1, 0]],
    [[1, 0], [1, 0], [0, 1], [-1, 0]],
    [[5, 5], [1, 0], [0, 1], [-1, 0], [0, -1]]
  ]
}`

const educationJSON = `[
  {"fips": 1001, "state": "AL", "area_name": "Autauga County", "bachelorsOrHigher": 40},
  {"fips": 1003, "state": "AL", "area_name": "Baldwin County", "bachelorsOrHigher": 80},
  {"fips": 1001, "state": "AL", "area_name": "Duplicate", "bachelorsOrHigher": 1}
]`

func newPipeline(t *testing.T, topo, edu string) *Pipeline {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/counties.json", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(topo)) })
	mux.HandleFunc("/education.json", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(edu)) })
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s, err := scale.NewEducation(2.6, 75.1, 8, "greens")
	require.NoError(t, err)

	return New(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
		classify.NewClassifier(s),
		Options{
			Sources: loader.Sources{
				TopologyURL:  srv.URL + "/counties.json",
				EducationURL: srv.URL + "/education.json",
			},
			Timeout: 5 * time.Second,
		},
	)
}

func TestRun(t *testing.T) {
	p := newPipeline(t, topoJSON, educationJSON)

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Regions, 3)
	assert.Equal(t, 1001, res.Regions[0].Region.ID)
	assert.Equal(t, 4, res.Regions[0].Bucket)
	assert.Equal(t, "Autauga County", res.Regions[0].Record.AreaName)
	assert.Equal(t, 8, res.Regions[1].Bucket)
	assert.False(t, res.Regions[2].Matched)
	assert.Equal(t, 0, res.Regions[2].Bucket)

	assert.Equal(t, 2, res.Stats.Matched)
	assert.Equal(t, 1, res.Stats.Unmatched)
	assert.Equal(t, 1, res.Stats.Duplicates)

	require.NotNil(t, res.States)
	assert.Equal(t, 0, res.States.NumLineStrings(), "states share no border")
	assert.NotNil(t, res.Scale)
}

func TestRun_MissingStatesObject(t *testing.T) {
	topo := `{
	  "type": "Topology",
	  "objects": {"counties": {"type": "GeometryCollection", "geometries": [
	    {"type": "Polygon", "id": 1001, "arcs": [[0]]}
	  ]}},
	  "arcs": [[[0, 0], [1, 0], [1, 1], [0, 0]]]
	}`
	p := newPipeline(t, topo, educationJSON)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Regions, 1)
	assert.Nil(t, res.States)
}

func TestRun_MissingCountiesObject(t *testing.T) {
	p := newPipeline(t, topoJSON, educationJSON)
	p.opts.CountiesObject = "parishes"

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `object "parishes" not found`)
}

func TestRun_LoadFailure(t *testing.T) {
	p := newPipeline(t, topoJSON, `not json`)

	res, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "loader: fetch education")
}
