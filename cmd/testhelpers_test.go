package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sells-group/choropleth/internal/config"
)

const testTopology = `{
  "type": "Topology",
  "transform": {"scale": [10, 10], "translate": [0, 0]},
  "objects": {
    "counties": {"type": "GeometryCollection", "geometries": [
      {"type": "Polygon", "id": 1001, "arcs": [[0, 1]]},
      {"type": "Polygon", "id": 1003, "arcs": [[-1, 2]]}
    ]},
    "states": {"type": "GeometryCollection", "geometries": [
      {"type": "Polygon", "id": 1, "arcs": [[0, 1]]},
      {"type": "Polygon", "id": 12, "arcs": [[-1, 2]]}
    ]}
  },
  "arcs": [
    [[1, 0], [0, 1]],
    [[1, 1], [-1, 0], [0, -1], [1, 0]],
    [[1, 0], [1, 0], [0, 1], [-1, 0]]
  ]
}`

const testEducation = `[
  {"fips": 1001, "state": "AL", "area_name": "Autauga County", "bachelorsOrHigher": 40}
]`

// newDataServer serves the test datasets; a nil body answers 500.
func newDataServer(t *testing.T, topo, edu *string) *httptest.Server {
	t.Helper()
	serve := func(body *string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			if body == nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(*body))
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/counties.json", serve(topo))
	mux.HandleFunc("/education.json", serve(edu))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func ptr(s string) *string { return &s }

// testConfig mirrors config.Load defaults, pointed at srv.
func testConfig(srv *httptest.Server) *config.Config {
	return &config.Config{
		Sources: config.SourcesConfig{
			TopologyURL:    srv.URL + "/counties.json",
			EducationURL:   srv.URL + "/education.json",
			CountiesObject: "counties",
			StatesObject:   "states",
		},
		Fetch: config.FetchConfig{
			UserAgent:   "choropleth-test",
			TimeoutSecs: 5,
			MaxAttempts: 1,
		},
		Scale: config.ScaleConfig{Min: 2.6, Max: 75.1, Steps: 8, Scheme: "greens"},
		Render: config.RenderConfig{
			Width:      960,
			Height:     600,
			Title:      "United States Educational Attainment",
			Caption:    "Bachelor's degree or higher",
			LegendX0:   600,
			LegendX1:   860,
			LegendY:    40,
			StateColor: "#ffffff",
		},
		Export: config.ExportConfig{Format: "geojson", Output: "-"},
		Log:    config.LogConfig{Level: "info", Format: "json"},
	}
}
