package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/choropleth/internal/config"
	"github.com/sells-group/choropleth/internal/export"
)

func runClassify(t *testing.T, c *config.Config, format, out string) (string, error) {
	t.Helper()
	cfg = c
	classifyFormat = format
	classifyOut = out
	classifySources = sourceOverrides{}
	t.Cleanup(func() {
		classifyFormat = ""
		classifyOut = ""
	})

	var buf bytes.Buffer
	classifyCmd.SetOut(&buf)
	classifyCmd.SetContext(context.Background())
	defer func() {
		classifyCmd.SetOut(nil)
		classifyCmd.SetContext(nil)
	}()

	err := classifyCmd.RunE(classifyCmd, nil)
	return buf.String(), err
}

func TestClassifyCmd_JSONToStdout(t *testing.T) {
	srv := newDataServer(t, ptr(testTopology), ptr(testEducation))

	out, err := runClassify(t, testConfig(srv), "json", "-")
	require.NoError(t, err)

	var rows []export.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, export.Row{FIPS: 1001, Education: 40, Bucket: 4, Color: "#74c476", Matched: true, AreaName: "Autauga County", State: "AL"}, rows[0])
	assert.Equal(t, export.Row{FIPS: 1003, Education: 0, Bucket: 0, Color: "#f7fcf5"}, rows[1])
}

func TestClassifyCmd_GeoJSONFileFromConfig(t *testing.T) {
	srv := newDataServer(t, ptr(testTopology), ptr(testEducation))
	c := testConfig(srv)
	c.Export.Output = filepath.Join(t.TempDir(), "counties.geojson")

	stdout, err := runClassify(t, c, "", "")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(c.Export.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
	assert.Contains(t, string(data), `"1001"`)
}

func TestClassifyCmd_UnknownFormat(t *testing.T) {
	srv := newDataServer(t, ptr(testTopology), ptr(testEducation))

	_, err := runClassify(t, testConfig(srv), "csv", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestClassifyCmd_RetrievalFails(t *testing.T) {
	srv := newDataServer(t, ptr(testTopology), nil)

	out, err := runClassify(t, testConfig(srv), "yaml", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loader: fetch education")
	assert.Empty(t, out)
}

func TestClassifyCmd_ShapefileNeedsOut(t *testing.T) {
	srv := newDataServer(t, ptr(testTopology), ptr(testEducation))

	_, err := runClassify(t, testConfig(srv), "shp", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs --out")
}

func TestClassifyCmd_Shapefile(t *testing.T) {
	srv := newDataServer(t, ptr(testTopology), ptr(testEducation))
	dir := t.TempDir()

	_, err := runClassify(t, testConfig(srv), "shp", filepath.Join(dir, "counties.shp"))
	require.NoError(t, err)

	for _, name := range []string{"counties.shp", "counties.shx", "counties.dbf"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
