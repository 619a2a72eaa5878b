package export

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteShapefile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "counties.shp")

	require.NoError(t, WriteShapefile(path, classified(t)))

	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		_, err := os.Stat(filepath.Join(dir, "counties"+ext))
		require.NoError(t, err, ext)
	}
	_, err := os.Stat(filepath.Join(dir, "countiesdbf"))
	assert.True(t, os.IsNotExist(err))

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()

	fields := r.Fields()
	require.Len(t, fields, len(shapeFields))
	assert.Equal(t, "FIPS", fields[0].String())
	assert.Equal(t, "AREA_NAME", fields[5].String())

	require.True(t, r.Next())
	_, shape := r.Shape()
	poly, ok := shape.(*shp.Polygon)
	require.True(t, ok)
	assert.Equal(t, int32(1), poly.NumParts)
	assert.Equal(t, int32(4), poly.NumPoints)
	assert.Equal(t, "1001", attr(r, 0))
	assert.Equal(t, "40.00", attr(r, 1))
	assert.Equal(t, "4", attr(r, 2))
	assert.Equal(t, "#74c476", attr(r, 3))
	assert.Equal(t, "1", attr(r, 4))
	assert.Equal(t, "Autauga County", attr(r, 5))
	assert.Equal(t, "AL", attr(r, 6))

	require.True(t, r.Next())
	_, shape = r.Shape()
	poly, ok = shape.(*shp.Polygon)
	require.True(t, ok)
	assert.Equal(t, int32(0), poly.NumParts)
	assert.Equal(t, "2013", attr(r, 0))
	assert.Equal(t, "0", attr(r, 4))

	assert.False(t, r.Next())
}

func TestWriteShapefile_BadDir(t *testing.T) {
	err := WriteShapefile(filepath.Join(t.TempDir(), "missing", "out.shp"), classified(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create shapefile")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "abc", truncate("abc", 5))
	// "ñ" is two bytes; a cut through it drops the whole rune.
	assert.Equal(t, "Cata", truncate("Cataño", 5))
	assert.Equal(t, "Catañ", truncate("Cataño", 6))
	assert.True(t, utf8.ValidString(truncate(strings.Repeat("ñ", 40), 64)))
}

// attr trims the NUL padding the writer leaves in unused field bytes.
func attr(r *shp.Reader, n int) string {
	return strings.TrimRight(r.Attribute(n), "\x00 ")
}
