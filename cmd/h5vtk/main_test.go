package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-h5vtk/meshio"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const gridDoc = `kind: UnstructuredGrid
points:
  type: float64
  values: [0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1]
cells:
  - type: tetra
    points: [0, 1, 2, 3]
cell_data:
  arrays:
    - name: material
      type: int32
      values: [7]
  active:
    Scalars: material
`

func TestSampleExport(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sample.h5")
	_, err := run(t, "sample", "--out", file)
	require.NoError(t, err)

	out, err := run(t, "export", "--file", file, "--path", "/sample")
	require.NoError(t, err)
	ds, err := meshio.Decode(strings.NewReader(out))
	require.NoError(t, err)
	pd, ok := ds.(*vtk.PolyData)
	require.True(t, ok, "exported %T", ds)
	assert.Equal(t, 4, pd.NumPoints())
	assert.Equal(t, 2, pd.NumCells())
	assert.Equal(t, "temperature", pd.PointData.ActiveName(vtk.Scalars))
	require.NotNil(t, pd.FieldData.Get("generator"))

	out, err = run(t, "index", file)
	require.NoError(t, err)
	assert.Equal(t, "0\t/sample\n", out)
}

func TestImportIndexDump(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "meshes.h5")
	doc := filepath.Join(dir, "grid.yaml")
	require.NoError(t, os.WriteFile(doc, []byte(gridDoc), 0o644))

	_, err := run(t, "sample", "--out", file)
	require.NoError(t, err)
	_, err = run(t, "import", "--in", doc, "--out", file, "--path", "/grids/tet")
	require.NoError(t, err)

	out, err := run(t, "index", file)
	require.NoError(t, err)
	assert.Equal(t, "0\t/sample\n1\t/grids/tet\n", out)

	// Importing again at the same path collides with the existing group.
	_, err = run(t, "import", "--in", doc, "--out", file, "--path", "/grids/tet")
	require.Error(t, err)

	out, err = run(t, "dump", file)
	require.NoError(t, err)
	assert.Contains(t, out, "superblock v")
	assert.Contains(t, out, "tet/")
	assert.Contains(t, out, `@VTK_DATA_OBJECT = "UnstructuredGrid"`)
	assert.Contains(t, out, `@ActiveScalars = "material"`)
	assert.Contains(t, out, "CELL_TYPES int32 [1]")

	out, err = run(t, "export", "--file", file, "--path", "/grids/tet")
	require.NoError(t, err)
	ds, err := meshio.Decode(strings.NewReader(out))
	require.NoError(t, err)
	ug, ok := ds.(*vtk.UnstructuredGrid)
	require.True(t, ok, "exported %T", ds)
	assert.Equal(t, []int32{vtk.Tetra}, ug.CellTypes)
	assert.Equal(t, "material", ug.CellData.ActiveName(vtk.Scalars))
}

func TestIndexRebuild(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "meshes.h5")
	doc := filepath.Join(dir, "grid.yaml")
	require.NoError(t, os.WriteFile(doc, []byte(gridDoc), 0o644))

	_, err := run(t, "import", "--in", doc, "--out", file, "--path", "/a", "--index=false")
	require.NoError(t, err)
	_, err = run(t, "import", "--in", doc, "--out", file, "--path", "/b/c", "--index=false")
	require.NoError(t, err)

	out, err := run(t, "index", file)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "index", "--rebuild", file)
	require.NoError(t, err)
	assert.Equal(t, "0\t/a\n1\t/b/c\n", out)
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sample.h5")
	yml := filepath.Join(dir, "out.yaml")
	_, err := run(t, "sample", "--out", file, "--path", "/deep/sample")
	require.NoError(t, err)

	_, err = run(t, "export", "--file", file, "--path", "/deep/sample", "--out", yml)
	require.NoError(t, err)
	ds, err := meshio.ReadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, vtk.KindPolyData, ds.Kind())
}

func TestRequiredFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"import", "--out", "x.h5"}, "--in is required"},
		{[]string{"import", "--in", "x.yaml"}, "--out is required"},
		{[]string{"export"}, "--file is required"},
		{[]string{"sample"}, "--out is required"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sample.h5")
	cfg := filepath.Join(dir, "h5vtk.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("out: "+file+"\npath: /from-config\n"), 0o644))

	_, err := run(t, "sample", "--config", cfg)
	require.NoError(t, err)

	out, err := run(t, "index", file)
	require.NoError(t, err)
	assert.Equal(t, "0\t/from-config\n", out)
}
