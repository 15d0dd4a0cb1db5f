package h5vtk

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// twoTriangles is a unit square split into two triangles with a point
// scalar called temperature.
func twoTriangles() *vtk.PolyData {
	pd := vtk.NewPolyData()
	pd.Points = vtk.NewPoints([]float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 0,
	})
	pd.Polys.InsertNextCell(0, 1, 2)
	pd.Polys.InsertNextCell(1, 2, 3)
	temp := vtk.NewArray("temperature", 1, []float32{10, 20, 30, 40})
	if err := pd.PointData.SetActiveArray(vtk.Scalars, temp); err != nil {
		panic(err)
	}
	return pd
}

func TestPolyDataScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.h5")
	require.NoError(t, WritePolyData(path, "/mesh", twoTriangles()))

	got, err := ReadPolyData(path, "/mesh")
	require.NoError(t, err)
	assert.Equal(t, 4, got.NumPoints())
	assert.Equal(t, 2, got.Polys.NumCells)
	assert.Equal(t, []int64{3, 0, 1, 2, 3, 1, 2, 3}, got.Polys.Connectivity)
	assert.Equal(t, 0, got.Verts.NumCells)
	require.NotNil(t, got.PointData.Get("temperature"))
	assert.Equal(t, "temperature", got.PointData.ActiveName(vtk.Scalars))
	assert.Equal(t, []float32{10, 20, 30, 40}, got.PointData.Active(vtk.Scalars).Data)

	f, err := hdf5.Open(path)
	require.NoError(t, err)
	defer f.Close()
	polys, err := f.OpenDataset("/mesh/Polys")
	require.NoError(t, err)
	assert.Equal(t, "int64", polys.TypeName())
	n, err := polys.Attr(AttrNumCells)
	require.NoError(t, err)
	cells, err := n.ReadScalarInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(2), cells)
	assert.False(t, f.Root().Has("mesh/Verts"))
	assert.False(t, f.Root().Has("mesh/FIELD_DATA"))
	assert.True(t, f.Root().HasGroup("mesh/CELL_DATA"))

	points, err := f.OpenDataset("/mesh/Points")
	require.NoError(t, err)
	comps, err := points.Attr(AttrNumComponents)
	require.NoError(t, err)
	c, err := comps.ReadScalarInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(3), c)
}

func TestPolyDataFullRoundTrip(t *testing.T) {
	pd := twoTriangles()
	pd.Verts.InsertNextCell(0)
	pd.Verts.InsertNextCell(3)
	pd.Lines.InsertNextCell(0, 1, 3)
	pd.Strips.InsertNextCell(0, 1, 2, 3)
	pd.CellData.Add(vtk.NewArray("region", 1, []int32{1, 1, 2, 2, 3, 3}))
	require.NoError(t, pd.CellData.SetActive(vtk.Scalars, "region"))
	pd.FieldData.Name = "Info"
	pd.FieldData.Add(vtk.NewStringArray("source", 1, []string{"unit test"}))

	f, _ := newFile(t)
	require.NoError(t, WriteDataSet(f, "/a/b/mesh", pd))
	r := reopen(t, f)

	ds, err := ReadDataSet(r, "/a/b/mesh", vtk.KindPolyData)
	require.NoError(t, err)
	got := ds.(*vtk.PolyData)

	for _, pair := range [][2]*vtk.CellArray{
		{pd.Verts, got.Verts}, {pd.Lines, got.Lines}, {pd.Polys, got.Polys}, {pd.Strips, got.Strips},
	} {
		if diff := cmp.Diff(pair[0], pair[1]); diff != "" {
			t.Errorf("cells mismatch (-want +got):\n%s", diff)
		}
	}
	assert.Equal(t, 6, got.NumCells())
	assert.Equal(t, []string{"region"}, got.CellData.Names())
	assert.Equal(t, "region", got.CellData.ActiveName(vtk.Scalars))
	assert.Equal(t, "Info", got.FieldData.Name)
	assert.Equal(t, []string{"unit test"}, got.FieldData.Get("source").Data)
	if diff := cmp.Diff(pd.Points, got.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestUnstructuredGridRoundTrip(t *testing.T) {
	ug := vtk.NewUnstructuredGrid()
	ug.Points = vtk.NewPoints([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1})
	ug.InsertNextCell(vtk.Tetra, 0, 1, 2, 3)
	ug.InsertNextCell(vtk.Triangle, 1, 2, 4)
	ug.InsertNextCell(vtk.Vertex, 4)
	ug.PointData.Add(vtk.NewArray("dist", 1, []float64{0, 1, 1, 1, 1.7}))
	require.NoError(t, ug.PointData.SetActiveArray(vtk.Normals, vtk.NewArray("n", 3, make([]float32, 15))))

	path := filepath.Join(t.TempDir(), "grid.h5")
	require.NoError(t, WriteUnstructuredGrid(path, "grid", ug))

	got, err := ReadUnstructuredGrid(path, "/grid")
	require.NoError(t, err)
	assert.Equal(t, 5, got.NumPoints())
	assert.Equal(t, ug.Cells.Connectivity, got.Cells.Connectivity)
	assert.Equal(t, 3, got.NumCells())
	assert.Equal(t, []int32{vtk.Tetra, vtk.Triangle, vtk.Vertex}, got.CellTypes)
	assert.Equal(t, []string{"dist", "n"}, got.PointData.Names())
	assert.Equal(t, "n", got.PointData.ActiveName(vtk.Normals))
	assert.Equal(t, 0, got.CellData.Len())
	assert.Equal(t, 0, got.FieldData.Len())
}

func TestKindMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.h5")
	require.NoError(t, WritePolyData(path, "/mesh", twoTriangles()))

	ug, err := ReadUnstructuredGrid(path, "/mesh")
	assert.ErrorIs(t, err, ErrKindMismatch)
	assert.Nil(t, ug)

	f, err := hdf5.Open(path)
	require.NoError(t, err)
	defer f.Close()
	kind, err := DetectKind(f, "/mesh")
	require.NoError(t, err)
	assert.Equal(t, vtk.KindPolyData, kind)

	_, err = DetectKind(f, "/")
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = DetectKind(f, "/nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ReadDataSet(f, "/nowhere", vtk.KindPolyData)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendKeepsEarlierObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.h5")
	require.NoError(t, WritePolyData(path, "/first", twoTriangles()))
	require.NoError(t, WritePolyData(path, "/second", twoTriangles(), WithIndex()))

	first, err := ReadPolyData(path, "/first")
	require.NoError(t, err)
	assert.Equal(t, 4, first.NumPoints())
	second, err := ReadPolyData(path, "/second")
	require.NoError(t, err)
	assert.Equal(t, 2, second.NumCells())

	paths, err := ReadObjectIndex(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/second"}, paths)

	// Writing to the same path again is a collision.
	err = WritePolyData(path, "/first", twoTriangles())
	assert.ErrorIs(t, err, ErrContainerIO)
	assert.ErrorIs(t, err, hdf5.ErrExists)

	// Without append the file is replaced.
	require.NoError(t, WritePolyData(path, "/third", twoTriangles(), WithAppend(false)))
	_, err = ReadPolyData(path, "/first")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteRejectsInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.h5")

	pd := twoTriangles()
	pd.Polys.Connectivity = append(pd.Polys.Connectivity, 3, 0)
	err := WritePolyData(path, "/mesh", pd)
	assert.ErrorIs(t, err, ErrInvalidInput)

	ug := vtk.NewUnstructuredGrid()
	ug.Points = vtk.NewPoints([]float32{0, 0, 0})
	ug.InsertNextCell(vtk.Vertex, 0)
	ug.CellTypes = nil
	err = WriteUnstructuredGrid(path, "/grid", ug)
	assert.ErrorIs(t, err, ErrInvalidInput)

	pd = twoTriangles()
	pd.Points = vtk.NewArray("Points", 2, []float32{0, 0})
	err = WritePolyData(path, "/mesh", pd)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEmptyPolyData(t *testing.T) {
	f, _ := newFile(t)
	require.NoError(t, WriteDataSet(f, "/empty", vtk.NewPolyData()))
	g, err := f.OpenGroup("/empty")
	require.NoError(t, err)
	members, err := g.Members()
	require.NoError(t, err)
	assert.Equal(t, []string{PointsName, CellDataGroup, PointDataGroup}, members)

	ds, err := ReadDataSet(f, "/empty", vtk.KindPolyData)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.NumPoints())
	assert.Equal(t, 0, ds.NumCells())
}

func TestWriteReadAnyKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "any.h5")
	require.NoError(t, Write(path, "/g", oneTetra()))
	ds, err := Read(path, "/g")
	require.NoError(t, err)
	assert.Equal(t, vtk.KindUnstructuredGrid, ds.Kind())
	assert.Equal(t, 1, ds.NumCells())

	_, err = Read(path, "/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadRejectsMalformedPoints(t *testing.T) {
	for name, points := range map[string]*vtk.Array{
		"two components": vtk.NewArray(PointsName, 2, []float32{0, 0, 1, 1}),
		"integers":       vtk.NewArray(PointsName, 3, []int32{0, 0, 0}),
	} {
		f, _ := newFile(t)
		g, err := f.Root().CreateGroup("mesh")
		require.NoError(t, err)
		require.NoError(t, g.SetAttr(AttrDataObject, string(vtk.KindPolyData)))
		require.NoError(t, WriteArray(g, PointsName, points))

		ds, err := ReadDataSet(f, "/mesh", vtk.KindPolyData)
		assert.ErrorIs(t, err, ErrShapeMalformed, name)
		assert.Nil(t, ds, name)
	}
}
