package h5vtk

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
)

func TestIndexRoundTrip(t *testing.T) {
	f, _ := newFile(t)
	require.NoError(t, AppendIndexEntries(f, []string{"a", "b", "c"}))

	r := reopen(t, f)
	paths, err := ReadIndex(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, paths)

	ds, err := r.OpenDataset(IndexPath + "/1")
	require.NoError(t, err)
	comps, err := ds.Attr(AttrNumComponents)
	require.NoError(t, err)
	n, err := comps.ReadScalarInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestIndexNumericOrder(t *testing.T) {
	f, _ := newFile(t)
	want := make([]string, 12)
	for i := range want {
		want[i] = "/obj" + strconv.Itoa(i)
	}
	require.NoError(t, AppendIndexEntries(f, want))

	g, err := f.OpenGroup(IndexPath)
	require.NoError(t, err)
	_, err = g.CreateDataset("notes", []string{"ignored"})
	require.NoError(t, err)

	got, err := ReadIndex(f)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIndexReplaceAndReset(t *testing.T) {
	f, _ := newFile(t)
	require.NoError(t, AppendIndexEntries(f, []string{"a", "b", "c"}))
	require.NoError(t, AppendIndexEntries(f, []string{"x"}))

	got, err := ReadIndex(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "b", "c"}, got)

	require.NoError(t, ResetIndex(f))
	require.NoError(t, ResetIndex(f))
	got, err = ReadIndex(f)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, AppendIndexEntries(f, []string{"y"}))
	got, err = ReadIndex(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, got)
}

func TestObjectIndexFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.h5")
	assert.Error(t, WriteObjectIndex(path, []string{"a"}))

	require.NoError(t, WritePolyData(path, "/m1", twoTriangles()))
	require.NoError(t, WriteUnstructuredGrid(path, "/grids/g1", oneTetra()))
	require.NoError(t, WriteObjectIndex(path, []string{"/m1", "/grids/g1"}))

	paths, err := ReadObjectIndex(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/m1", "/grids/g1"}, paths)

	f, err := hdf5.Open(path)
	require.NoError(t, err)
	defer f.Close()
	found, err := FindDataSets(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"/m1", "/grids/g1"}, found)
}

func TestReadIndexMissing(t *testing.T) {
	f, _ := newFile(t)
	paths, err := ReadIndex(f)
	require.NoError(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
}
