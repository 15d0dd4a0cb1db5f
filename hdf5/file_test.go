package hdf5

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.h5")
}

func TestCreateAndReopen(t *testing.T) {
	path := tempPath(t)

	f, err := Create(path)
	require.NoError(t, err)
	root := f.Root()
	require.NoError(t, root.SetAttr("title", "mesh"))

	g, err := root.CreateGroups("a/b")
	require.NoError(t, err)
	_, err = g.CreateDataset("values", []float32{1.5, 2.5, 3.5}, WithAttribute("units", "K"))
	require.NoError(t, err)
	_, err = root.CreateDataset("ids", []int64{10, 20, 30, 40, 50, 60}, WithShape(2, 3))
	require.NoError(t, err)
	_, err = root.CreateDataset("count", int32(7))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, f.Writable())

	members, err := f.Root().Members()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "ids", "count"}, members)

	title, err := f.Root().Attr("title")
	require.NoError(t, err)
	s, err := title.ReadScalarString()
	require.NoError(t, err)
	assert.Equal(t, "mesh", s)

	ds, err := f.OpenDataset("/a/b/values")
	require.NoError(t, err)
	assert.Equal(t, ClassFloat, ds.Class())
	assert.Equal(t, "float32", ds.TypeName())
	var vals []float32
	require.NoError(t, ds.Read(&vals))
	assert.Equal(t, []float32{1.5, 2.5, 3.5}, vals)

	units, err := ds.Attr("units")
	require.NoError(t, err)
	u, err := units.ReadScalarString()
	require.NoError(t, err)
	assert.Equal(t, "K", u)

	ids, err := f.OpenDataset("ids")
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3}, ids.Shape())
	assert.Equal(t, 6, ids.NumElements())

	count, err := f.OpenDataset("count")
	require.NoError(t, err)
	assert.True(t, count.IsScalar())
	n, err := count.ReadInt64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, n)
}

func TestEmptyDataset(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	_, err = f.Root().CreateDataset("empty", []float64{})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	ds, err := f.OpenDataset("empty")
	require.NoError(t, err)
	assert.Equal(t, []uint64{0}, ds.Shape())
	var vals []float64
	require.NoError(t, ds.Read(&vals))
	assert.Empty(t, vals)
}

func TestOpenReadWriteModifies(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	_, err = f.Root().CreateDataset("keep", []int32{1, 2, 3})
	require.NoError(t, err)
	_, err = f.Root().CreateDataset("drop", []int32{4})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = OpenReadWrite(path)
	require.NoError(t, err)
	require.NoError(t, f.Root().Unlink("drop"))
	_, err = f.Root().CreateDataset("added", []string{"x", "yz"})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	members, err := f.Root().Members()
	require.NoError(t, err)
	assert.Equal(t, []string{"keep", "added"}, members)

	ds, err := f.OpenDataset("keep")
	require.NoError(t, err)
	var keep []int32
	require.NoError(t, ds.Read(&keep))
	assert.Equal(t, []int32{1, 2, 3}, keep)

	ds, err = f.OpenDataset("added")
	require.NoError(t, err)
	var added []string
	require.NoError(t, ds.Read(&added))
	assert.Equal(t, []string{"x", "yz"}, added)
}

func TestRewriteShrinksFile(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	_, err = f.Root().CreateDataset("big", make([]float64, 4096))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	before, err := os.Stat(path)
	require.NoError(t, err)

	f, err = OpenReadWrite(path)
	require.NoError(t, err)
	require.NoError(t, f.Root().Unlink("big"))
	require.NoError(t, f.Close())
	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, after.Size(), before.Size())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	members, err := f.Root().Members()
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestErrors(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	root := f.Root()

	_, err = root.CreateGroup("g")
	require.NoError(t, err)
	_, err = root.CreateGroup("g")
	assert.ErrorIs(t, err, ErrExists)
	_, err = root.CreateGroup("a/b")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = root.CreateDataset("d", []int8{1, 2})
	require.NoError(t, err)
	_, err = root.CreateGroups("d/x")
	assert.ErrorIs(t, err, ErrNotGroup)
	_, err = root.OpenGroup("d")
	assert.ErrorIs(t, err, ErrNotGroup)
	_, err = root.OpenDataset("g")
	assert.ErrorIs(t, err, ErrNotDataset)
	_, err = root.OpenDataset("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, root.Unlink("missing"), ErrNotFound)

	_, err = root.CreateDataset("shaped", []int8{1, 2, 3}, WithShape(2, 2))
	assert.Error(t, err)
	_, err = root.CreateDataset("bad", map[string]int{})
	assert.Error(t, err)

	ds, err := root.OpenDataset("d")
	require.NoError(t, err)
	var wrong []float32
	assert.ErrorIs(t, ds.Read(&wrong), ErrTypeMismatch)
	_, err = ds.Attr("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.Close())
	_, err = root.Members()
	assert.ErrorIs(t, err, ErrClosed)

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Root().CreateGroup("x")
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.ErrorIs(t, f.Root().SetAttr("k", 1), ErrReadOnly)
}

func TestOpenNotHDF5(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, []byte("definitely not an hdf5 file"), 0o644))
	_, err := Open(path)
	assert.ErrorIs(t, err, ErrNotHDF5)

	_, err = Open(filepath.Join(t.TempDir(), "missing.h5"))
	assert.Error(t, err)
}

func TestSetAttrReplaces(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	g, err := f.Root().CreateGroup("g")
	require.NoError(t, err)
	require.NoError(t, g.SetAttr("a", int32(1)))
	require.NoError(t, g.SetAttr("b", []float64{1, 2}))
	require.NoError(t, g.SetAttr("a", "replaced"))
	require.NoError(t, g.DeleteAttr("b"))
	require.NoError(t, g.DeleteAttr("b"))
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	g, err = f.OpenGroup("/g")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, g.Attrs())
	a, err := g.Attr("a")
	require.NoError(t, err)
	assert.Equal(t, ClassString, a.Class())
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, []string{"replaced"}, v)
}

func TestSmallOffsets(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path, WithOffsetSize(4), WithLengthSize(4))
	require.NoError(t, err)
	_, err = f.Root().CreateDataset("v", []uint16{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()
	ds, err := f.OpenDataset("v")
	require.NoError(t, err)
	vals, err := ds.ReadInt64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, vals)
}

func TestWalk(t *testing.T) {
	path := tempPath(t)
	f, err := Create(path)
	require.NoError(t, err)
	root := f.Root()
	_, err = root.CreateGroups("x/y")
	require.NoError(t, err)
	x, err := root.OpenGroup("x")
	require.NoError(t, err)
	_, err = x.CreateDataset("d", []int32{1})
	require.NoError(t, err)
	_, err = root.CreateDataset("top", []int32{2})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()

	var visited []string
	err = Walk(f.Root(), func(path string, obj Object, err error) error {
		require.NoError(t, err)
		visited = append(visited, path)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/x", "/x/y", "/x/d", "/top"}, visited)

	visited = nil
	err = Walk(f.Root(), func(path string, obj Object, err error) error {
		visited = append(visited, path)
		if _, ok := obj.(*Dataset); ok {
			return ErrStopWalk
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/x", "/x/y", "/x/d"}, visited)
}

func TestAllocStats(t *testing.T) {
	f, err := Create(tempPath(t))
	require.NoError(t, err)
	_, err = f.Root().CreateDataset("v", make([]float64, 100))
	require.NoError(t, err)
	require.NoError(t, f.Flush())
	stats := f.AllocStats()
	assert.Equal(t, uint64(800), stats.RawDataBytes)
	assert.Equal(t, 3, stats.Allocations)
	require.NoError(t, f.Close())
}
