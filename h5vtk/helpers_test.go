package h5vtk

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// newFile creates a writable file that is closed when the test ends.
func newFile(t *testing.T) (*hdf5.File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.h5")
	f, err := hdf5.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f, path
}

// reopen closes f and opens the same file read-only.
func reopen(t *testing.T, f *hdf5.File) *hdf5.File {
	t.Helper()
	require.NoError(t, f.Close())
	r, err := hdf5.Open(f.Path())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func fill[T vtk.Number](n int, f func(i int) T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

// sampleArray builds an array of the given shape with distinct values.
func sampleArray(tag vtk.TypeTag, components, tuples int) *vtk.Array {
	n := components * tuples
	name := fmt.Sprintf("%s_%dx%d", tag, tuples, components)
	switch tag {
	case vtk.Int8:
		return vtk.NewArray(name, components, fill(n, func(i int) int8 { return int8(i%256 - 128) }))
	case vtk.Uint8:
		return vtk.NewArray(name, components, fill(n, func(i int) uint8 { return uint8(i) }))
	case vtk.Int16:
		return vtk.NewArray(name, components, fill(n, func(i int) int16 { return int16(-i) }))
	case vtk.Uint16:
		return vtk.NewArray(name, components, fill(n, func(i int) uint16 { return uint16(i * 7) }))
	case vtk.Int32:
		return vtk.NewArray(name, components, fill(n, func(i int) int32 { return int32(i*1000 - 5) }))
	case vtk.Uint32:
		return vtk.NewArray(name, components, fill(n, func(i int) uint32 { return uint32(i) << 20 }))
	case vtk.Int64:
		return vtk.NewArray(name, components, fill(n, func(i int) int64 { return int64(i) << 40 }))
	case vtk.Uint64:
		return vtk.NewArray(name, components, fill(n, func(i int) uint64 { return uint64(i) << 60 }))
	case vtk.Float32:
		return vtk.NewArray(name, components, fill(n, func(i int) float32 { return float32(i) * 0.25 }))
	case vtk.Float64:
		return vtk.NewArray(name, components, fill(n, func(i int) float64 { return float64(i) / 3 }))
	case vtk.IDType:
		return vtk.NewIDArray(name, components, fill(n, func(i int) int64 { return int64(i) }))
	case vtk.Bit:
		a := vtk.NewBitArray(name, components, tuples, nil)
		for i := 0; i < n; i++ {
			a.SetBit(i, i%3 == 0)
		}
		return a
	case vtk.String:
		vals := make([]string, n)
		for i := range vals {
			vals[i] = fmt.Sprintf("s%d", i)
		}
		return vtk.NewStringArray(name, components, vals)
	}
	panic("no sample for " + tag.String())
}

func oneTetra() *vtk.UnstructuredGrid {
	ug := vtk.NewUnstructuredGrid()
	ug.Points = vtk.NewPoints([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1})
	ug.InsertNextCell(vtk.Tetra, 0, 1, 2, 3)
	return ug
}
