// Package hdf5 reads and writes HDF5 files in pure Go.
//
// Files opened with [Open] are read lazily: group headers are parsed the
// first time a group is visited and dataset contents are read on demand.
// Files opened with [Create] or [OpenReadWrite] keep the whole object tree
// in memory and write a fresh file image on [File.Flush] or [File.Close].
package hdf5

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/dtype"
)

// Common errors.
var (
	ErrNotHDF5     = errors.New("not an HDF5 file")
	ErrNotFound    = errors.New("object not found")
	ErrNotDataset  = errors.New("object is not a dataset")
	ErrNotGroup    = errors.New("object is not a group")
	ErrExists      = errors.New("object already exists")
	ErrUnsupported = errors.New("unsupported feature")
	ErrInvalidPath = errors.New("invalid path")
	ErrClosed      = errors.New("file is closed")
	ErrReadOnly    = errors.New("file is not writable")

	// ErrTypeMismatch is returned when data is read into a Go type that
	// does not match the stored datatype.
	ErrTypeMismatch = dtype.ErrMismatch
)
