package h5vtk

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when a named dataset or group is absent.
	ErrNotFound = errors.New("not found")
	// ErrTypeMismatch is returned for a stored datatype outside the
	// supported set.
	ErrTypeMismatch = errors.New("unsupported stored type")
	// ErrShapeMalformed is returned for a dataset whose shape cannot hold
	// an array.
	ErrShapeMalformed = errors.New("malformed dataset shape")
	// ErrKindMismatch is returned when the stored dataset kind differs
	// from the one requested.
	ErrKindMismatch = errors.New("dataset kind mismatch")
	// ErrContainerIO wraps failures of the HDF5 layer.
	ErrContainerIO = errors.New("container I/O failed")
	// ErrTupleCountMismatch is returned by CheckTuples.
	ErrTupleCountMismatch = errors.New("tuple count mismatch")
	// ErrUnsupportedType is returned when writing an array whose type has
	// no stored form.
	ErrUnsupportedType = errors.New("array type cannot be stored")
	// ErrInvalidInput is returned for in-memory data that breaks an
	// invariant of the model.
	ErrInvalidInput = errors.New("invalid input")
)

// containerErr marks err as a failure of the HDF5 layer.
func containerErr(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(&wrapped{sentinel: ErrContainerIO, err: err}, format, args...)
}

// wrapped lets errors.Is match both a sentinel and the underlying cause.
type wrapped struct {
	sentinel error
	err      error
}

func (w *wrapped) Error() string { return w.sentinel.Error() + ": " + w.err.Error() }

func (w *wrapped) Is(target error) bool { return target == w.sentinel }

func (w *wrapped) Unwrap() error { return w.err }
