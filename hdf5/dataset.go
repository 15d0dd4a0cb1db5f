package hdf5

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/dtype"
)

// Dataset is a typed n-dimensional array.
type Dataset struct {
	objectBase
}

func newDataset(f *File, n *node) *Dataset {
	return &Dataset{objectBase{f: f, n: n}}
}

// Shape returns the dataset dimensions; scalars have none.
func (d *Dataset) Shape() []uint64 {
	return append([]uint64(nil), d.n.space.Dimensions...)
}

// Rank returns the number of dimensions.
func (d *Dataset) Rank() int {
	return d.n.space.Rank()
}

// NumElements returns the total number of elements.
func (d *Dataset) NumElements() int {
	return int(d.n.space.NumElements())
}

// IsScalar reports whether the dataset holds a single value without dimensions.
func (d *Dataset) IsScalar() bool {
	return d.n.space.IsScalar()
}

// Class returns the element class.
func (d *Dataset) Class() Class {
	return classOf(d.n.dtype)
}

// ElementSize returns the size of one element in bytes.
func (d *Dataset) ElementSize() int {
	return int(d.n.dtype.Size)
}

// Signed reports whether integer elements are signed.
func (d *Dataset) Signed() bool {
	return d.n.dtype.Signed()
}

// TypeName describes the element type, such as "float32" or "string[16]".
func (d *Dataset) TypeName() string {
	return dtype.Describe(d.n.dtype)
}

// StorageSize returns the number of bytes the elements occupy.
func (d *Dataset) StorageSize() int {
	return d.NumElements() * d.ElementSize()
}

func (d *Dataset) raw() ([]byte, error) {
	if err := d.f.checkOpen(); err != nil {
		return nil, err
	}
	return d.f.datasetBytes(d.n)
}

// Read decodes the contents into dest, a pointer to a slice of the matching
// Go type. Integers may also be read into *[]int64 and numbers into *[]float64.
func (d *Dataset) Read(dest interface{}) error {
	raw, err := d.raw()
	if err != nil {
		return err
	}
	return errors.Wrapf(dtype.DecodeInto(d.n.dtype, raw, d.NumElements(), dest), "reading %s", d.Path())
}

// Value decodes the contents into their natural Go slice type.
func (d *Dataset) Value() (interface{}, error) {
	raw, err := d.raw()
	if err != nil {
		return nil, err
	}
	v, err := dtype.Decode(d.n.dtype, raw, d.NumElements())
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", d.Path())
	}
	return v, nil
}

// ReadInt64s reads integer contents widened to int64.
func (d *Dataset) ReadInt64s() ([]int64, error) {
	var out []int64
	if err := d.Read(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadFloat64s reads numeric contents converted to float64.
func (d *Dataset) ReadFloat64s() ([]float64, error) {
	var out []float64
	if err := d.Read(&out); err != nil {
		return nil, err
	}
	return out, nil
}
