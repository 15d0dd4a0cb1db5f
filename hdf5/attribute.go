package hdf5

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/internal/dtype"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

// Attribute is a small named value attached to a group or dataset.
type Attribute struct {
	msg   *message.Attribute
	owner string
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.msg.Name
}

// Shape returns the attribute dimensions; scalars have no dimensions.
func (a *Attribute) Shape() []uint64 {
	return append([]uint64(nil), a.msg.Dataspace.Dimensions...)
}

// NumElements returns the number of stored elements.
func (a *Attribute) NumElements() int {
	return int(a.msg.Dataspace.NumElements())
}

// IsScalar reports whether the attribute holds a single value without dimensions.
func (a *Attribute) IsScalar() bool {
	return a.msg.Dataspace.IsScalar()
}

// Class returns the element class.
func (a *Attribute) Class() Class {
	return classOf(a.msg.Datatype)
}

// TypeName describes the element type, such as "int32" or "string[8]".
func (a *Attribute) TypeName() string {
	return dtype.Describe(a.msg.Datatype)
}

// Read decodes the value into dest, a pointer to a slice of the matching Go
// type. Integers may also be read into *[]int64 and numbers into *[]float64.
func (a *Attribute) Read(dest interface{}) error {
	err := dtype.DecodeInto(a.msg.Datatype, a.msg.Data, a.NumElements(), dest)
	return errors.Wrapf(err, "reading attribute %s", JoinAttrPath(a.owner, a.Name()))
}

// Value decodes the value into its natural Go slice type.
func (a *Attribute) Value() (interface{}, error) {
	v, err := dtype.Decode(a.msg.Datatype, a.msg.Data, a.NumElements())
	if err != nil {
		return nil, errors.Wrapf(err, "reading attribute %s", JoinAttrPath(a.owner, a.Name()))
	}
	return v, nil
}

// ReadInt64s reads integer values widened to int64.
func (a *Attribute) ReadInt64s() ([]int64, error) {
	var out []int64
	if err := a.Read(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadScalarInt64 reads a single integer value.
func (a *Attribute) ReadScalarInt64() (int64, error) {
	vals, err := a.ReadInt64s()
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, errors.Errorf("attribute %s holds %d values, want 1", JoinAttrPath(a.owner, a.Name()), len(vals))
	}
	return vals[0], nil
}

// ReadStrings reads string values.
func (a *Attribute) ReadStrings() ([]string, error) {
	var out []string
	if err := a.Read(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadScalarString reads a single string value.
func (a *Attribute) ReadScalarString() (string, error) {
	vals, err := a.ReadStrings()
	if err != nil {
		return "", err
	}
	if len(vals) != 1 {
		return "", errors.Errorf("attribute %s holds %d values, want 1", JoinAttrPath(a.owner, a.Name()), len(vals))
	}
	return vals[0], nil
}
