package h5vtk

import (
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-h5vtk/hdf5"
	"github.com/robert-malhotra/go-h5vtk/vtk"
)

// arrayCodec converts between an in-memory array and dataset contents.
type arrayCodec struct {
	// payload returns the values to store; the array is already validated.
	payload func(a *vtk.Array) interface{}
}

func numericCodec[T vtk.Number]() arrayCodec {
	return arrayCodec{payload: func(a *vtk.Array) interface{} {
		v, _ := vtk.Values[T](a)
		return v
	}}
}

// writeCodecs maps every storable tag to its codec. Variant has no entry.
var writeCodecs = map[vtk.TypeTag]arrayCodec{
	vtk.Int8:    numericCodec[int8](),
	vtk.Uint8:   numericCodec[uint8](),
	vtk.Int16:   numericCodec[int16](),
	vtk.Uint16:  numericCodec[uint16](),
	vtk.Int32:   numericCodec[int32](),
	vtk.Uint32:  numericCodec[uint32](),
	vtk.Int64:   numericCodec[int64](),
	vtk.Uint64:  numericCodec[uint64](),
	vtk.Float32: numericCodec[float32](),
	vtk.Float64: numericCodec[float64](),
	vtk.Bit:     {payload: func(a *vtk.Array) interface{} { return a.Data.([]byte) }},
	vtk.String:  {payload: func(a *vtk.Array) interface{} { return a.Data.([]string) }},
	// Ids are stored as int32. Values outside that range are truncated.
	vtk.IDType: {payload: func(a *vtk.Array) interface{} {
		ids := a.Data.([]int64)
		out := make([]int32, len(ids))
		for i, id := range ids {
			out[i] = int32(id)
		}
		return out
	}},
}

// WriteArray stores a as a one-dimensional dataset called name under g with
// an int32 NumComponents attribute. Bit arrays also carry NumBits. Nothing
// is written when the array is invalid or its type has no stored form.
func WriteArray(g *hdf5.Group, name string, a *vtk.Array) error {
	codec, ok := writeCodecs[a.Type]
	if !ok {
		return errors.Wrapf(ErrUnsupportedType, "array %q of type %s", name, a.Type)
	}
	if err := a.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidInput, "%v", err)
	}
	if err := checkStrings(a); err != nil {
		return err
	}

	opts := []hdf5.DatasetOption{hdf5.WithAttribute(AttrNumComponents, int32(a.NumComponents))}
	if a.Type == vtk.Bit {
		opts = append(opts, hdf5.WithAttribute(AttrNumBits, int64(a.Len())))
	}
	if _, err := g.CreateDataset(name, codec.payload(a), opts...); err != nil {
		return containerErr(err, "writing array %q in %s", name, g.Path())
	}
	glog.V(2).Infof("h5vtk: wrote %s array %s/%s (%d x %d)", a.Type, g.Path(), name, a.NumTuples, a.NumComponents)
	return nil
}

// checkStrings rejects string values holding NUL bytes, which end a
// null-terminated stored string and would not read back.
func checkStrings(a *vtk.Array) error {
	vals, ok := a.Data.([]string)
	if !ok {
		return nil
	}
	for i, v := range vals {
		if strings.IndexByte(v, 0) >= 0 {
			return errors.Wrapf(ErrInvalidInput, "array %q value %d holds a NUL byte", a.Name, i)
		}
	}
	return nil
}

// elementKey identifies a stored element type.
type elementKey struct {
	class  hdf5.Class
	size   int
	signed bool
}

type arrayReader struct {
	tag  vtk.TypeTag
	read func(ds *hdf5.Dataset) (interface{}, error)
}

func numericReader[T vtk.Number](tag vtk.TypeTag) arrayReader {
	return arrayReader{tag: tag, read: func(ds *hdf5.Dataset) (interface{}, error) {
		var v []T
		err := ds.Read(&v)
		return v, err
	}}
}

var readers = map[elementKey]arrayReader{
	{hdf5.ClassInteger, 1, true}:  numericReader[int8](vtk.Int8),
	{hdf5.ClassInteger, 1, false}: numericReader[uint8](vtk.Uint8),
	{hdf5.ClassInteger, 2, true}:  numericReader[int16](vtk.Int16),
	{hdf5.ClassInteger, 2, false}: numericReader[uint16](vtk.Uint16),
	{hdf5.ClassInteger, 4, true}:  numericReader[int32](vtk.Int32),
	{hdf5.ClassInteger, 4, false}: numericReader[uint32](vtk.Uint32),
	{hdf5.ClassInteger, 8, true}:  numericReader[int64](vtk.Int64),
	{hdf5.ClassInteger, 8, false}: numericReader[uint64](vtk.Uint64),
	{hdf5.ClassFloat, 4, false}:   numericReader[float32](vtk.Float32),
	{hdf5.ClassFloat, 8, false}:   numericReader[float64](vtk.Float64),
}

// ReadArray reconstructs the array stored in dataset name of g from the
// stored datatype and shape. A missing or unreadable NumComponents means
// one component. The component count must divide the element count.
func ReadArray(g *hdf5.Group, name string) (*vtk.Array, error) {
	ds, err := g.OpenDataset(name)
	if err != nil {
		if errors.Is(err, hdf5.ErrNotFound) || errors.Is(err, hdf5.ErrNotDataset) {
			return nil, errors.Wrapf(ErrNotFound, "array %q in %s", name, g.Path())
		}
		return nil, containerErr(err, "opening array %q in %s", name, g.Path())
	}

	components := 1
	if attr, err := ds.Attr(AttrNumComponents); err == nil {
		if n, err := attr.ReadScalarInt64(); err == nil && n > 0 {
			components = int(n)
		} else {
			glog.V(1).Infof("h5vtk: %s has an unusable %s attribute, assuming 1", ds.Path(), AttrNumComponents)
		}
	}

	if ds.Rank() == 0 {
		return nil, errors.Wrapf(ErrShapeMalformed, "%s has no dimensions", ds.Path())
	}
	total := ds.NumElements()

	a := &vtk.Array{Name: name, NumComponents: components}
	switch ds.Class() {
	case hdf5.ClassString:
		var vals []string
		if err := ds.Read(&vals); err != nil {
			return nil, containerErr(err, "reading %s", ds.Path())
		}
		a.Type, a.Data = vtk.String, vals
	case hdf5.ClassInteger, hdf5.ClassFloat:
		key := elementKey{class: ds.Class(), size: ds.ElementSize()}
		if key.class == hdf5.ClassInteger {
			key.signed = ds.Signed()
		}
		r, ok := readers[key]
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "%s holds %s", ds.Path(), ds.TypeName())
		}
		vals, err := r.read(ds)
		if err != nil {
			return nil, containerErr(err, "reading %s", ds.Path())
		}
		a.Type, a.Data = r.tag, vals
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "%s holds %s", ds.Path(), ds.TypeName())
	}

	if a.Type == vtk.Uint8 && ds.HasAttr(AttrNumBits) {
		bits, err := numBits(ds, total)
		if err != nil {
			return nil, err
		}
		a.Type = vtk.Bit
		total = bits
	}

	if total%components != 0 {
		return nil, errors.Wrapf(ErrShapeMalformed, "%s: %d elements do not split into %d components", ds.Path(), total, components)
	}
	a.NumTuples = total / components
	return a, nil
}

// numBits reads the bit count of a packed bit array stored in nbytes bytes.
func numBits(ds *hdf5.Dataset, nbytes int) (int, error) {
	attr, err := ds.Attr(AttrNumBits)
	if err != nil {
		return 0, containerErr(err, "reading %s of %s", AttrNumBits, ds.Path())
	}
	n, err := attr.ReadScalarInt64()
	if err != nil {
		return 0, containerErr(err, "reading %s of %s", AttrNumBits, ds.Path())
	}
	if n < 0 || vtk.BitBytes(int(n)) != nbytes {
		return 0, errors.Wrapf(ErrShapeMalformed, "%s: %d bits stored in %d bytes", ds.Path(), n, nbytes)
	}
	return int(n), nil
}

// CheckTuples returns ErrTupleCountMismatch unless a holds want tuples.
func CheckTuples(a *vtk.Array, want int) error {
	if a.NumTuples != want {
		return errors.Wrapf(ErrTupleCountMismatch, "array %q has %d tuples, want %d", a.Name, a.NumTuples, want)
	}
	return nil
}
