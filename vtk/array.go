package vtk

import (
	"github.com/pkg/errors"
)

// ErrInvalid is returned when a value breaks a structural invariant of the
// model, such as a buffer whose length does not match its shape.
var ErrInvalid = errors.New("invalid data")

// Array is a named, typed array of tuples. Data holds the elements flat in
// tuple order:
//
//	numeric tags  the matching []int8 ... []float64
//	IDType        []int64
//	Bit           []byte, packed, ceil(tuples*components/8) bytes
//	String        []string
//	Variant       []any
type Array struct {
	Name          string
	Type          TypeTag
	NumComponents int
	NumTuples     int
	Data          any
}

// NewArray returns a numeric array over data, which is used without copying.
// The tuple count is len(data)/components.
func NewArray[T Number](name string, components int, data []T) *Array {
	return &Array{
		Name:          name,
		Type:          tagOf[T](),
		NumComponents: components,
		NumTuples:     tupleCount(len(data), components),
		Data:          data,
	}
}

// NewIDArray returns an id array.
func NewIDArray(name string, components int, ids []int64) *Array {
	a := NewArray(name, components, ids)
	a.Type = IDType
	return a
}

// NewBitArray returns a bit array of tuples*components bits packed in bits.
// A nil bits allocates a zeroed buffer.
func NewBitArray(name string, components, tuples int, bits []byte) *Array {
	if bits == nil {
		bits = make([]byte, BitBytes(components*tuples))
	}
	return &Array{Name: name, Type: Bit, NumComponents: components, NumTuples: tuples, Data: bits}
}

// NewStringArray returns a string array.
func NewStringArray(name string, components int, vals []string) *Array {
	return &Array{
		Name:          name,
		Type:          String,
		NumComponents: components,
		NumTuples:     tupleCount(len(vals), components),
		Data:          vals,
	}
}

// NewVariantArray returns a variant array. Variant arrays exist in memory
// only.
func NewVariantArray(name string, components int, vals []any) *Array {
	return &Array{
		Name:          name,
		Type:          Variant,
		NumComponents: components,
		NumTuples:     tupleCount(len(vals), components),
		Data:          vals,
	}
}

func tupleCount(n, components int) int {
	if components <= 0 {
		return 0
	}
	return n / components
}

// BitBytes returns the bytes needed to pack n bits.
func BitBytes(n int) int {
	return (n + 7) / 8
}

// Len returns the number of elements, components times tuples.
func (a *Array) Len() int {
	return a.NumComponents * a.NumTuples
}

// Values returns the elements of a numeric array as []T. It reports false
// when T does not match the array's element type.
func Values[T Number](a *Array) ([]T, bool) {
	v, ok := a.Data.([]T)
	return v, ok
}

// Bit returns element i of a bit array.
func (a *Array) Bit(i int) bool {
	bits := a.Data.([]byte)
	return bits[i/8]&(0x80>>(i%8)) != 0
}

// SetBit sets element i of a bit array.
func (a *Array) SetBit(i int, v bool) {
	bits := a.Data.([]byte)
	mask := byte(0x80 >> (i % 8))
	if v {
		bits[i/8] |= mask
	} else {
		bits[i/8] &^= mask
	}
}

// Validate checks the tag, the counts and that the buffer length matches
// them.
func (a *Array) Validate() error {
	if !a.Type.Valid() {
		return errors.Wrapf(ErrInvalid, "array %q: unknown type %s", a.Name, a.Type)
	}
	if a.NumComponents <= 0 {
		return errors.Wrapf(ErrInvalid, "array %q: %d components", a.Name, a.NumComponents)
	}
	if a.NumTuples < 0 {
		return errors.Wrapf(ErrInvalid, "array %q: %d tuples", a.Name, a.NumTuples)
	}

	want := a.Len()
	var got int
	switch d := a.Data.(type) {
	case []int8:
		got = checkTag(a, Int8, len(d))
	case []uint8:
		if a.Type == Bit {
			want = BitBytes(a.Len())
			got = len(d)
		} else {
			got = checkTag(a, Uint8, len(d))
		}
	case []int16:
		got = checkTag(a, Int16, len(d))
	case []uint16:
		got = checkTag(a, Uint16, len(d))
	case []int32:
		got = checkTag(a, Int32, len(d))
	case []uint32:
		got = checkTag(a, Uint32, len(d))
	case []int64:
		if a.Type == IDType {
			got = len(d)
		} else {
			got = checkTag(a, Int64, len(d))
		}
	case []uint64:
		got = checkTag(a, Uint64, len(d))
	case []float32:
		got = checkTag(a, Float32, len(d))
	case []float64:
		got = checkTag(a, Float64, len(d))
	case []string:
		got = checkTag(a, String, len(d))
	case []any:
		got = checkTag(a, Variant, len(d))
	default:
		return errors.Wrapf(ErrInvalid, "array %q: %s tag with %T data", a.Name, a.Type, a.Data)
	}
	if got < 0 {
		return errors.Wrapf(ErrInvalid, "array %q: %s tag with %T data", a.Name, a.Type, a.Data)
	}
	if got != want {
		return errors.Wrapf(ErrInvalid, "array %q: %d elements, %d components x %d tuples needs %d",
			a.Name, got, a.NumComponents, a.NumTuples, want)
	}
	return nil
}

// checkTag returns n when the array carries tag, else -1.
func checkTag(a *Array, tag TypeTag, n int) int {
	if a.Type != tag {
		return -1
	}
	return n
}
