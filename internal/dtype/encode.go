package dtype

import (
	"encoding/binary"
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

// Encoded is a Go value converted to HDF5 element data.
type Encoded struct {
	Datatype *message.Datatype
	Data     []byte
	Count    int
	// Scalar is set when the source was a single value rather than a slice.
	Scalar bool
}

// Encode converts a scalar or slice of a supported Go type.
func Encode(v any) (*Encoded, error) {
	switch x := v.(type) {
	case int8:
		return encodeScalar(x), nil
	case uint8:
		return encodeScalar(x), nil
	case int16:
		return encodeScalar(x), nil
	case uint16:
		return encodeScalar(x), nil
	case int32:
		return encodeScalar(x), nil
	case uint32:
		return encodeScalar(x), nil
	case int64:
		return encodeScalar(x), nil
	case uint64:
		return encodeScalar(x), nil
	case int:
		return encodeScalar(int64(x)), nil
	case float32:
		return encodeScalar(x), nil
	case float64:
		return encodeScalar(x), nil
	case string:
		enc := EncodeStrings([]string{x})
		enc.Scalar = true
		return enc, nil
	case []int8:
		return EncodeSlice(x), nil
	case []uint8:
		return EncodeSlice(x), nil
	case []int16:
		return EncodeSlice(x), nil
	case []uint16:
		return EncodeSlice(x), nil
	case []int32:
		return EncodeSlice(x), nil
	case []uint32:
		return EncodeSlice(x), nil
	case []int64:
		return EncodeSlice(x), nil
	case []uint64:
		return EncodeSlice(x), nil
	case []int:
		wide := make([]int64, len(x))
		for i, n := range x {
			wide[i] = int64(n)
		}
		return EncodeSlice(wide), nil
	case []float32:
		return EncodeSlice(x), nil
	case []float64:
		return EncodeSlice(x), nil
	case []string:
		return EncodeStrings(x), nil
	}
	return nil, fmt.Errorf("%w: Go type %T", ErrUnsupported, v)
}

func encodeScalar[T Number](v T) *Encoded {
	enc := EncodeSlice([]T{v})
	enc.Scalar = true
	return enc
}

// EncodeSlice encodes numeric values as little-endian element data.
func EncodeSlice[T Number](vals []T) *Encoded {
	data, _ := binary.Append(nil, binary.LittleEndian, vals)
	return &Encoded{Datatype: DatatypeFor[T](), Data: data, Count: len(vals)}
}

// EncodeStrings encodes strings as fixed-length, null-padded UTF-8 sized to
// the longest element. Empty input still gets a one-byte element size.
func EncodeStrings(vals []string) *Encoded {
	size := 1
	for _, s := range vals {
		size = max(size, len(s))
	}
	data := make([]byte, size*len(vals))
	for i, s := range vals {
		copy(data[i*size:], s)
	}
	return &Encoded{
		Datatype: message.NewString(size, message.PadNullPad, message.CharsetUTF8),
		Data:     data,
		Count:    len(vals),
	}
}
