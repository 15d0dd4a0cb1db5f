package dtype

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

// Decode converts n elements of raw data into the natural Go slice for dt,
// such as []int32 or []string.
func Decode(dt *message.Datatype, raw []byte, n int) (any, error) {
	if dt == nil {
		return nil, fmt.Errorf("nil datatype")
	}
	if need := n * int(dt.Size); len(raw) < need {
		return nil, fmt.Errorf("element data truncated: have %d bytes, need %d", len(raw), need)
	}
	raw = raw[:n*int(dt.Size)]

	if dt.Class == message.ClassString {
		return decodeStrings(dt, raw, n), nil
	}
	t, err := GoType(dt)
	if err != nil {
		return nil, err
	}
	order := ByteOrder(dt)
	switch t.Kind() {
	case reflect.Int8:
		return decodeSlice[int8](raw, order, n)
	case reflect.Uint8:
		return decodeSlice[uint8](raw, order, n)
	case reflect.Int16:
		return decodeSlice[int16](raw, order, n)
	case reflect.Uint16:
		return decodeSlice[uint16](raw, order, n)
	case reflect.Int32:
		return decodeSlice[int32](raw, order, n)
	case reflect.Uint32:
		return decodeSlice[uint32](raw, order, n)
	case reflect.Int64:
		return decodeSlice[int64](raw, order, n)
	case reflect.Uint64:
		return decodeSlice[uint64](raw, order, n)
	case reflect.Float32:
		return decodeSlice[float32](raw, order, n)
	case reflect.Float64:
		return decodeSlice[float64](raw, order, n)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, Describe(dt))
}

func decodeSlice[T Number](raw []byte, order binary.ByteOrder, n int) ([]T, error) {
	out := make([]T, n)
	if n == 0 {
		return out, nil
	}
	if _, err := binary.Decode(raw, order, out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeStrings(dt *message.Datatype, raw []byte, n int) []string {
	size := int(dt.Size)
	out := make([]string, n)
	for i := range out {
		b := raw[i*size : (i+1)*size]
		switch dt.Padding() {
		case message.PadNullTerm:
			if j := bytes.IndexByte(b, 0); j >= 0 {
				b = b[:j]
			}
		case message.PadSpacePad:
			b = bytes.TrimRight(b, " ")
		default:
			b = bytes.TrimRight(b, "\x00")
		}
		out[i] = string(b)
	}
	return out
}

// DecodeInto decodes into dest, which must point to a slice. The slice
// element type must match dt, except that any integer type may be read into
// []int64 and any numeric type into []float64.
func DecodeInto(dt *message.Datatype, raw []byte, n int, dest any) error {
	switch p := dest.(type) {
	case *[]int64:
		if dt.Class == message.ClassFixedPoint {
			vals, err := ToInt64s(dt, raw, n)
			if err != nil {
				return err
			}
			*p = vals
			return nil
		}
	case *[]float64:
		if IsNumeric(dt) {
			vals, err := ToFloat64s(dt, raw, n)
			if err != nil {
				return err
			}
			*p = vals
			return nil
		}
	}

	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() || dv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("destination must be a non-nil pointer to a slice, got %T", dest)
	}
	vals, err := Decode(dt, raw, n)
	if err != nil {
		return err
	}
	v := reflect.ValueOf(vals)
	if v.Type() != dv.Elem().Type() {
		return fmt.Errorf("%w: %s into %s", ErrMismatch, Describe(dt), dv.Elem().Type())
	}
	dv.Elem().Set(v)
	return nil
}

// ToInt64s decodes integer data widened to int64. Unsigned 64-bit values
// above math.MaxInt64 wrap.
func ToInt64s(dt *message.Datatype, raw []byte, n int) ([]int64, error) {
	if dt.Class != message.ClassFixedPoint {
		return nil, fmt.Errorf("%w: %s is not an integer type", ErrMismatch, Describe(dt))
	}
	vals, err := Decode(dt, raw, n)
	if err != nil {
		return nil, err
	}
	switch x := vals.(type) {
	case []int8:
		return widen[int8, int64](x), nil
	case []uint8:
		return widen[uint8, int64](x), nil
	case []int16:
		return widen[int16, int64](x), nil
	case []uint16:
		return widen[uint16, int64](x), nil
	case []int32:
		return widen[int32, int64](x), nil
	case []uint32:
		return widen[uint32, int64](x), nil
	case []int64:
		return x, nil
	case []uint64:
		return widen[uint64, int64](x), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, Describe(dt))
}

// ToFloat64s decodes numeric data converted to float64.
func ToFloat64s(dt *message.Datatype, raw []byte, n int) ([]float64, error) {
	if dt.Class == message.ClassFixedPoint {
		ints, err := ToInt64s(dt, raw, n)
		if err != nil {
			return nil, err
		}
		if !dt.Signed() && dt.Size == 8 {
			out := make([]float64, len(ints))
			for i, v := range ints {
				out[i] = float64(uint64(v))
			}
			return out, nil
		}
		return widen[int64, float64](ints), nil
	}
	vals, err := Decode(dt, raw, n)
	if err != nil {
		return nil, err
	}
	switch x := vals.(type) {
	case []float32:
		return widen[float32, float64](x), nil
	case []float64:
		return x, nil
	}
	return nil, fmt.Errorf("%w: %s is not numeric", ErrMismatch, Describe(dt))
}

func widen[S, D Number](src []S) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = D(v)
	}
	return out
}
