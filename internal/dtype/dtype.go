package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

var (
	ErrUnsupported = errors.New("unsupported datatype")
	ErrMismatch    = errors.New("datatype does not match destination")
)

// Number is the set of Go element types stored as numeric HDF5 data.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// GoType returns the Go element type for an HDF5 datatype.
func GoType(dt *message.Datatype) (reflect.Type, error) {
	if dt == nil {
		return nil, fmt.Errorf("nil datatype")
	}
	switch dt.Class {
	case message.ClassFixedPoint:
		signed := dt.Signed()
		switch dt.Size {
		case 1:
			if signed {
				return reflect.TypeOf(int8(0)), nil
			}
			return reflect.TypeOf(uint8(0)), nil
		case 2:
			if signed {
				return reflect.TypeOf(int16(0)), nil
			}
			return reflect.TypeOf(uint16(0)), nil
		case 4:
			if signed {
				return reflect.TypeOf(int32(0)), nil
			}
			return reflect.TypeOf(uint32(0)), nil
		case 8:
			if signed {
				return reflect.TypeOf(int64(0)), nil
			}
			return reflect.TypeOf(uint64(0)), nil
		}
		return nil, fmt.Errorf("%w: %d-byte integer", ErrUnsupported, dt.Size)
	case message.ClassFloatPoint:
		switch dt.Size {
		case 4:
			return reflect.TypeOf(float32(0)), nil
		case 8:
			return reflect.TypeOf(float64(0)), nil
		}
		return nil, fmt.Errorf("%w: %d-byte float", ErrUnsupported, dt.Size)
	case message.ClassString:
		return reflect.TypeOf(""), nil
	}
	return nil, fmt.Errorf("%w: class %s", ErrUnsupported, dt.Class)
}

// ByteOrder returns the byte order of numeric data of the datatype.
func ByteOrder(dt *message.Datatype) binary.ByteOrder {
	if dt.BigEndian() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// IsNumeric reports whether the datatype is an integer or float type.
func IsNumeric(dt *message.Datatype) bool {
	return dt.Class == message.ClassFixedPoint || dt.Class == message.ClassFloatPoint
}

// Describe returns a short name for the datatype such as "int32" or "string[12]".
func Describe(dt *message.Datatype) string {
	if dt == nil {
		return "none"
	}
	switch dt.Class {
	case message.ClassString:
		return fmt.Sprintf("string[%d]", dt.Size)
	case message.ClassVarLen:
		if dt.IsVarLenString() {
			return "vlen string"
		}
	}
	if t, err := GoType(dt); err == nil {
		return t.String()
	}
	return fmt.Sprintf("%s(%d bytes)", dt.Class, dt.Size)
}

// DatatypeFor returns the HDF5 datatype used to store elements of type T.
func DatatypeFor[T Number]() *message.Datatype {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return message.NewFloat(int(t.Size()))
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return message.NewInteger(int(t.Size()), true)
	}
	return message.NewInteger(int(t.Size()), false)
}
