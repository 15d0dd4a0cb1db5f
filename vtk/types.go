package vtk

import (
	"fmt"
	"strings"
)

// TypeTag is the element type of an Array.
type TypeTag int

const (
	Int8 TypeTag = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	// Bit elements are packed eight per byte, most significant bit first.
	Bit
	String
	// Variant arrays hold arbitrary values and cannot be stored.
	Variant
	// IDType holds point and cell ids as int64.
	IDType
)

var typeNames = [...]string{
	Int8:    "int8",
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Int32:   "int32",
	Uint32:  "uint32",
	Int64:   "int64",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Bit:     "bit",
	String:  "string",
	Variant: "variant",
	IDType:  "idtype",
}

// TypeTags lists every tag in declaration order.
func TypeTags() []TypeTag {
	tags := make([]TypeTag, len(typeNames))
	for i := range tags {
		tags[i] = TypeTag(i)
	}
	return tags
}

func (t TypeTag) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("TypeTag(%d)", int(t))
}

// Valid reports whether t is one of the declared tags.
func (t TypeTag) Valid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

// IsNumeric reports whether elements are integers or floats. Bit, String
// and Variant are not numeric.
func (t TypeTag) IsNumeric() bool {
	return t <= Float64 || t == IDType
}

// ParseTypeTag parses the name produced by TypeTag.String, ignoring case.
func ParseTypeTag(s string) (TypeTag, error) {
	for i, name := range typeNames {
		if strings.EqualFold(s, name) {
			return TypeTag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown array type %q", s)
}

// Number is the set of Go element types with a matching numeric TypeTag.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 |
		int64 | uint64 | float32 | float64
}

// tagOf returns the tag for a numeric Go element type.
func tagOf[T Number]() TypeTag {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	}
	return Float64
}
