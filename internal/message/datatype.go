package message

import (
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
)

// DatatypeClass represents the class of an HDF5 datatype.
type DatatypeClass uint8

const (
	ClassFixedPoint DatatypeClass = 0
	ClassFloatPoint DatatypeClass = 1
	ClassTime       DatatypeClass = 2
	ClassString     DatatypeClass = 3
	ClassBitfield   DatatypeClass = 4
	ClassOpaque     DatatypeClass = 5
	ClassCompound   DatatypeClass = 6
	ClassReference  DatatypeClass = 7
	ClassEnum       DatatypeClass = 8
	ClassVarLen     DatatypeClass = 9
	ClassArray      DatatypeClass = 10
)

func (c DatatypeClass) String() string {
	names := [...]string{"integer", "float", "time", "string", "bitfield",
		"opaque", "compound", "reference", "enum", "vlen", "array"}
	if int(c) < len(names) {
		return names[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// StringPadding represents how fixed-length strings are padded.
type StringPadding uint8

const (
	PadNullTerm StringPadding = 0
	PadNullPad  StringPadding = 1
	PadSpacePad StringPadding = 2
)

// CharacterSet represents the encoding of string data.
type CharacterSet uint8

const (
	CharsetASCII CharacterSet = 0
	CharsetUTF8  CharacterSet = 1
)

// Datatype describes the element type of a dataset or attribute (type 0x0003).
// Classes other than fixed-point, floating-point and string keep their
// properties undecoded in Properties.
type Datatype struct {
	Class     DatatypeClass
	Version   uint8
	ClassBits uint32
	Size      uint32

	BitOffset    uint16
	BitPrecision uint16

	// Floating-point field layout.
	ExpLocation  uint8
	ExpSize      uint8
	MantLocation uint8
	MantSize     uint8
	ExpBias      uint32

	Properties []byte
}

// NewInteger returns a little-endian integer type of size bytes.
func NewInteger(size int, signed bool) *Datatype {
	var bits uint32
	if signed {
		bits |= 0x08
	}
	return &Datatype{
		Class:        ClassFixedPoint,
		Version:      1,
		ClassBits:    bits,
		Size:         uint32(size),
		BitPrecision: uint16(8 * size),
	}
}

// NewFloat returns a little-endian IEEE 754 type of 4 or 8 bytes.
func NewFloat(size int) *Datatype {
	dt := &Datatype{
		Class:        ClassFloatPoint,
		Version:      1,
		Size:         uint32(size),
		BitPrecision: uint16(8 * size),
	}
	if size == 4 {
		dt.ExpLocation, dt.ExpSize, dt.MantSize, dt.ExpBias = 23, 8, 23, 127
	} else {
		dt.ExpLocation, dt.ExpSize, dt.MantSize, dt.ExpBias = 52, 11, 52, 1023
	}
	// Implied leading mantissa bit, sign in the top bit.
	dt.ClassBits = 0x20 | uint32(8*size-1)<<8
	return dt
}

// NewString returns a fixed-length string type.
func NewString(size int, pad StringPadding, cset CharacterSet) *Datatype {
	return &Datatype{
		Class:     ClassString,
		Version:   1,
		ClassBits: uint32(pad) | uint32(cset)<<4,
		Size:      uint32(size),
	}
}

func (m *Datatype) Type() Type { return TypeDatatype }

// BigEndian reports whether numeric data is stored big-endian.
func (m *Datatype) BigEndian() bool {
	switch m.Class {
	case ClassFixedPoint, ClassFloatPoint, ClassBitfield:
		return m.ClassBits&0x01 != 0
	}
	return false
}

// Signed reports whether a fixed-point type is signed.
func (m *Datatype) Signed() bool {
	return m.Class == ClassFixedPoint && m.ClassBits&0x08 != 0
}

// Padding returns the padding of a string type.
func (m *Datatype) Padding() StringPadding { return StringPadding(m.ClassBits & 0x0F) }

// Charset returns the character set of a string type.
func (m *Datatype) Charset() CharacterSet { return CharacterSet((m.ClassBits >> 4) & 0x0F) }

// IsVarLenString reports whether the type is a variable-length string.
func (m *Datatype) IsVarLenString() bool {
	return m.Class == ClassVarLen && m.ClassBits&0x0F == 1
}

// Encode writes the datatype message.
func (m *Datatype) Encode(e *binary.Encoder) {
	version := m.Version
	if version == 0 {
		version = 1
	}
	e.Uint8(uint8(m.Class) | version<<4)
	e.Uint8(uint8(m.ClassBits))
	e.Uint8(uint8(m.ClassBits >> 8))
	e.Uint8(uint8(m.ClassBits >> 16))
	e.Uint32(m.Size)

	switch m.Class {
	case ClassFixedPoint, ClassBitfield:
		e.Uint16(m.BitOffset)
		e.Uint16(m.BitPrecision)
	case ClassFloatPoint:
		e.Uint16(m.BitOffset)
		e.Uint16(m.BitPrecision)
		e.Uint8(m.ExpLocation)
		e.Uint8(m.ExpSize)
		e.Uint8(m.MantLocation)
		e.Uint8(m.MantSize)
		e.Uint32(m.ExpBias)
	case ClassString:
	default:
		e.Write(m.Properties)
	}
}

func parseDatatype(data []byte) (*Datatype, error) {
	d := binary.NewDecoder(data, binary.DefaultConfig())
	head := d.Uint8()
	b0, b1, b2 := d.Uint8(), d.Uint8(), d.Uint8()
	m := &Datatype{
		Class:     DatatypeClass(head & 0x0F),
		Version:   head >> 4,
		ClassBits: uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16,
		Size:      d.Uint32(),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	switch m.Class {
	case ClassFixedPoint, ClassBitfield:
		m.BitOffset = d.Uint16()
		m.BitPrecision = d.Uint16()
	case ClassFloatPoint:
		m.BitOffset = d.Uint16()
		m.BitPrecision = d.Uint16()
		m.ExpLocation = d.Uint8()
		m.ExpSize = d.Uint8()
		m.MantLocation = d.Uint8()
		m.MantSize = d.Uint8()
		m.ExpBias = d.Uint32()
	case ClassString:
	default:
		m.Properties = append([]byte(nil), d.Rest()...)
	}
	return m, d.Err()
}
