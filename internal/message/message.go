package message

import (
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
)

// Type represents an HDF5 header message type.
type Type uint16

// Header message types.
const (
	TypeNIL                      Type = 0x0000
	TypeDataspace                Type = 0x0001
	TypeLinkInfo                 Type = 0x0002
	TypeDatatype                 Type = 0x0003
	TypeFillValueOld             Type = 0x0004
	TypeFillValue                Type = 0x0005
	TypeLink                     Type = 0x0006
	TypeDataLayout               Type = 0x0008
	TypeGroupInfo                Type = 0x000A
	TypeFilterPipeline           Type = 0x000B
	TypeAttribute                Type = 0x000C
	TypeObjectModTime            Type = 0x000E
	TypeObjectHeaderContinuation Type = 0x0010
	TypeSymbolTable              Type = 0x0011
	TypeAttributeInfo            Type = 0x0015
)

func (t Type) String() string {
	switch t {
	case TypeNIL:
		return "NIL"
	case TypeDataspace:
		return "Dataspace"
	case TypeLinkInfo:
		return "LinkInfo"
	case TypeDatatype:
		return "Datatype"
	case TypeFillValueOld, TypeFillValue:
		return "FillValue"
	case TypeLink:
		return "Link"
	case TypeDataLayout:
		return "DataLayout"
	case TypeGroupInfo:
		return "GroupInfo"
	case TypeFilterPipeline:
		return "FilterPipeline"
	case TypeAttribute:
		return "Attribute"
	case TypeObjectModTime:
		return "ModificationTime"
	case TypeObjectHeaderContinuation:
		return "Continuation"
	case TypeSymbolTable:
		return "SymbolTable"
	case TypeAttributeInfo:
		return "AttributeInfo"
	}
	return fmt.Sprintf("Type(0x%04x)", uint16(t))
}

// Message is the interface implemented by all header messages.
type Message interface {
	Type() Type
}

// Encodable is a message that can be written into an object header.
type Encodable interface {
	Message
	Encode(e *binary.Encoder)
}

// Parse decodes the body of a header message.
func Parse(typ Type, data []byte, cfg binary.Config) (Message, error) {
	var (
		msg Message
		err error
	)
	switch typ {
	case TypeDataspace:
		msg, err = parseDataspace(data, cfg)
	case TypeLinkInfo:
		msg, err = parseLinkInfo(data, cfg)
	case TypeDatatype:
		msg, err = parseDatatype(data)
	case TypeLink:
		msg, err = parseLink(data, cfg)
	case TypeDataLayout:
		msg, err = parseDataLayout(data, cfg)
	case TypeGroupInfo:
		msg, err = parseGroupInfo(data)
	case TypeAttribute:
		msg, err = parseAttribute(data, cfg)
	case TypeObjectHeaderContinuation:
		msg, err = parseContinuation(data, cfg)
	default:
		raw := make([]byte, len(data))
		copy(raw, data)
		return &Unknown{typ: typ, Raw: raw}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s message: %w", typ, err)
	}
	return msg, nil
}

// Encode returns the encoded body of an encodable message.
func Encode(m Encodable, cfg binary.Config) []byte {
	e := binary.NewEncoder(cfg)
	m.Encode(e)
	return e.Bytes()
}

// Unknown holds a message this package does not interpret.
type Unknown struct {
	typ Type
	Raw []byte
}

// NewUnknown wraps raw message bytes of the given type.
func NewUnknown(typ Type, raw []byte) *Unknown { return &Unknown{typ: typ, Raw: raw} }

func (m *Unknown) Type() Type { return m.typ }

func (m *Unknown) Encode(e *binary.Encoder) { e.Write(m.Raw) }

// Continuation points to a further chunk of header messages.
type Continuation struct {
	Offset uint64
	Length uint64
}

func (m *Continuation) Type() Type { return TypeObjectHeaderContinuation }

func parseContinuation(data []byte, cfg binary.Config) (*Continuation, error) {
	d := binary.NewDecoder(data, cfg)
	m := &Continuation{Offset: d.Offset(), Length: d.Length()}
	return m, d.Err()
}

// nameLengthBits returns the size code and width of a link name length field.
func nameLengthBits(n int) (uint8, int) {
	switch {
	case n <= 0xFF:
		return 0, 1
	case n <= 0xFFFF:
		return 1, 2
	case uint64(n) <= 0xFFFFFFFF:
		return 2, 4
	default:
		return 3, 8
	}
}
