package message

import (
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
)

// Attribute is a named value stored in an object header (type 0x000C).
type Attribute struct {
	Name      string
	Datatype  *Datatype
	Dataspace *Dataspace
	Data      []byte
}

// NewAttribute creates an attribute message.
func NewAttribute(name string, dt *Datatype, ds *Dataspace, data []byte) *Attribute {
	return &Attribute{Name: name, Datatype: dt, Dataspace: ds, Data: data}
}

func (m *Attribute) Type() Type { return TypeAttribute }

// Encode writes a version 3 attribute message.
func (m *Attribute) Encode(e *binary.Encoder) {
	dt := Encode(m.Datatype, e.Config())
	ds := Encode(m.Dataspace, e.Config())

	e.Uint8(3)
	e.Uint8(0)
	e.Uint16(uint16(len(m.Name) + 1))
	e.Uint16(uint16(len(dt)))
	e.Uint16(uint16(len(ds)))
	e.Uint8(uint8(CharsetUTF8))
	e.Write([]byte(m.Name))
	e.Uint8(0)
	e.Write(dt)
	e.Write(ds)
	e.Write(m.Data)
}

func parseAttribute(data []byte, cfg binary.Config) (*Attribute, error) {
	d := binary.NewDecoder(data, cfg)
	version := d.Uint8()
	if version < 1 || version > 3 {
		return nil, fmt.Errorf("unsupported attribute version %d", version)
	}
	flags := d.Uint8()
	if flags&0x03 != 0 {
		return nil, fmt.Errorf("shared attribute datatypes are not supported")
	}
	nameSize := int(d.Uint16())
	dtSize := int(d.Uint16())
	dsSize := int(d.Uint16())
	if version == 3 {
		d.Skip(1) // name encoding
	}

	// Version 1 pads each field to a multiple of eight bytes.
	padded := func(n int) int {
		if version == 1 {
			return (n + 7) &^ 7
		}
		return n
	}

	name := d.Bytes(padded(nameSize))
	dtRaw := d.Bytes(padded(dtSize))
	dsRaw := d.Bytes(padded(dsSize))
	if err := d.Err(); err != nil {
		return nil, err
	}

	m := &Attribute{Name: binary.NewDecoder(name, cfg).String(nameSize)}
	dt, err := parseDatatype(dtRaw[:dtSize])
	if err != nil {
		return nil, fmt.Errorf("attribute %q datatype: %w", m.Name, err)
	}
	ds, err := parseDataspace(dsRaw[:dsSize], cfg)
	if err != nil {
		return nil, fmt.Errorf("attribute %q dataspace: %w", m.Name, err)
	}
	m.Datatype = dt
	m.Dataspace = ds
	m.Data = append([]byte(nil), d.Rest()...)
	return m, nil
}
