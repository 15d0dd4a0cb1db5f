package message

import (
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
)

// LinkType is the kind of target a link refers to.
type LinkType uint8

const (
	LinkTypeHard     LinkType = 0
	LinkTypeSoft     LinkType = 1
	LinkTypeExternal LinkType = 64
)

// Link is a named entry of a group (type 0x0006).
type Link struct {
	Name     string
	LinkType LinkType

	// ObjectAddress is the target object header of a hard link.
	ObjectAddress uint64
	// Target holds the raw value of soft and external links.
	Target []byte
}

// NewHardLink creates a hard link to the object header at addr.
func NewHardLink(name string, addr uint64) *Link {
	return &Link{Name: name, LinkType: LinkTypeHard, ObjectAddress: addr}
}

func (m *Link) Type() Type { return TypeLink }

// IsHard reports whether the link points directly at an object header.
func (m *Link) IsHard() bool { return m.LinkType == LinkTypeHard }

// Encode writes a version 1 link message with a UTF-8 name.
func (m *Link) Encode(e *binary.Encoder) {
	code, width := nameLengthBits(len(m.Name))
	flags := code | 0x10
	if m.LinkType != LinkTypeHard {
		flags |= 0x08
	}
	e.Uint8(1)
	e.Uint8(flags)
	if m.LinkType != LinkTypeHard {
		e.Uint8(uint8(m.LinkType))
	}
	e.Uint8(uint8(CharsetUTF8))
	e.UintN(uint64(len(m.Name)), width)
	e.Write([]byte(m.Name))
	if m.LinkType == LinkTypeHard {
		e.Offset(m.ObjectAddress)
		return
	}
	e.Uint16(uint16(len(m.Target)))
	e.Write(m.Target)
}

func parseLink(data []byte, cfg binary.Config) (*Link, error) {
	d := binary.NewDecoder(data, cfg)
	if v := d.Uint8(); v != 1 {
		return nil, fmt.Errorf("unsupported link version %d", v)
	}
	flags := d.Uint8()
	m := &Link{}
	if flags&0x08 != 0 {
		m.LinkType = LinkType(d.Uint8())
	}
	if flags&0x04 != 0 {
		d.Skip(8) // creation order
	}
	if flags&0x10 != 0 {
		d.Skip(1) // charset
	}
	n := d.UintN(1 << (flags & 0x03))
	m.Name = string(d.Bytes(int(n)))

	if m.LinkType == LinkTypeHard {
		m.ObjectAddress = d.Offset()
	} else {
		size := int(d.Uint16())
		m.Target = append([]byte(nil), d.Bytes(size)...)
	}
	return m, d.Err()
}
