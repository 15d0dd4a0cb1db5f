package message

import (
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
)

// LayoutClass represents the storage layout class.
type LayoutClass uint8

const (
	LayoutCompact    LayoutClass = 0
	LayoutContiguous LayoutClass = 1
	LayoutChunked    LayoutClass = 2
	LayoutVirtual    LayoutClass = 3
)

func (c LayoutClass) String() string {
	switch c {
	case LayoutCompact:
		return "compact"
	case LayoutContiguous:
		return "contiguous"
	case LayoutChunked:
		return "chunked"
	case LayoutVirtual:
		return "virtual"
	}
	return fmt.Sprintf("layout(%d)", uint8(c))
}

// DataLayout describes where a dataset's raw data is stored (type 0x0008).
// Only compact and contiguous storage carry decoded fields.
type DataLayout struct {
	Class LayoutClass

	CompactData []byte

	Address uint64
	Size    uint64
}

// NewContiguousLayout returns a layout for size bytes stored at addr.
func NewContiguousLayout(addr, size uint64) *DataLayout {
	return &DataLayout{Class: LayoutContiguous, Address: addr, Size: size}
}

func (m *DataLayout) Type() Type { return TypeDataLayout }

// Encode writes a version 3 layout message.
func (m *DataLayout) Encode(e *binary.Encoder) {
	e.Uint8(3)
	e.Uint8(uint8(m.Class))
	switch m.Class {
	case LayoutCompact:
		e.Uint16(uint16(len(m.CompactData)))
		e.Write(m.CompactData)
	case LayoutContiguous:
		e.Offset(m.Address)
		e.Length(m.Size)
	}
}

func parseDataLayout(data []byte, cfg binary.Config) (*DataLayout, error) {
	d := binary.NewDecoder(data, cfg)
	version := d.Uint8()
	if version != 3 && version != 4 {
		return nil, fmt.Errorf("unsupported data layout version %d", version)
	}
	m := &DataLayout{Class: LayoutClass(d.Uint8())}
	switch m.Class {
	case LayoutCompact:
		n := int(d.Uint16())
		m.CompactData = append([]byte(nil), d.Bytes(n)...)
	case LayoutContiguous:
		m.Address = d.Offset()
		m.Size = d.Length()
	}
	return m, d.Err()
}
