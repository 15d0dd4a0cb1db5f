package message

import (
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
)

// LinkInfo marks a new-style group (type 0x0002). When FractalHeapAddress
// is undefined the group's links are stored as Link messages in its header.
type LinkInfo struct {
	Flags              uint8
	MaxCreationIndex   uint64
	FractalHeapAddress uint64
	NameIndexAddress   uint64
}

// NewLinkInfo returns link info for a group with compact link storage.
func NewLinkInfo(cfg binary.Config) *LinkInfo {
	undef := cfg.UndefinedAddress()
	return &LinkInfo{FractalHeapAddress: undef, NameIndexAddress: undef}
}

func (m *LinkInfo) Type() Type { return TypeLinkInfo }

// Dense reports whether links are kept in a fractal heap rather than the header.
func (m *LinkInfo) Dense(cfg binary.Config) bool {
	return !cfg.IsUndefined(m.FractalHeapAddress)
}

func (m *LinkInfo) Encode(e *binary.Encoder) {
	e.Uint8(0)
	e.Uint8(m.Flags)
	if m.Flags&0x01 != 0 {
		e.Uint64(m.MaxCreationIndex)
	}
	e.Offset(m.FractalHeapAddress)
	e.Offset(m.NameIndexAddress)
	if m.Flags&0x02 != 0 {
		e.UndefinedOffset()
	}
}

func parseLinkInfo(data []byte, cfg binary.Config) (*LinkInfo, error) {
	d := binary.NewDecoder(data, cfg)
	if v := d.Uint8(); v != 0 {
		return nil, fmt.Errorf("unsupported link info version %d", v)
	}
	m := &LinkInfo{Flags: d.Uint8()}
	if m.Flags&0x01 != 0 {
		m.MaxCreationIndex = d.Uint64()
	}
	m.FractalHeapAddress = d.Offset()
	m.NameIndexAddress = d.Offset()
	return m, d.Err()
}

// GroupInfo holds group storage hints (type 0x000A). A group using the
// library defaults carries only the version and flags bytes.
type GroupInfo struct {
	Flags uint8
	Rest  []byte
}

func (m *GroupInfo) Type() Type { return TypeGroupInfo }

func (m *GroupInfo) Encode(e *binary.Encoder) {
	e.Uint8(0)
	e.Uint8(m.Flags)
	e.Write(m.Rest)
}

func parseGroupInfo(data []byte) (*GroupInfo, error) {
	d := binary.NewDecoder(data, binary.DefaultConfig())
	if v := d.Uint8(); v != 0 {
		return nil, fmt.Errorf("unsupported group info version %d", v)
	}
	m := &GroupInfo{Flags: d.Uint8()}
	m.Rest = append([]byte(nil), d.Rest()...)
	return m, d.Err()
}
