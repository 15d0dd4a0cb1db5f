package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

// Object header signatures.
var (
	SignatureV2           = []byte{'O', 'H', 'D', 'R'}
	SignatureContinuation = []byte{'O', 'C', 'H', 'K'}
)

var (
	ErrInvalidHeader      = errors.New("invalid object header")
	ErrUnsupportedVersion = errors.New("unsupported object header version")
	ErrChecksumMismatch   = errors.New("object header checksum mismatch")
)

// Header flag bits.
const (
	flagChunkSizeMask   = 0x03
	flagTrackOrder      = 0x04
	flagAttrPhaseChange = 0x10
	flagTimes           = 0x20
)

// Header is a parsed object header.
type Header struct {
	Address  uint64
	Flags    uint8
	Messages []message.Message
}

// Read parses the object header at address, following continuation chunks.
func Read(r io.ReaderAt, cfg binary.Config, address uint64) (*Header, error) {
	prefix, err := binary.ReadAt(r, int64(address), 6)
	if err != nil {
		return nil, fmt.Errorf("reading object header at %d: %w", address, err)
	}
	if !bytes.Equal(prefix[:4], SignatureV2) {
		if prefix[0] == 1 {
			return nil, fmt.Errorf("%w: version 1 header at %d", ErrUnsupportedVersion, address)
		}
		return nil, fmt.Errorf("%w: no signature at %d", ErrInvalidHeader, address)
	}
	if prefix[4] != 2 {
		return nil, fmt.Errorf("%w: %d at %d", ErrUnsupportedVersion, prefix[4], address)
	}
	flags := prefix[5]

	fixed := 6
	if flags&flagTimes != 0 {
		fixed += 16
	}
	if flags&flagAttrPhaseChange != 0 {
		fixed += 4
	}
	sizeWidth := 1 << (flags & flagChunkSizeMask)
	head, err := binary.ReadAt(r, int64(address), fixed+sizeWidth)
	if err != nil {
		return nil, err
	}
	chunkSize := binary.NewDecoder(head[fixed:], cfg).UintN(sizeWidth)

	// The first chunk runs from the signature to the checksum.
	total := fixed + sizeWidth + int(chunkSize)
	chunk, err := binary.ReadAt(r, int64(address), total+4)
	if err != nil {
		return nil, err
	}
	if !binary.VerifyLookup3(chunk[:total], binary.Order.Uint32(chunk[total:])) {
		return nil, fmt.Errorf("%w at %d", ErrChecksumMismatch, address)
	}

	h := &Header{Address: address, Flags: flags}
	pending, err := h.parseMessages(chunk[fixed+sizeWidth:total], cfg)
	if err != nil {
		return nil, err
	}

	// Continuation chunks may themselves hold further continuations.
	for len(pending) > 0 {
		c := pending[0]
		pending = pending[1:]
		block, err := binary.ReadAt(r, int64(c.Offset), int(c.Length))
		if err != nil {
			return nil, fmt.Errorf("reading continuation of header %d: %w", address, err)
		}
		if len(block) < 8 || !bytes.Equal(block[:4], SignatureContinuation) {
			return nil, fmt.Errorf("%w: bad continuation signature at %d", ErrInvalidHeader, c.Offset)
		}
		end := len(block) - 4
		if !binary.VerifyLookup3(block[:end], binary.Order.Uint32(block[end:])) {
			return nil, fmt.Errorf("%w in continuation at %d", ErrChecksumMismatch, c.Offset)
		}
		more, err := h.parseMessages(block[4:end], cfg)
		if err != nil {
			return nil, err
		}
		pending = append(pending, more...)
	}
	return h, nil
}

// parseMessages appends the messages of one chunk to h and returns any
// continuations found.
func (h *Header) parseMessages(chunk []byte, cfg binary.Config) ([]*message.Continuation, error) {
	prefix := 4
	if h.Flags&flagTrackOrder != 0 {
		prefix += 2
	}

	var conts []*message.Continuation
	d := binary.NewDecoder(chunk, cfg)
	// Fewer bytes than a message prefix is a gap and is ignored.
	for d.Remaining() >= prefix {
		typ := message.Type(d.Uint8())
		size := int(d.Uint16())
		d.Skip(1) // flags
		if h.Flags&flagTrackOrder != 0 {
			d.Skip(2)
		}
		body := d.Bytes(size)
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("%w at %d: %v", ErrInvalidHeader, h.Address, err)
		}
		if typ == message.TypeNIL {
			continue
		}
		msg, err := message.Parse(typ, body, cfg)
		if err != nil {
			return nil, fmt.Errorf("object header at %d: %w", h.Address, err)
		}
		if c, ok := msg.(*message.Continuation); ok {
			conts = append(conts, c)
			continue
		}
		h.Messages = append(h.Messages, msg)
	}
	return conts, nil
}

// GetMessage returns the first message of the given type, or nil if not found.
func (h *Header) GetMessage(typ message.Type) message.Message {
	for _, msg := range h.Messages {
		if msg.Type() == typ {
			return msg
		}
	}
	return nil
}

// GetMessages returns all messages of the given type.
func (h *Header) GetMessages(typ message.Type) []message.Message {
	var result []message.Message
	for _, msg := range h.Messages {
		if msg.Type() == typ {
			result = append(result, msg)
		}
	}
	return result
}

// Dataspace returns the dataspace message if present.
func (h *Header) Dataspace() *message.Dataspace {
	ds, _ := h.GetMessage(message.TypeDataspace).(*message.Dataspace)
	return ds
}

// Datatype returns the datatype message if present.
func (h *Header) Datatype() *message.Datatype {
	dt, _ := h.GetMessage(message.TypeDatatype).(*message.Datatype)
	return dt
}

// DataLayout returns the data layout message if present.
func (h *Header) DataLayout() *message.DataLayout {
	l, _ := h.GetMessage(message.TypeDataLayout).(*message.DataLayout)
	return l
}

// LinkInfo returns the link info message if present.
func (h *Header) LinkInfo() *message.LinkInfo {
	li, _ := h.GetMessage(message.TypeLinkInfo).(*message.LinkInfo)
	return li
}

// Links returns the link messages of a group header.
func (h *Header) Links() []*message.Link {
	var links []*message.Link
	for _, msg := range h.Messages {
		if l, ok := msg.(*message.Link); ok {
			links = append(links, l)
		}
	}
	return links
}

// Attributes returns the attribute messages of the header.
func (h *Header) Attributes() []*message.Attribute {
	var attrs []*message.Attribute
	for _, msg := range h.Messages {
		if a, ok := msg.(*message.Attribute); ok {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
