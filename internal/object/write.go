package object

import (
	"fmt"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
	"github.com/robert-malhotra/go-h5vtk/internal/message"
)

// MinGroupChunkSize is the minimum chunk size for group object headers.
// This matches what h5py uses for compatibility.
const MinGroupChunkSize = 120

// Encode builds a complete version 2 object header holding messages.
// The chunk size field counts messages and padding only; the checksum
// follows the chunk.
func Encode(cfg binary.Config, messages []message.Encodable, minChunkSize int) ([]byte, error) {
	body := binary.NewEncoder(cfg)
	for _, msg := range messages {
		data := message.Encode(msg, cfg)
		if len(data) > 0xFFFF {
			return nil, fmt.Errorf("%s message of %d bytes exceeds header message limit", msg.Type(), len(data))
		}
		body.Uint8(uint8(msg.Type()))
		body.Uint16(uint16(len(data)))
		body.Uint8(0)
		body.Write(data)
	}

	// A NIL message needs at least its own 4-byte prefix.
	if pad := minChunkSize - body.Len(); pad > 0 {
		if pad < 4 {
			pad = 4
		}
		body.Uint8(uint8(message.TypeNIL))
		body.Uint16(uint16(pad - 4))
		body.Uint8(0)
		body.Zeros(pad - 4)
	}

	chunkSize := body.Len()
	code, width := chunkSizeField(chunkSize)

	e := binary.NewEncoder(cfg)
	e.Write(SignatureV2)
	e.Uint8(2)
	e.Uint8(code)
	e.UintN(uint64(chunkSize), width)
	e.Write(body.Bytes())
	e.AppendChecksum()
	return e.Bytes(), nil
}

// chunkSizeField returns the flag code and width of the chunk size field.
func chunkSizeField(size int) (uint8, int) {
	switch {
	case size <= 0xFF:
		return 0, 1
	case size <= 0xFFFF:
		return 1, 2
	case uint64(size) <= 0xFFFFFFFF:
		return 2, 4
	}
	return 3, 8
}

// NewGroupHeader returns the messages of a group header holding links.
// LinkInfo and GroupInfo are included for HDF5 library and h5py compatibility.
func NewGroupHeader(cfg binary.Config, links []*message.Link) []message.Encodable {
	messages := make([]message.Encodable, 0, len(links)+2)
	messages = append(messages, message.NewLinkInfo(cfg), &message.GroupInfo{})
	for _, l := range links {
		messages = append(messages, l)
	}
	return messages
}

// NewDatasetHeader returns the messages of a contiguous dataset header.
func NewDatasetHeader(ds *message.Dataspace, dt *message.Datatype, layout *message.DataLayout) []message.Encodable {
	return []message.Encodable{ds, dt, layout}
}
