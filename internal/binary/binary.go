// Package binary encodes and decodes the little-endian, variable-width
// integer fields used by HDF5 file metadata.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when an invalid offset or length size is specified.
var ErrInvalidSize = errors.New("invalid offset/length size: must be 2, 4, or 8")

// ErrShortBuffer is returned when a decode runs past the end of its input.
var ErrShortBuffer = errors.New("metadata truncated")

// Order is the byte order of every HDF5 metadata structure.
var Order = binary.LittleEndian

// Config holds the sizes of file addresses and lengths, as declared by the superblock.
type Config struct {
	OffsetSize int // 2, 4, or 8 bytes
	LengthSize int // 2, 4, or 8 bytes
}

// DefaultConfig returns 8-byte offsets and lengths.
func DefaultConfig() Config {
	return Config{OffsetSize: 8, LengthSize: 8}
}

// Validate checks that both sizes are supported.
func (c Config) Validate() error {
	for _, s := range []int{c.OffsetSize, c.LengthSize} {
		if s != 2 && s != 4 && s != 8 {
			return fmt.Errorf("%w: got %d", ErrInvalidSize, s)
		}
	}
	return nil
}

// UndefinedAddress returns the all-ones address sentinel for the offset size.
func (c Config) UndefinedAddress() uint64 {
	if c.OffsetSize >= 8 {
		return ^uint64(0)
	}
	return uint64(1)<<(8*c.OffsetSize) - 1
}

// IsUndefined reports whether addr is the undefined address sentinel.
func (c Config) IsUndefined(addr uint64) bool {
	return addr == c.UndefinedAddress()
}

func putUint(buf []byte, v uint64, n int) {
	switch n {
	case 1:
		buf[0] = uint8(v)
	case 2:
		Order.PutUint16(buf, uint16(v))
	case 4:
		Order.PutUint32(buf, uint32(v))
	case 8:
		Order.PutUint64(buf, v)
	default:
		for i := 0; i < n; i++ {
			buf[i] = byte(v >> (8 * i))
		}
	}
}

func getUint(buf []byte, n int) uint64 {
	switch n {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(Order.Uint16(buf))
	case 4:
		return uint64(Order.Uint32(buf))
	case 8:
		return Order.Uint64(buf)
	default:
		var v uint64
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(buf[i])
		}
		return v
	}
}
