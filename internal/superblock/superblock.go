package superblock

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/robert-malhotra/go-h5vtk/internal/binary"
)

// Signature is the HDF5 format signature.
var Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

// Possible superblock locations, searched in order.
var searchOffsets = []int64{0, 512, 1024, 2048}

var (
	ErrNotHDF5            = errors.New("not an HDF5 file: signature not found")
	ErrUnsupportedVersion = errors.New("unsupported superblock version")
	ErrInvalidSuperblock  = errors.New("invalid superblock")
)

// Superblock holds the file-level metadata of an HDF5 file.
type Superblock struct {
	Version          uint8
	OffsetSize       uint8
	LengthSize       uint8
	Flags            uint8 // file consistency flags
	BaseAddress      uint64
	ExtensionAddress uint64
	EOFAddress       uint64
	RootGroupAddress uint64

	// FileOffset is where the signature was found.
	FileOffset int64
}

// New returns a version 3 superblock with 8-byte offsets and lengths.
// The root group and EOF addresses are filled in when the file is laid out.
func New() *Superblock {
	cfg := binary.DefaultConfig()
	return &Superblock{
		Version:          3,
		OffsetSize:       uint8(cfg.OffsetSize),
		LengthSize:       uint8(cfg.LengthSize),
		ExtensionAddress: cfg.UndefinedAddress(),
	}
}

// Config returns the field sizes declared by the superblock.
func (sb *Superblock) Config() binary.Config {
	return binary.Config{OffsetSize: int(sb.OffsetSize), LengthSize: int(sb.LengthSize)}
}

// Size returns the encoded size of the superblock in bytes.
func (sb *Superblock) Size() int {
	return 12 + 4*int(sb.OffsetSize) + 4
}

// Read locates and parses the superblock of r.
func Read(r io.ReaderAt) (*Superblock, error) {
	for _, off := range searchOffsets {
		head, err := binary.ReadAt(r, off, 9)
		if err != nil {
			// Past the end of a short file.
			continue
		}
		if !bytes.Equal(head[:8], Signature) {
			continue
		}
		if v := head[8]; v != 2 && v != 3 {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
		}

		sizes, err := binary.ReadAt(r, off+9, 2)
		if err != nil {
			return nil, err
		}
		cfg := binary.Config{OffsetSize: int(sizes[0]), LengthSize: int(sizes[1])}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
		}

		n := 12 + 4*cfg.OffsetSize + 4
		buf, err := binary.ReadAt(r, off, n)
		if err != nil {
			return nil, err
		}
		sb, err := Decode(buf)
		if err != nil {
			return nil, err
		}
		sb.FileOffset = off
		return sb, nil
	}
	return nil, ErrNotHDF5
}

// Decode parses an encoded version 2 or 3 superblock, signature included.
func Decode(buf []byte) (*Superblock, error) {
	if len(buf) < 12 || !bytes.Equal(buf[:8], Signature) {
		return nil, ErrNotHDF5
	}
	sb := &Superblock{
		Version:    buf[8],
		OffsetSize: buf[9],
		LengthSize: buf[10],
		Flags:      buf[11],
	}
	if sb.Version != 2 && sb.Version != 3 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, sb.Version)
	}
	cfg := sb.Config()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}

	d := binary.NewDecoder(buf, cfg)
	d.Skip(12)
	sb.BaseAddress = d.Offset()
	sb.ExtensionAddress = d.Offset()
	sb.EOFAddress = d.Offset()
	sb.RootGroupAddress = d.Offset()
	body := d.Pos()
	stored := d.Uint32()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}
	if !binary.VerifyLookup3(buf[:body], stored) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidSuperblock)
	}
	return sb, nil
}

// Encode returns the checksummed on-disk form of the superblock.
func (sb *Superblock) Encode() []byte {
	version := sb.Version
	if version < 2 {
		version = 3
	}
	e := binary.NewEncoder(sb.Config())
	e.Write(Signature)
	e.Uint8(version)
	e.Uint8(sb.OffsetSize)
	e.Uint8(sb.LengthSize)
	e.Uint8(sb.Flags)
	e.Offset(sb.BaseAddress)
	e.Offset(sb.ExtensionAddress)
	e.Offset(sb.EOFAddress)
	e.Offset(sb.RootGroupAddress)
	e.AppendChecksum()
	return e.Bytes()
}
