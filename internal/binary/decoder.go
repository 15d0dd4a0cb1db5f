package binary

import (
	"fmt"
	"io"
)

// Decoder reads metadata fields from a byte slice. The first failure is
// sticky: later reads return zero values and Err reports the failure.
type Decoder struct {
	buf []byte
	pos int
	cfg Config
	err error
}

// NewDecoder creates a decoder over buf.
func NewDecoder(buf []byte, cfg Config) *Decoder {
	return &Decoder{buf: buf, cfg: cfg}
}

// Config returns the field sizes used by the decoder.
func (d *Decoder) Config() Config { return d.cfg }

// Err returns the first error encountered.
func (d *Decoder) Err() error { return d.err }

// Pos returns the current position.
func (d *Decoder) Pos() int { return d.pos }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	if d.pos >= len(d.buf) {
		return 0
	}
	return len(d.buf) - d.pos
}

// Rest returns the unread bytes without consuming them.
func (d *Decoder) Rest() []byte {
	if d.pos >= len(d.buf) {
		return nil
	}
	return d.buf[d.pos:]
}

// Seek moves to an absolute position.
func (d *Decoder) Seek(pos int) {
	if d.err == nil && (pos < 0 || pos > len(d.buf)) {
		d.err = fmt.Errorf("%w: seek to %d of %d", ErrShortBuffer, pos, len(d.buf))
		return
	}
	d.pos = pos
}

// Skip advances the position by n bytes.
func (d *Decoder) Skip(n int) { d.Bytes(n) }

// Bytes consumes n bytes. The returned slice aliases the input.
func (d *Decoder) Bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.pos+n > len(d.buf) {
		d.err = fmt.Errorf("%w: need %d bytes at %d, have %d", ErrShortBuffer, n, d.pos, d.Remaining())
		return nil
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b
}

// Uint8 reads an unsigned 8-bit integer.
func (d *Decoder) Uint8() uint8 { return uint8(d.UintN(1)) }

// Uint16 reads an unsigned 16-bit integer.
func (d *Decoder) Uint16() uint16 { return uint16(d.UintN(2)) }

// Uint32 reads an unsigned 32-bit integer.
func (d *Decoder) Uint32() uint32 { return uint32(d.UintN(4)) }

// Uint64 reads an unsigned 64-bit integer.
func (d *Decoder) Uint64() uint64 { return d.UintN(8) }

// UintN reads an unsigned integer of n bytes.
func (d *Decoder) UintN(n int) uint64 {
	b := d.Bytes(n)
	if b == nil {
		return 0
	}
	return getUint(b, n)
}

// Offset reads a file address using the configured offset size.
func (d *Decoder) Offset() uint64 { return d.UintN(d.cfg.OffsetSize) }

// Length reads a length using the configured length size.
func (d *Decoder) Length() uint64 { return d.UintN(d.cfg.LengthSize) }

// String reads an n-byte field and trims it at the first NUL.
func (d *Decoder) String(n int) string {
	b := d.Bytes(n)
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// ReadAt reads exactly n bytes at off from r.
func ReadAt(r io.ReaderAt, off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	got, err := r.ReadAt(buf, off)
	if got == n {
		return buf, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("reading %d bytes at %d: %w", n, off, err)
}
