package binary

// Encoder appends metadata fields to an in-memory buffer. Object headers
// and the superblock are built in full before they are checksummed and
// written, so encoding never fails.
type Encoder struct {
	buf []byte
	cfg Config
}

// NewEncoder creates an empty encoder using the given field sizes.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Config returns the field sizes used by the encoder.
func (e *Encoder) Config() Config { return e.cfg }

// Bytes returns the encoded data.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes encoded so far.
func (e *Encoder) Len() int { return len(e.buf) }

// Write appends raw bytes.
func (e *Encoder) Write(p []byte) {
	e.buf = append(e.buf, p...)
}

// Zeros appends n zero bytes.
func (e *Encoder) Zeros(n int) {
	for i := 0; i < n; i++ {
		e.buf = append(e.buf, 0)
	}
}

// Uint8 appends an unsigned 8-bit integer.
func (e *Encoder) Uint8(v uint8) { e.buf = append(e.buf, v) }

// Uint16 appends an unsigned 16-bit integer.
func (e *Encoder) Uint16(v uint16) { e.UintN(uint64(v), 2) }

// Uint32 appends an unsigned 32-bit integer.
func (e *Encoder) Uint32(v uint32) { e.UintN(uint64(v), 4) }

// Uint64 appends an unsigned 64-bit integer.
func (e *Encoder) Uint64(v uint64) { e.UintN(v, 8) }

// UintN appends an unsigned integer of n bytes.
func (e *Encoder) UintN(v uint64, n int) {
	start := len(e.buf)
	e.Zeros(n)
	putUint(e.buf[start:], v, n)
}

// Offset appends a file address using the configured offset size.
func (e *Encoder) Offset(v uint64) { e.UintN(v, e.cfg.OffsetSize) }

// Length appends a length using the configured length size.
func (e *Encoder) Length(v uint64) { e.UintN(v, e.cfg.LengthSize) }

// UndefinedOffset appends the undefined address sentinel.
func (e *Encoder) UndefinedOffset() { e.Offset(e.cfg.UndefinedAddress()) }

// PutUint32At overwrites four bytes at pos, which must already be encoded.
func (e *Encoder) PutUint32At(pos int, v uint32) {
	Order.PutUint32(e.buf[pos:], v)
}

// AppendChecksum appends the lookup3 checksum of everything encoded so far.
func (e *Encoder) AppendChecksum() {
	e.Uint32(Lookup3Checksum(e.buf))
}

// Buffer is an in-memory io.WriterAt that grows as needed.
type Buffer struct {
	buf []byte
}

// WriteAt implements io.WriterAt.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > cap(b.buf) {
		grown := make([]byte, end, max(end, 2*cap(b.buf)))
		copy(grown, b.buf)
		b.buf = grown
	} else if end > len(b.buf) {
		b.buf = b.buf[:end]
	}
	copy(b.buf[off:], p)
	return len(p), nil
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte { return b.buf }
