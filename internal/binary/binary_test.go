package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestLookup3Checksum(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  uint32
	}{
		{"empty", []byte{}, 0xdeadbeef},
		{"four score", []byte("Four score and seven years ago"), 0x17770551},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lookup3Checksum(tt.input); got != tt.want {
				t.Errorf("Lookup3Checksum(%q) = 0x%08x, want 0x%08x", tt.input, got, tt.want)
			}
		})
	}
}

func TestLookup3ChecksumLengthVariations(t *testing.T) {
	seen := make(map[uint32]int)
	for length := 0; length <= 24; length++ {
		data := make([]byte, length)
		for i := range data {
			data[i] = byte(i)
		}
		seen[Lookup3Checksum(data)] = length
	}
	if len(seen) != 25 {
		t.Errorf("expected 25 unique checksums for lengths 0-24, got %d", len(seen))
	}
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	for _, cfg := range []Config{{2, 2}, {4, 4}, {8, 8}, {4, 8}} {
		e := NewEncoder(cfg)
		e.Uint8(0xAB)
		e.Uint16(0x1234)
		e.Uint32(0xDEADBEEF)
		e.Uint64(0x0102030405060708)
		e.Offset(0x0BAD)
		e.Length(0x0FED)
		e.UndefinedOffset()
		e.Write([]byte("name\x00\x00"))

		d := NewDecoder(e.Bytes(), cfg)
		if v := d.Uint8(); v != 0xAB {
			t.Errorf("Uint8 = %#x", v)
		}
		if v := d.Uint16(); v != 0x1234 {
			t.Errorf("Uint16 = %#x", v)
		}
		if v := d.Uint32(); v != 0xDEADBEEF {
			t.Errorf("Uint32 = %#x", v)
		}
		if v := d.Uint64(); v != 0x0102030405060708 {
			t.Errorf("Uint64 = %#x", v)
		}
		if v := d.Offset(); v != 0x0BAD {
			t.Errorf("Offset = %#x", v)
		}
		if v := d.Length(); v != 0x0FED {
			t.Errorf("Length = %#x", v)
		}
		if v := d.Offset(); !cfg.IsUndefined(v) {
			t.Errorf("expected undefined offset for size %d, got %#x", cfg.OffsetSize, v)
		}
		if s := d.String(6); s != "name" {
			t.Errorf("String = %q", s)
		}
		if d.Err() != nil {
			t.Fatalf("unexpected decode error: %v", d.Err())
		}
		if d.Remaining() != 0 {
			t.Errorf("expected input to be consumed, %d bytes left", d.Remaining())
		}
	}
}

func TestDecoderStickyError(t *testing.T) {
	d := NewDecoder([]byte{1, 2, 3}, DefaultConfig())
	_ = d.Uint16()
	if v := d.Uint32(); v != 0 {
		t.Errorf("expected zero value after short read, got %d", v)
	}
	if !errors.Is(d.Err(), ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", d.Err())
	}
	if v := d.Uint8(); v != 0 {
		t.Errorf("reads after an error must return zero, got %d", v)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
	if err := (Config{OffsetSize: 3, LengthSize: 8}).Validate(); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestBufferWriteAt(t *testing.T) {
	var b Buffer
	if _, err := b.WriteAt([]byte("world"), 6); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	if _, err := b.WriteAt([]byte("hello "), 0); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte("hello world")) {
		t.Errorf("got %q", b.Bytes())
	}
}

func TestAppendChecksum(t *testing.T) {
	e := NewEncoder(DefaultConfig())
	e.Write([]byte("OHDR"))
	e.AppendChecksum()
	data := e.Bytes()
	if !VerifyLookup3(data[:4], Order.Uint32(data[4:])) {
		t.Error("appended checksum does not verify")
	}
}
