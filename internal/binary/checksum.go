package binary

import "math/bits"

// Lookup3Checksum computes the Jenkins lookup3 hash (hashlittle, initval 0)
// that HDF5 uses for superblock v2/v3 and object header v2 checksums.
func Lookup3Checksum(data []byte) uint32 {
	init := 0xdeadbeef + uint32(len(data))
	a, b, c := init, init, init
	k := data

	// Strictly more than 12: the final 1-12 bytes go through the tail path.
	for len(k) > 12 {
		a += Order.Uint32(k[0:])
		b += Order.Uint32(k[4:])
		c += Order.Uint32(k[8:])
		a, b, c = lookup3Mix(a, b, c)
		k = k[12:]
	}
	if len(k) == 0 {
		return c
	}

	var tail [12]byte
	copy(tail[:], k)
	a += Order.Uint32(tail[0:])
	b += Order.Uint32(tail[4:])
	c += Order.Uint32(tail[8:])
	_, _, c = lookup3Final(a, b, c)
	return c
}

// VerifyLookup3 verifies data against an expected lookup3 checksum.
func VerifyLookup3(data []byte, expected uint32) bool {
	return Lookup3Checksum(data) == expected
}

func lookup3Mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= c
	a ^= bits.RotateLeft32(c, 4)
	c += b
	b -= a
	b ^= bits.RotateLeft32(a, 6)
	a += c
	c -= b
	c ^= bits.RotateLeft32(b, 8)
	b += a
	a -= c
	a ^= bits.RotateLeft32(c, 16)
	c += b
	b -= a
	b ^= bits.RotateLeft32(a, 19)
	a += c
	c -= b
	c ^= bits.RotateLeft32(b, 4)
	b += a
	return a, b, c
}

func lookup3Final(a, b, c uint32) (uint32, uint32, uint32) {
	c ^= b
	c -= bits.RotateLeft32(b, 14)
	a ^= c
	a -= bits.RotateLeft32(c, 11)
	b ^= a
	b -= bits.RotateLeft32(a, 25)
	c ^= b
	c -= bits.RotateLeft32(b, 16)
	a ^= c
	a -= bits.RotateLeft32(c, 4)
	b ^= a
	b -= bits.RotateLeft32(a, 14)
	c ^= b
	c -= bits.RotateLeft32(b, 24)
	return a, b, c
}
