// Package superblock reads and writes HDF5 superblocks.
//
// The superblock is the entry point of every HDF5 file. It is identified
// by the 8-byte signature 0x89 H D F \r \n 0x1a \n, which [Read] searches
// for at offsets 0, 512, 1024 and 2048.
//
// Only the version 2 and 3 layouts are handled. Both reference the root
// group by object header address and end with a lookup3 checksum:
//
//	Offset  Size  Field
//	0       8     Signature
//	8       1     Version (2 or 3)
//	9       1     Size of offsets (O)
//	10      1     Size of lengths
//	11      1     File consistency flags
//	12      O     Base address
//	12+O    O     Superblock extension address
//	12+2O   O     End-of-file address
//	12+3O   O     Root group object header address
//	12+4O   4     Checksum
//
// Version 0 and 1 superblocks, which locate the root group through a
// symbol table entry, are rejected with [ErrUnsupportedVersion].
package superblock
