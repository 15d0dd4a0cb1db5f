// Package alloc assigns file addresses when an HDF5 file image is laid out.
//
// Objects are placed append-only from a base address, normally the end of
// the superblock. Each allocation is tagged as metadata (object headers) or
// raw data (dataset contents) so the writer can report how the file is
// split, and [Allocator.Validate] checks that no two blocks overlap.
//
//	a := alloc.New(48)
//	data := a.Alloc(alloc.RawData, 800, "/Points")
//	hdr := a.Alloc(alloc.Metadata, 131, "/Points")
package alloc
