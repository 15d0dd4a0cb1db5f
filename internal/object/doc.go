// Package object reads and writes version 2 HDF5 object headers.
//
// An object header starts with the "OHDR" signature, a version byte and a
// flags byte, followed by the size of the first chunk of messages and the
// messages themselves. Each chunk ends with a lookup3 checksum. Messages
// that do not fit in the first chunk live in "OCHK" continuation chunks,
// referenced by Continuation messages; [Read] follows them transparently.
//
// [Encode] always produces a single chunk. Headers shorter than the
// requested minimum are padded with a NIL message, which leaves room for
// tools that later add messages in place.
package object
