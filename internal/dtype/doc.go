// Package dtype converts between Go values and HDF5 element data.
//
// HDF5 datatypes map to Go types as follows:
//
//	HDF5 Class        | Go Type
//	------------------|------------------
//	Fixed-point (int) | int8/16/32/64 or uint8/16/32/64 by size and signedness
//	Floating-point    | float32 (4 bytes) or float64 (8 bytes)
//	String (fixed)    | string
//
// [Encode] turns a Go scalar or slice into a datatype and raw bytes. Go
// strings are stored as fixed-length, null-padded UTF-8 sized to the
// longest element. [Decode] does the reverse into the natural Go slice
// type, and [DecodeInto] fills a caller-supplied slice, widening integers
// and floats when the destination is []int64 or []float64.
//
// Variable-length, compound and other classes are reported as
// [ErrUnsupported].
package dtype
