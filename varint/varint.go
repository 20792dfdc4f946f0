// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package varint implements the unsigned LEB128 encoding used
// throughout the core for length-prefixed blobs and hash pre-images:
// seven data bits per byte, little-endian, with the high bit set on
// every byte but the last.
package varint

import "errors"

// ErrTruncated is returned when the byte slice ends before a varint's
// terminating byte is found.
var ErrTruncated = errors.New("varint: truncated input")

// ErrOverflow is returned when decoding a varint that does not fit in
// a uint64.
var ErrOverflow = errors.New("varint: value overflows uint64")

// Encode appends the LEB128 encoding of v to dst and returns the result.
func Encode(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Serialize returns the LEB128 encoding of v as a standalone slice.
func Serialize(v uint64) []byte {
	return Encode(nil, v)
}

// Decode reads a single LEB128-encoded value from the front of data,
// returning the value and the number of bytes consumed.
func Decode(data []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range data {
		if shift >= 64 {
			return 0, 0, ErrOverflow
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrTruncated
}
