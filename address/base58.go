// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"errors"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/umbranet/core/keccak"
)

// ErrChecksum is returned by DecodeCheck when the trailing 4-byte
// Keccak checksum does not match the decoded payload.
var ErrChecksum = errors.New("address: base58 checksum mismatch")

// ErrInvalidLength is returned by DecodeCheck when the input's final
// block length does not correspond to any valid CryptoNote block size.
var ErrInvalidLength = errors.New("address: invalid base58 block length")

// CryptoNote addresses use a block-wise base58 encoding rather than a
// whole-buffer one: the payload is split into 8-byte blocks (a final
// short block allowed), each encoded independently and left-padded
// with '1' to a fixed width, so that decoding never needs to guess
// where one number ends and the next begins. mr-tron/base58 supplies
// the underlying alphabet/big-integer codec for each block; the
// block-chunking and padding table below is the CryptoNote-specific
// part layered on top of it.
const (
	fullBlockSize        = 8
	fullEncodedBlockSize = 11
)

// encodedBlockSizes[i] is the base58 character width of an i-byte
// block, for i in [0, fullBlockSize].
var encodedBlockSizes = [fullBlockSize + 1]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

func encodeBlock(block []byte) string {
	width := encodedBlockSizes[len(block)]
	enc := base58.Encode(block)
	if pad := width - len(enc); pad > 0 {
		enc = strings.Repeat("1", pad) + enc
	}
	return enc
}

func decodeBlock(enc string, rawSize int) ([]byte, error) {
	decoded, err := base58.Decode(enc)
	if err != nil {
		return nil, err
	}
	// Padding '1's decode as leading zero bytes; drop the surplus ones
	// before checking the block fits rawSize.
	for len(decoded) > rawSize && decoded[0] == 0 {
		decoded = decoded[1:]
	}
	if len(decoded) > rawSize {
		return nil, ErrInvalidLength
	}
	if len(decoded) < rawSize {
		padded := make([]byte, rawSize)
		copy(padded[rawSize-len(decoded):], decoded)
		decoded = padded
	}
	return decoded, nil
}

// Encode base58-encodes data using the CryptoNote block scheme (no
// checksum appended).
func Encode(data []byte) string {
	var sb strings.Builder
	for len(data) >= fullBlockSize {
		sb.WriteString(encodeBlock(data[:fullBlockSize]))
		data = data[fullBlockSize:]
	}
	if len(data) > 0 {
		sb.WriteString(encodeBlock(data))
	}
	return sb.String()
}

// Decode reverses Encode.
func Decode(s string) ([]byte, error) {
	var out []byte
	for len(s) >= fullEncodedBlockSize {
		block, err := decodeBlock(s[:fullEncodedBlockSize], fullBlockSize)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		s = s[fullEncodedBlockSize:]
	}
	if len(s) > 0 {
		rawSize := -1
		for raw, width := range encodedBlockSizes {
			if width == len(s) {
				rawSize = raw
				break
			}
		}
		if rawSize < 0 {
			return nil, ErrInvalidLength
		}
		block, err := decodeBlock(s, rawSize)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

// EncodeCheck appends a 4-byte Keccak-256 checksum of data and
// base58-encodes the result.
func EncodeCheck(data []byte) string {
	checksum := keccak.Sum256(data)
	payload := append(append([]byte{}, data...), checksum[:4]...)
	return Encode(payload)
}

// DecodeCheck reverses EncodeCheck, verifying the checksum.
func DecodeCheck(s string) ([]byte, error) {
	data, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, ErrInvalidLength
	}
	payload, checksum := data[:len(data)-4], data[len(data)-4:]
	expected := keccak.Sum256(payload)
	for i := range checksum {
		if checksum[i] != expected[i] {
			return nil, ErrChecksum
		}
	}
	return payload, nil
}
