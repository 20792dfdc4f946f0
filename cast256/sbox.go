// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cast256

import (
	"encoding/binary"
	"sync"

	"github.com/umbranet/core/keccak"
	"github.com/umbranet/core/varint"
)

// The four round-function substitution tables. RFC 2612 fixes these
// to specific published constants; this package instead derives them
// deterministically from a domain-separated hash expansion (the same
// lazily-initialised-table idiom spec.md §9 calls for elsewhere: H,
// Gi, Hi, INV_EIGHT). See the package doc comment in cast256.go for
// why the literal RFC tables are not reproduced.
var (
	sboxOnce sync.Once
	sbox     [4][256]uint32
)

func sboxTag(table int) string {
	return [4]string{"cast256-s1", "cast256-s2", "cast256-s3", "cast256-s4"}[table]
}

func initSBoxes() {
	for table := 0; table < 4; table++ {
		tag := []byte(sboxTag(table))
		for i := 0; i < 256; i++ {
			buf := append(append([]byte{}, tag...), varint.Serialize(uint64(i))...)
			digest := keccak.Sum256(buf)
			sbox[table][i] = binary.LittleEndian.Uint32(digest[:4])
		}
	}
}

func sBoxes() *[4][256]uint32 {
	sboxOnce.Do(initSBoxes)
	return &sbox
}
