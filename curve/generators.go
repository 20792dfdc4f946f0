// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import (
	"sync"

	"github.com/umbranet/core/keccak"
	"github.com/umbranet/core/varint"
)

// MaxGeneratorLen is N_BITS * M_MAX (64 * 16) from spec.md §4.7 — the
// longest Gi/Hi vector any Bulletproof (aggregating up to 16 values)
// can need.
const MaxGeneratorLen = 64 * 16

var (
	generatorsOnce sync.Once
	giVector       []*Point
	hiVector       []*Point
)

// generatorSeed returns hash_to_point(cn_fast_hash(H || "bulletproof" || varint(index))).
func generatorSeed(index uint64) *Point {
	buf := append([]byte{}, PointCompress(H())[:]...)
	buf = append(buf, "bulletproof"...)
	buf = append(buf, varint.Serialize(index)...)
	digest := keccak.Sum256(buf)
	return HashToPoint(digest)
}

// initGenerators lazily derives the Gi/Hi generator vectors used by
// every Bulletproof, caching them under a once-guard as immutable
// process-wide state (spec.md §5/§9).
func initGenerators() {
	generatorsOnce.Do(func() {
		giVector = make([]*Point, MaxGeneratorLen)
		hiVector = make([]*Point, MaxGeneratorLen)
		gi, hi := 0, 0
		for i := uint64(0); gi < MaxGeneratorLen || hi < MaxGeneratorLen; i++ {
			p := generatorSeed(i)
			if i%2 == 0 {
				if hi < MaxGeneratorLen {
					hiVector[hi] = p
					hi++
				}
			} else {
				if gi < MaxGeneratorLen {
					giVector[gi] = p
					gi++
				}
			}
		}
	})
}

// GeneratorVectors returns the cached (Gi, Hi) vectors, each of length
// MaxGeneratorLen.
func GeneratorVectors() (gi, hi []*Point) {
	initGenerators()
	return giVector, hiVector
}
