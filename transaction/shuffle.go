// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transaction

import (
	"encoding/binary"
	"io"
)

// shuffleOrder returns a Fisher-Yates permutation of [0,n) drawn from
// rng, so that destination order in a constructed transaction does not
// leak the order the caller supplied them in.
func shuffleOrder(rng io.Reader, n int) ([]int, error) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := randIntn(rng, i+1)
		if err != nil {
			return nil, err
		}
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

func randIntn(rng io.Reader, n int) (int, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint64(buf[:]) % uint64(n)), nil
}
