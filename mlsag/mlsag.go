// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mlsag implements Multilayered Linkable Spontaneous Anonymous
// Group signatures (spec.md §4.6): a rectangular ring of public-key
// rows, one of which the signer controls, signed so that any verifier
// can confirm "some row signed this" without learning which, while a
// per-column key image lets the network detect reuse of the same
// signing key across multiple signatures.
package mlsag

import (
	"io"

	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
)

// Error kinds for the mlsag subsystem.
const (
	KindRingTooSmall coreerr.Kind = iota + 1
	KindIndexOutOfRange
	KindInconsistentSigner
)

// Ring is a rows-by-cols matrix of compressed public keys: ring[r][i]
// is the i-th key layer of the r-th ring member.
type Ring [][][32]byte

func (r Ring) rows() int { return len(r) }
func (r Ring) cols() int {
	if len(r) == 0 {
		return 0
	}
	return len(r[0])
}

// Signature is the output of Sign: the filled-in s-matrix, the
// starting challenge c0, and one key image per column.
type Signature struct {
	S         [][]*curve.Scalar
	C0        *curve.Scalar
	KeyImages [][32]byte
}

func keyHashPoint(compressed [32]byte) *curve.Point {
	digest := keccak.Sum256(compressed[:])
	return curve.HashToPoint(digest)
}

func challenge(message [32]byte, l, r []*curve.Point) *curve.Scalar {
	buf := make([]byte, 0, 32+len(l)*64)
	buf = append(buf, message[:]...)
	for i := range l {
		lc := curve.PointCompress(l[i])
		rc := curve.PointCompress(r[i])
		buf = append(buf, lc[:]...)
		buf = append(buf, rc[:]...)
	}
	digest := keccak.Sum256(buf)
	return curve.HashToScalar(digest)
}

// Sign produces an MLSAG signature over message for ring, where index
// is the signer's row and signerKeys is that row's secret-key vector
// (length cols).
func Sign(rng io.Reader, message [32]byte, ring Ring, index int, signerKeys []*curve.Scalar) (*Signature, error) {
	rows, cols := ring.rows(), ring.cols()
	if rows < 2 {
		return nil, coreerr.New(coreerr.MLSAG, KindRingTooSmall, "ring must contain more than 1 member")
	}
	if index < 0 || index >= rows {
		return nil, coreerr.New(coreerr.MLSAG, KindIndexOutOfRange, "signer index outside ring")
	}
	if len(signerKeys) != cols {
		return nil, coreerr.New(coreerr.MLSAG, KindInconsistentSigner, "signer key vector inconsistent with ring width")
	}

	hp := make([]*curve.Point, cols)
	keyImages := make([]*curve.Point, cols)
	for i := 0; i < cols; i++ {
		hp[i] = keyHashPoint(ring[index][i])
		keyImages[i] = new(curve.Point).ScalarMult(signerKeys[i], hp[i])
	}

	alpha := make([]*curve.Scalar, cols)
	s := make([][]*curve.Scalar, rows)
	for r := 0; r < rows; r++ {
		s[r] = make([]*curve.Scalar, cols)
		for i := 0; i < cols; i++ {
			var err error
			s[r][i], err = curve.ScalarRandom(rng)
			if err != nil {
				return nil, err
			}
		}
	}
	for i := 0; i < cols; i++ {
		var err error
		alpha[i], err = curve.ScalarRandom(rng)
		if err != nil {
			return nil, err
		}
	}

	l := make([][]*curve.Point, rows)
	rr := make([][]*curve.Point, rows)
	for r := 0; r < rows; r++ {
		l[r] = make([]*curve.Point, cols)
		rr[r] = make([]*curve.Point, cols)
	}

	for i := 0; i < cols; i++ {
		l[index][i] = new(curve.Point).ScalarBaseMult(alpha[i])
		rr[index][i] = new(curve.Point).ScalarMult(alpha[i], hp[i])
	}

	c := make([]*curve.Scalar, rows)
	c[(index+1)%rows] = challenge(message, l[index], rr[index])

	for step := 1; step < rows; step++ {
		r := (index + step) % rows
		for i := 0; i < cols; i++ {
			ringPoint, err := curve.PointDecompress(ring[r][i])
			if err != nil {
				return nil, coreerr.New(coreerr.MLSAG, KindInconsistentSigner, "invalid ring public key encoding")
			}
			sg := new(curve.Point).ScalarBaseMult(s[r][i])
			cp := new(curve.Point).ScalarMult(c[r], ringPoint)
			l[r][i] = new(curve.Point).Add(sg, cp)

			sh := new(curve.Point).ScalarMult(s[r][i], keyHashPoint(ring[r][i]))
			ci := new(curve.Point).ScalarMult(c[r], keyImages[i])
			rr[r][i] = new(curve.Point).Add(sh, ci)
		}
		next := (r + 1) % rows
		c[next] = challenge(message, l[r], rr[r])
	}

	for i := 0; i < cols; i++ {
		cx := new(curve.Scalar).Multiply(c[index], signerKeys[i])
		s[index][i] = new(curve.Scalar).Subtract(alpha[i], cx)
	}

	compressedImages := make([][32]byte, cols)
	for i := 0; i < cols; i++ {
		compressedImages[i] = curve.PointCompress(keyImages[i])
	}

	return &Signature{S: s, C0: c[0], KeyImages: compressedImages}, nil
}

// Verify recomputes the L/R/c chain and accepts iff it closes back to
// the claimed starting challenge.
func Verify(message [32]byte, ring Ring, sig *Signature) (bool, error) {
	rows, cols := ring.rows(), ring.cols()
	if rows < 2 {
		return false, coreerr.New(coreerr.MLSAG, KindRingTooSmall, "ring must contain more than 1 member")
	}

	c := sig.C0
	for r := 0; r < rows; r++ {
		l := make([]*curve.Point, cols)
		rr := make([]*curve.Point, cols)
		for i := 0; i < cols; i++ {
			ringPoint, err := curve.PointDecompress(ring[r][i])
			if err != nil {
				return false, nil
			}
			keyImage, err := curve.PointDecompress(sig.KeyImages[i])
			if err != nil {
				return false, nil
			}

			sg := new(curve.Point).ScalarBaseMult(sig.S[r][i])
			cp := new(curve.Point).ScalarMult(c, ringPoint)
			l[i] = new(curve.Point).Add(sg, cp)

			sh := new(curve.Point).ScalarMult(sig.S[r][i], keyHashPoint(ring[r][i]))
			ci := new(curve.Point).ScalarMult(c, keyImage)
			rr[i] = new(curve.Point).Add(sh, ci)
		}
		c = challenge(message, l, rr)
	}

	return c.Equal(sig.C0) == 1, nil
}
