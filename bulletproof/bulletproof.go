// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bulletproof implements aggregated 64-bit Bulletproof range
// proofs (spec.md §4.7): proving up to M_MAX values simultaneously
// satisfy 0 <= v < 2^64 without revealing them, using a log-round
// inner-product argument and Bayer-Groth-style batch verification.
package bulletproof

import (
	"encoding/binary"
	"io"

	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
)

// Error kinds for the bulletproof subsystem.
const (
	KindTooManyValues coreerr.Kind = iota + 1
	KindScalarsNotReduced
	KindEmptyProof
	KindNoCommitments
	KindInconsistentProof
	KindTooLargeProof
	KindInvalidProof
)

// NBits is the number of bits per proved value.
const NBits = 64

// MMax is the largest number of values a single proof may aggregate.
const MMax = 16

// Proof is a Bulletproof range proof.
type Proof struct {
	V          []*curve.Point
	A, S       *curve.Point
	T1, T2     *curve.Point
	TauX, Mu   *curve.Scalar
	L, R       []*curve.Point
	ADash      *curve.Scalar
	BDash      *curve.Scalar
	T          *curve.Scalar
}

func zero() *curve.Scalar { return scalarFromUint64(0) }
func one() *curve.Scalar  { return scalarFromUint64(1) }

func scalarFromUint64(v uint64) *curve.Scalar {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], v)
	return curve.ScalarFromBytesModOrder(b)
}

func powerVector(a *curve.Scalar, n int) []*curve.Scalar {
	out := make([]*curve.Scalar, n)
	if n == 0 {
		return out
	}
	out[0] = one()
	for i := 1; i < n; i++ {
		out[i] = new(curve.Scalar).Multiply(out[i-1], a)
	}
	return out
}

func powerSum(a *curve.Scalar, n int) *curve.Scalar {
	if n == 0 {
		return zero()
	}
	acc := one()
	prev := a
	for i := 1; i < n; i++ {
		if i > 1 {
			prev = new(curve.Scalar).Multiply(prev, a)
		}
		acc = new(curve.Scalar).Add(acc, prev)
	}
	return acc
}

func innerProduct(a, b []*curve.Scalar) *curve.Scalar {
	sum := zero()
	for i := range a {
		term := new(curve.Scalar).Multiply(a[i], b[i])
		sum = new(curve.Scalar).Add(sum, term)
	}
	return sum
}

func multiScalarMult(scalars []*curve.Scalar, points []*curve.Point) *curve.Point {
	result := curve.Identity()
	for i := range scalars {
		term := new(curve.Point).ScalarMult(scalars[i], points[i])
		result = new(curve.Point).Add(result, term)
	}
	return result
}

// transcript replicates the reference "CNFastHash fed with the
// running value, reset and re-seeded on every challenge" construction
// (spec.md §9: "transcript hashing threaded through the
// prover/verifier ... small stateful object").
type transcript struct {
	buf []byte
}

func newTranscript(value *curve.Scalar) *transcript {
	return &transcript{buf: append([]byte{}, value.Bytes()...)}
}

func (t *transcript) extendPoints(pts ...*curve.Point) {
	for _, p := range pts {
		c := curve.PointCompress(p)
		t.buf = append(t.buf, c[:]...)
	}
}

func (t *transcript) extendScalars(ss ...*curve.Scalar) {
	for _, s := range ss {
		t.buf = append(t.buf, s.Bytes()...)
	}
}

func (t *transcript) resetState(value *curve.Scalar) {
	t.buf = append([]byte{}, value.Bytes()...)
}

func (t *transcript) challenge() *curve.Scalar {
	digest := keccak.Sum256(t.buf)
	c := curve.HashToScalar(digest)
	t.buf = append([]byte{}, c.Bytes()...)
	return c
}

func nextPowerOfTwo(n, max int) (m, logM int) {
	m = 1
	for m < n && m <= max {
		logM++
		m = 1 << uint(logM)
	}
	return
}

// ProveMultiple proves every value in values lies in [0, 2^64), returning
// the proof and the Pedersen masks used for its value commitments.
func ProveMultiple(rng io.Reader, values []uint64) (*Proof, []*curve.Scalar, error) {
	if len(values) > MMax {
		return nil, nil, coreerr.New(coreerr.Bulletproof, KindTooManyValues, "too many values to prove")
	}

	M, _ := nextPowerOfTwo(len(values), MMax)
	MN := NBits * M

	masks := make([]*curve.Scalar, M)
	valueScalars := make([]*curve.Scalar, M)
	for i := range masks {
		if i < len(values) {
			valueScalars[i] = scalarFromUint64(values[i])
		} else {
			valueScalars[i] = zero()
		}
		m, err := curve.ScalarRandom(rng)
		if err != nil {
			return nil, nil, err
		}
		masks[i] = m
	}

	gi, hi := curve.GeneratorVectors()

	V := make([]*curve.Point, M)
	for i := range V {
		commitment := new(curve.Point).ScalarBaseMult(masks[i])
		vH := new(curve.Point).ScalarMult(valueScalars[i], curve.H())
		commitment = new(curve.Point).Add(commitment, vH)
		V[i] = curve.MulByInvEight(commitment)
	}

	aL := make([]*curve.Scalar, MN)
	for i, v := range valueScalars {
		vb := v.Bytes()
		for bit := 0; bit < NBits; bit++ {
			byteIdx, bitIdx := bit/8, uint(bit%8)
			if vb[byteIdx]&(1<<bitIdx) != 0 {
				aL[i*NBits+bit] = one()
			} else {
				aL[i*NBits+bit] = zero()
			}
		}
	}
	aR := make([]*curve.Scalar, MN)
	for i := range aR {
		aR[i] = new(curve.Scalar).Subtract(aL[i], one())
	}

	for {
		proof, masksOut, retry, err := proveAttempt(rng, V, aL, aR, masks, M, MN, gi, hi)
		if err != nil {
			return nil, nil, err
		}
		if retry {
			continue
		}
		return proof, masksOut, nil
	}
}

func proveAttempt(rng io.Reader, V []*curve.Point, aL, aR, masks []*curve.Scalar, M, MN int, gi, hi []*curve.Point) (*Proof, []*curve.Scalar, bool, error) {
	buf := make([]byte, 0, 32*len(V))
	for _, v := range V {
		c := curve.PointCompress(v)
		buf = append(buf, c[:]...)
	}
	tr := newTranscript(curve.HashToScalar(keccak.Sum256(buf)))

	alpha, err := curve.ScalarRandom(rng)
	if err != nil {
		return nil, nil, false, err
	}
	vecExp := multiScalarMult(append(append([]*curve.Scalar{}, aL...), aR...), append(append([]*curve.Point{}, gi[:MN]...), hi[:MN]...))
	A := curve.MulByInvEight(new(curve.Point).Add(vecExp, new(curve.Point).ScalarBaseMult(alpha)))

	sL := make([]*curve.Scalar, MN)
	sR := make([]*curve.Scalar, MN)
	for i := 0; i < MN; i++ {
		if sL[i], err = curve.ScalarRandom(rng); err != nil {
			return nil, nil, false, err
		}
		if sR[i], err = curve.ScalarRandom(rng); err != nil {
			return nil, nil, false, err
		}
	}
	rho, err := curve.ScalarRandom(rng)
	if err != nil {
		return nil, nil, false, err
	}
	vecExp2 := multiScalarMult(append(append([]*curve.Scalar{}, sL...), sR...), append(append([]*curve.Point{}, gi[:MN]...), hi[:MN]...))
	S := curve.MulByInvEight(new(curve.Point).Add(vecExp2, new(curve.Point).ScalarBaseMult(rho)))

	tr.extendPoints(A, S)
	y := tr.challenge()
	if y.Equal(zero()) == 1 {
		return nil, nil, true, nil
	}
	z := curve.HashToScalar(keccak.Sum256(y.Bytes()))
	if z.Equal(zero()) == 1 {
		return nil, nil, true, nil
	}
	tr.resetState(z)

	l0 := make([]*curve.Scalar, MN)
	for i := range l0 {
		l0[i] = new(curve.Scalar).Subtract(aL[i], z)
	}
	l1 := sL

	zPow := powerVector(z, M+2)
	twoPow := powerVector(scalarFromUint64(2), NBits)

	zeroTwos := make([]*curve.Scalar, MN)
	for i := range zeroTwos {
		zeroTwos[i] = zero()
	}
	for i := 0; i < MN; i++ {
		j := i/NBits + 1
		term := new(curve.Scalar).Multiply(zPow[j+1], twoPow[i-(j-1)*NBits])
		zeroTwos[i] = new(curve.Scalar).Add(zeroTwos[i], term)
	}

	yPow := powerVector(y, MN)
	r0 := make([]*curve.Scalar, MN)
	r1 := make([]*curve.Scalar, MN)
	for i := 0; i < MN; i++ {
		ar := new(curve.Scalar).Add(aR[i], z)
		ar = new(curve.Scalar).Multiply(ar, yPow[i])
		r0[i] = new(curve.Scalar).Add(ar, zeroTwos[i])
		r1[i] = new(curve.Scalar).Multiply(sR[i], yPow[i])
	}

	t1 := new(curve.Scalar).Add(innerProduct(l0, r1), innerProduct(l1, r0))
	t2 := innerProduct(l1, r1)

	tau1, err := curve.ScalarRandom(rng)
	if err != nil {
		return nil, nil, false, err
	}
	tau2, err := curve.ScalarRandom(rng)
	if err != nil {
		return nil, nil, false, err
	}
	T1 := curve.MulByInvEight(new(curve.Point).Add(new(curve.Point).ScalarBaseMult(tau1), new(curve.Point).ScalarMult(t1, curve.H())))
	T2 := curve.MulByInvEight(new(curve.Point).Add(new(curve.Point).ScalarBaseMult(tau2), new(curve.Point).ScalarMult(t2, curve.H())))

	tr.extendScalars(z)
	tr.extendPoints(T1, T2)
	x := tr.challenge()
	if x.Equal(zero()) == 1 {
		return nil, nil, true, nil
	}

	tauX := new(curve.Scalar).Add(new(curve.Scalar).Multiply(tau1, x), new(curve.Scalar).Multiply(new(curve.Scalar).Multiply(tau2, x), x))
	for j, mask := range masks {
		term := new(curve.Scalar).Multiply(zPow[j+2], mask)
		tauX = new(curve.Scalar).Add(tauX, term)
	}
	mu := new(curve.Scalar).Add(alpha, new(curve.Scalar).Multiply(x, rho))

	l := make([]*curve.Scalar, MN)
	r := make([]*curve.Scalar, MN)
	for i := 0; i < MN; i++ {
		l[i] = new(curve.Scalar).Add(l0[i], new(curve.Scalar).Multiply(l1[i], x))
		r[i] = new(curve.Scalar).Add(r0[i], new(curve.Scalar).Multiply(r1[i], x))
	}
	t := innerProduct(l, r)

	tr.extendScalars(x, tauX, mu, t)
	xIP := tr.challenge()
	if xIP.Equal(zero()) == 1 {
		return nil, nil, true, nil
	}

	nPrime := MN
	yInv := new(curve.Scalar).Invert(y)
	yInvPow := powerVector(yInv, nPrime)

	aPrime := append([]*curve.Scalar{}, l...)
	bPrime := append([]*curve.Scalar{}, r...)
	gPrime := append([]*curve.Point{}, gi[:MN]...)
	hPrime := make([]*curve.Point, MN)
	for i := range hPrime {
		hPrime[i] = new(curve.Point).ScalarMult(yInvPow[i], hi[i])
	}

	var Lv, Rv []*curve.Point
	for nPrime > 1 {
		nPrime /= 2

		cL := innerProduct(aPrime[:nPrime], bPrime[nPrime:])
		cR := innerProduct(aPrime[nPrime:], bPrime[:nPrime])

		Li := multiScalarMult(append(append([]*curve.Scalar{}, aPrime[:nPrime]...), bPrime[nPrime:]...), append(append([]*curve.Point{}, gPrime[nPrime:]...), hPrime[:nPrime]...))
		Li = new(curve.Point).Add(Li, new(curve.Point).ScalarMult(new(curve.Scalar).Multiply(cL, xIP), curve.H()))
		Li = curve.MulByInvEight(Li)

		Ri := multiScalarMult(append(append([]*curve.Scalar{}, aPrime[nPrime:]...), bPrime[:nPrime]...), append(append([]*curve.Point{}, gPrime[:nPrime]...), hPrime[nPrime:]...))
		Ri = new(curve.Point).Add(Ri, new(curve.Point).ScalarMult(new(curve.Scalar).Multiply(cR, xIP), curve.H()))
		Ri = curve.MulByInvEight(Ri)

		Lv = append(Lv, Li)
		Rv = append(Rv, Ri)

		tr.extendPoints(Li, Ri)
		wi := tr.challenge()
		if wi.Equal(zero()) == 1 {
			return nil, nil, true, nil
		}
		wInv := new(curve.Scalar).Invert(wi)

		newG := make([]*curve.Point, nPrime)
		newH := make([]*curve.Point, nPrime)
		newA := make([]*curve.Scalar, nPrime)
		newB := make([]*curve.Scalar, nPrime)
		for i := 0; i < nPrime; i++ {
			g1 := new(curve.Point).ScalarMult(wInv, gPrime[i])
			g2 := new(curve.Point).ScalarMult(wi, gPrime[nPrime+i])
			newG[i] = new(curve.Point).Add(g1, g2)

			h1 := new(curve.Point).ScalarMult(wi, hPrime[i])
			h2 := new(curve.Point).ScalarMult(wInv, hPrime[nPrime+i])
			newH[i] = new(curve.Point).Add(h1, h2)

			a1 := new(curve.Scalar).Multiply(wi, aPrime[i])
			a2 := new(curve.Scalar).Multiply(wInv, aPrime[nPrime+i])
			newA[i] = new(curve.Scalar).Add(a1, a2)

			b1 := new(curve.Scalar).Multiply(wInv, bPrime[i])
			b2 := new(curve.Scalar).Multiply(wi, bPrime[nPrime+i])
			newB[i] = new(curve.Scalar).Add(b1, b2)
		}
		gPrime, hPrime, aPrime, bPrime = newG, newH, newA, newB
	}

	return &Proof{
		V: V, A: A, S: S, T1: T1, T2: T2,
		TauX: tauX, Mu: mu,
		L: Lv, R: Rv,
		ADash: aPrime[0], BDash: bPrime[0], T: t,
	}, masks, false, nil
}
