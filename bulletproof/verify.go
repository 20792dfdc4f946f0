// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bulletproof

import (
	"io"

	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
)

// VerifyMultiple checks a batch of proofs at once (spec.md §8: "batch
// verification of [p1..pn] succeeds iff each p_i verifies alone").
// Each proof is weighted by an independently drawn random scalar so a
// forged proof cannot cancel against a valid one in the aggregate;
// passing a single proof is equivalent to verifying it alone.
func VerifyMultiple(rng io.Reader, proofs []*Proof) error {
	maxRounds := 0
	for _, p := range proofs {
		if len(p.L) == 0 {
			return coreerr.New(coreerr.Bulletproof, KindEmptyProof, "proof has no inner-product rounds")
		}
		if len(p.V) == 0 {
			return coreerr.New(coreerr.Bulletproof, KindNoCommitments, "proof has no value commitments")
		}
		if len(p.L) != len(p.R) {
			return coreerr.New(coreerr.Bulletproof, KindInconsistentProof, "L/R round count mismatch")
		}
		if len(p.L) > maxRounds {
			maxRounds = len(p.L)
		}
	}
	if maxRounds >= 32 {
		return coreerr.New(coreerr.Bulletproof, KindTooLargeProof, "proof has too many inner-product rounds")
	}

	maxMN := 1 << uint(maxRounds)
	gi, hi := curve.GeneratorVectors()

	Z0 := curve.Identity()
	z1 := zero()
	Z2 := curve.Identity()
	z3 := zero()
	z4 := make([]*curve.Scalar, maxMN)
	z5 := make([]*curve.Scalar, maxMN)
	for i := range z4 {
		z4[i] = zero()
		z5[i] = zero()
	}
	Y2 := curve.Identity()
	Y3 := curve.Identity()
	Y4 := curve.Identity()
	y0 := zero()
	y1 := zero()

	for _, p := range proofs {
		M, logM := nextPowerOfTwo(len(p.V), MMax)
		if len(p.L) != 6+logM {
			return coreerr.New(coreerr.Bulletproof, KindInconsistentProof, "round count inconsistent with aggregated value count")
		}
		MN := NBits * M

		weight, err := curve.ScalarRandom(rng)
		if err != nil {
			return err
		}

		buf := make([]byte, 0, 32*len(p.V))
		for _, v := range p.V {
			c := curve.PointCompress(v)
			buf = append(buf, c[:]...)
		}
		tr := newTranscript(curve.HashToScalar(keccak.Sum256(buf)))

		tr.extendPoints(p.A, p.S)
		y := tr.challenge()
		if y.Equal(zero()) == 1 {
			return coreerr.New(coreerr.Bulletproof, KindInconsistentProof, "challenge y is zero")
		}
		z := curve.HashToScalar(keccak.Sum256(y.Bytes()))
		if z.Equal(zero()) == 1 {
			return coreerr.New(coreerr.Bulletproof, KindInconsistentProof, "challenge z is zero")
		}
		tr.resetState(z)

		tr.extendScalars(z)
		tr.extendPoints(p.T1, p.T2)
		x := tr.challenge()
		if x.Equal(zero()) == 1 {
			return coreerr.New(coreerr.Bulletproof, KindInconsistentProof, "challenge x is zero")
		}

		tr.extendScalars(x, p.TauX, p.Mu, p.T)
		xIP := tr.challenge()
		if xIP.Equal(zero()) == 1 {
			return coreerr.New(coreerr.Bulletproof, KindInconsistentProof, "challenge x_ip is zero")
		}

		V := make([]*curve.Point, len(p.V))
		for i, v := range p.V {
			V[i] = curve.MulByCofactor(v)
		}
		L := make([]*curve.Point, len(p.L))
		for i, l := range p.L {
			L[i] = curve.MulByCofactor(l)
		}
		R := make([]*curve.Point, len(p.R))
		for i, r := range p.R {
			R[i] = curve.MulByCofactor(r)
		}
		T1 := curve.MulByCofactor(p.T1)
		T2 := curve.MulByCofactor(p.T2)
		A := curve.MulByCofactor(p.A)
		S := curve.MulByCofactor(p.S)

		y0 = new(curve.Scalar).Add(y0, new(curve.Scalar).Multiply(weight, p.TauX))

		zPow := powerVector(z, M+3)
		twoPow := powerVector(scalarFromUint64(2), NBits)
		oneTwoIP := innerProduct(onesVector(NBits), twoPow)

		ip1y := powerSum(y, MN)
		k := new(curve.Scalar).Subtract(zero(), new(curve.Scalar).Multiply(zPow[2], ip1y))
		for j := 1; j <= M; j++ {
			term := new(curve.Scalar).Multiply(zPow[j+2], oneTwoIP)
			k = new(curve.Scalar).Subtract(k, term)
		}

		tMinusExpected := new(curve.Scalar).Subtract(p.T, new(curve.Scalar).Add(k, new(curve.Scalar).Multiply(z, ip1y)))
		y1 = new(curve.Scalar).Add(y1, new(curve.Scalar).Multiply(weight, tMinusExpected))

		vTerm := multiScalarMult(zPow[2:2+len(V)], V)
		Y2 = new(curve.Point).Add(Y2, new(curve.Point).ScalarMult(weight, vTerm))

		Y3 = new(curve.Point).Add(Y3, new(curve.Point).ScalarMult(new(curve.Scalar).Multiply(weight, x), T1))
		Y4 = new(curve.Point).Add(Y4, new(curve.Point).ScalarMult(new(curve.Scalar).Multiply(weight, new(curve.Scalar).Multiply(x, x)), T2))

		AplusXS := new(curve.Point).Add(A, new(curve.Point).ScalarMult(x, S))
		Z0 = new(curve.Point).Add(Z0, new(curve.Point).ScalarMult(weight, AplusXS))

		rounds := 6 + logM
		w := make([]*curve.Scalar, rounds)
		for i := 0; i < rounds; i++ {
			tr.extendPoints(p.L[i], p.R[i])
			w[i] = tr.challenge()
			if w[i].Equal(zero()) == 1 {
				return coreerr.New(coreerr.Bulletproof, KindInconsistentProof, "inner-product challenge is zero")
			}
		}

		wInv := make([]*curve.Scalar, rounds)
		for i := range w {
			wInv[i] = new(curve.Scalar).Invert(w[i])
		}

		yInv := new(curve.Scalar).Invert(y)
		yPowI := one()
		yInvPowI := one()
		for i := 0; i < MN; i++ {
			g := p.ADash
			h := new(curve.Scalar).Multiply(p.BDash, yInvPowI)

			for j := rounds - 1; j >= 0; j-- {
				jj := rounds - j - 1
				if i&(1<<uint(j)) == 0 {
					g = new(curve.Scalar).Multiply(g, wInv[jj])
					h = new(curve.Scalar).Multiply(h, w[jj])
				} else {
					g = new(curve.Scalar).Multiply(g, w[jj])
					h = new(curve.Scalar).Multiply(h, wInv[jj])
				}
			}

			g = new(curve.Scalar).Add(g, z)

			tmp := new(curve.Scalar).Multiply(zPow[2+i/NBits], twoPow[i%NBits])
			tmp = new(curve.Scalar).Add(tmp, new(curve.Scalar).Multiply(z, yPowI))
			h = new(curve.Scalar).Subtract(h, new(curve.Scalar).Multiply(tmp, yInvPowI))

			z4[i] = new(curve.Scalar).Add(z4[i], new(curve.Scalar).Multiply(weight, g))
			z5[i] = new(curve.Scalar).Add(z5[i], new(curve.Scalar).Multiply(weight, h))

			if i != MN-1 {
				yInvPowI = new(curve.Scalar).Multiply(yInvPowI, yInv)
				yPowI = new(curve.Scalar).Multiply(yPowI, y)
			}
		}

		z1 = new(curve.Scalar).Add(z1, new(curve.Scalar).Multiply(weight, p.Mu))

		wSq := make([]*curve.Scalar, rounds)
		wInvSq := make([]*curve.Scalar, rounds)
		for i := range w {
			wSq[i] = new(curve.Scalar).Multiply(w[i], w[i])
			wInvSq[i] = new(curve.Scalar).Multiply(wInv[i], wInv[i])
		}
		acc := multiScalarMult(append(append([]*curve.Scalar{}, wSq...), wInvSq...), append(append([]*curve.Point{}, L...), R...))
		Z2 = new(curve.Point).Add(Z2, new(curve.Point).ScalarMult(weight, acc))

		tmp := new(curve.Scalar).Subtract(p.T, new(curve.Scalar).Multiply(p.ADash, p.BDash))
		tmp = new(curve.Scalar).Multiply(xIP, tmp)
		z3 = new(curve.Scalar).Add(z3, new(curve.Scalar).Multiply(weight, tmp))
	}

	check1 := new(curve.Point).Add(new(curve.Point).ScalarBaseMult(y0), new(curve.Point).ScalarMult(y1, curve.H()))
	check1 = new(curve.Point).Subtract(check1, Y2)
	check1 = new(curve.Point).Subtract(check1, Y3)
	check1 = new(curve.Point).Subtract(check1, Y4)
	if check1.Equal(curve.Identity()) != 1 {
		return coreerr.New(coreerr.Bulletproof, KindInvalidProof, "aggregate check 1 failed")
	}

	gens := make([]*curve.Point, 0, 2*maxMN)
	for i := 0; i < 2*maxMN; i++ {
		gens = append(gens, generatorAt(i))
	}
	negZ5Z4 := make([]*curve.Scalar, 0, 2*maxMN)
	for i := 0; i < maxMN; i++ {
		negZ5Z4 = append(negZ5Z4, new(curve.Scalar).Subtract(zero(), z5[i]))
		negZ5Z4 = append(negZ5Z4, new(curve.Scalar).Subtract(zero(), z4[i]))
	}
	p := multiScalarMult(negZ5Z4, gens)

	check2 := new(curve.Point).ScalarMult(z3, curve.H())
	check2 = new(curve.Point).Add(check2, new(curve.Point).ScalarMult(new(curve.Scalar).Subtract(zero(), z1), curve.G()))
	check2 = new(curve.Point).Add(check2, Z0)
	check2 = new(curve.Point).Add(check2, Z2)
	check2 = new(curve.Point).Add(check2, p)

	if check2.Equal(curve.Identity()) != 1 {
		return coreerr.New(coreerr.Bulletproof, KindInvalidProof, "aggregate check 2 failed")
	}

	return nil
}

func onesVector(n int) []*curve.Scalar {
	out := make([]*curve.Scalar, n)
	for i := range out {
		out[i] = one()
	}
	return out
}

// generatorAt returns Hi[i/2] for even i, Gi[(i-1)/2] for odd i,
// matching the reference interleaving of H_I/G_I by even/odd index.
func generatorAt(i int) *curve.Point {
	gi, hi := curve.GeneratorVectors()
	if i%2 == 0 {
		return hi[i/2]
	}
	return gi[(i-1)/2]
}
