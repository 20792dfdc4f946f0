// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
	"github.com/umbranet/core/varint"
)

// Derivation computes the cofactor-cleared Diffie-Hellman shared
// secret D = 8*(secret*pub) underlying stealth output derivation
// (spec.md §4.5).
func Derivation(secret *curve.Scalar, pub *curve.Point) *curve.Point {
	shared := new(curve.Point).ScalarMult(secret, pub)
	return curve.MulByCofactor(shared)
}

// DerivationToScalar computes H_s(compress(D) || varint(outputIndex)).
func DerivationToScalar(d *curve.Point, outputIndex uint64) *curve.Scalar {
	compressed := curve.PointCompress(d)
	buf := append(append([]byte{}, compressed[:]...), varint.Serialize(outputIndex)...)
	digest := keccak.Sum256(buf)
	return curve.HashToScalar(digest)
}

// OutputKeyPair is the one-time keypair a stealth output derives to.
type OutputKeyPair struct {
	Secret *curve.Scalar
	Public *curve.Point
}

// DerivationToKeyPair computes (secret = to_scalar(o), public =
// to_scalar(o)*G + spendPublic), the sender-side construction of a
// stealth output and the receiver-side recovery of its spend secret
// once the receiver holds the matching spendPublic's secret.
func DerivationToKeyPair(d *curve.Point, outputIndex uint64, spendPublic *curve.Point) OutputKeyPair {
	secretScalar := DerivationToScalar(d, outputIndex)
	pub := new(curve.Point).ScalarBaseMult(secretScalar)
	pub.Add(pub, spendPublic)
	return OutputKeyPair{Secret: secretScalar, Public: pub}
}

const paymentIDEncryptionTag = 0x8D

// EncryptPaymentID XORs an 8-byte payment ID with the first 8 bytes of
// H_s(compress(D) || 0x8D). The operation is its own inverse, so the
// same function decrypts.
func EncryptPaymentID(pid [8]byte, d *curve.Point) [8]byte {
	compressed := curve.PointCompress(d)
	buf := append(append([]byte{}, compressed[:]...), paymentIDEncryptionTag)
	digest := keccak.Sum256(buf)

	var out [8]byte
	for i := range out {
		out[i] = pid[i] ^ digest[i]
	}
	return out
}

// DecryptPaymentID is an alias for EncryptPaymentID: XOR is involutive.
func DecryptPaymentID(pid [8]byte, d *curve.Point) [8]byte {
	return EncryptPaymentID(pid, d)
}
