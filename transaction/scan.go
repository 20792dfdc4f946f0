// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transaction

import (
	"github.com/umbranet/core/address"
	"github.com/umbranet/core/curve"
)

// GetOutputSecretKey recovers the spending secret of an output if it
// was sent to accountKeys at subaddressIndex: for every candidate tx
// public key R, it computes the derivation D = 8*(a*R), the scalar
// H_s(D || txOutputIndex), and checks whether outputKey - H_s(...)*G
// equals the subaddress's spend public key. On match it returns
// H_s(D || txOutputIndex) + b (+ the subaddress offset secret, when
// subaddressIndex is not the primary (0,0) address) — spec.md §4.9.
func GetOutputSecretKey(
	accountKeys address.AccountKeys,
	subaddressIndex address.Index,
	txOutputIndex uint64,
	outputKey *curve.Point,
	txPublicKeys []*curve.Point,
) (*curve.Scalar, bool) {
	addr := address.AddressForIndex(accountKeys, subaddressIndex)

	for _, txPublicKey := range txPublicKeys {
		d := address.Derivation(accountKeys.View.Secret, txPublicKey)
		derivationScalar := address.DerivationToScalar(d, txOutputIndex)

		candidate := new(curve.Point).ScalarBaseMult(derivationScalar)
		target := new(curve.Point).Subtract(outputKey, candidate)

		if target.Equal(addr.Spend) != 1 {
			continue
		}

		secret := new(curve.Scalar).Add(derivationScalar, accountKeys.Spend.Secret)
		if !subaddressIndex.IsZero() {
			m := address.SubaddressSecret(accountKeys.View.Secret, subaddressIndex)
			secret = new(curve.Scalar).Add(secret, m)
		}
		return secret, true
	}

	return nil, false
}
