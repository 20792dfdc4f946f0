// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
)

// KeyPair is a secret scalar paired with its public point, used for
// both the spend and view keys of an account.
type KeyPair struct {
	Secret *curve.Scalar
	Public *curve.Point
}

// NewKeyPair derives the public point of secret and pairs them.
func NewKeyPair(secret *curve.Scalar) KeyPair {
	return KeyPair{Secret: secret, Public: new(curve.Point).ScalarBaseMult(secret)}
}

// AccountKeys is the spend/view keypair pair identifying a wallet.
type AccountKeys struct {
	Spend KeyPair
	View  KeyPair
}

// DeterministicAccountKeys derives view_secret = H_s(spend_secret),
// the standard CryptoNote scheme that lets a wallet be recovered from
// the spend secret alone.
func DeterministicAccountKeys(spendSecret *curve.Scalar) AccountKeys {
	spend := NewKeyPair(spendSecret)
	secretBytes := spendSecret.Bytes()
	digest := keccak.Sum256(secretBytes)
	view := NewKeyPair(curve.HashToScalar(digest))
	return AccountKeys{Spend: spend, View: view}
}

// NonDeterministicAccountKeys pairs independently generated spend and
// view secrets (imported or hardware-wallet-style accounts where the
// view key is not derivable from the spend key).
func NonDeterministicAccountKeys(spendSecret, viewSecret *curve.Scalar) AccountKeys {
	return AccountKeys{Spend: NewKeyPair(spendSecret), View: NewKeyPair(viewSecret)}
}
