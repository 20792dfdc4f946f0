// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"encoding/binary"

	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
)

// Index identifies a subaddress by (major account, minor index).
// (0, 0) is the account's standard address.
type Index struct {
	Major uint32
	Minor uint32
}

// IsZero reports whether idx is the standard-address index (0, 0).
func (idx Index) IsZero() bool {
	return idx.Major == 0 && idx.Minor == 0
}

const subaddressDomainTag = "SubAddr\x00"

// SubaddressSecret computes m = H_s("SubAddr\0" || a || le_u32(major)
// || le_u32(minor)), the per-index offset scalar.
func SubaddressSecret(viewSecret *curve.Scalar, idx Index) *curve.Scalar {
	buf := make([]byte, 0, len(subaddressDomainTag)+32+4+4)
	buf = append(buf, subaddressDomainTag...)
	buf = append(buf, viewSecret.Bytes()...)
	buf = binary.LittleEndian.AppendUint32(buf, idx.Major)
	buf = binary.LittleEndian.AppendUint32(buf, idx.Minor)

	digest := keccak.Sum256(buf)
	return curve.HashToScalar(digest)
}

// AddressForIndex computes the address for idx: the account's standard
// address when idx is (0, 0), otherwise spend = B + m*G, view =
// a*(B + m*G).
func AddressForIndex(keys AccountKeys, idx Index) *Address {
	if idx.IsZero() {
		return Standard(keys.Spend.Public, keys.View.Public)
	}

	m := SubaddressSecret(keys.View.Secret, idx)
	mG := new(curve.Point).ScalarBaseMult(m)

	spend := new(curve.Point).Add(keys.Spend.Public, mG)
	view := new(curve.Point).ScalarMult(keys.View.Secret, spend)

	return Subaddress(spend, view)
}
