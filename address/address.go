// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package address implements CryptoNote-style standard/sub/integrated
// addresses, account keys, Diffie-Hellman output derivation, and
// payment-ID encryption (spec.md §4.4, §4.5).
package address

import (
	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/varint"
)

// Error kinds for the address subsystem.
const (
	KindInvalidEncoding coreerr.Kind = iota + 1
	KindInvalidPrefix
)

// Kind distinguishes the three address shapes a coin profile supports.
type Kind int

const (
	KindStandard Kind = iota
	KindSubaddress
	KindIntegrated
)

// Prefixes is the small capability parameter supplying a coin's three
// address-tag constants (spec.md §9: "polymorphism over coin-specific
// address prefixes ... no dynamic dispatch needed").
type Prefixes struct {
	Standard   uint64
	Subaddress uint64
	Integrated uint64
}

// Address is the tagged union of the three address shapes. PaymentID
// is only meaningful when Kind == KindIntegrated.
type Address struct {
	Kind      Kind
	Spend     *curve.Point
	View      *curve.Point
	PaymentID [8]byte
}

// Standard builds a standard (account index (0,0)) address.
func Standard(spend, view *curve.Point) *Address {
	return &Address{Kind: KindStandard, Spend: spend, View: view}
}

// Subaddress builds a subaddress.
func Subaddress(spend, view *curve.Point) *Address {
	return &Address{Kind: KindSubaddress, Spend: spend, View: view}
}

// Integrated builds a standard address carrying an embedded payment ID.
func Integrated(spend, view *curve.Point, paymentID [8]byte) *Address {
	return &Address{Kind: KindIntegrated, Spend: spend, View: view, PaymentID: paymentID}
}

// String encodes the address as base58-with-checksum per prefixes.
func (a *Address) String(prefixes Prefixes) string {
	var tag uint64
	switch a.Kind {
	case KindStandard:
		tag = prefixes.Standard
	case KindSubaddress:
		tag = prefixes.Subaddress
	case KindIntegrated:
		tag = prefixes.Integrated
	}

	buf := varint.Serialize(tag)
	spend := curve.PointCompress(a.Spend)
	view := curve.PointCompress(a.View)
	buf = append(buf, spend[:]...)
	buf = append(buf, view[:]...)
	if a.Kind == KindIntegrated {
		buf = append(buf, a.PaymentID[:]...)
	}
	return EncodeCheck(buf)
}

// FromString decodes a base58 address string against prefixes,
// failing with KindInvalidEncoding or KindInvalidPrefix.
func FromString(s string, prefixes Prefixes) (*Address, error) {
	data, err := DecodeCheck(s)
	if err != nil {
		return nil, coreerr.New(coreerr.Address, KindInvalidEncoding, err.Error())
	}

	tagEnd := 0
	for _, b := range data {
		tagEnd++
		if b&0x80 == 0 {
			break
		}
		if tagEnd >= len(data) {
			return nil, coreerr.New(coreerr.Address, KindInvalidEncoding, "truncated prefix varint")
		}
	}

	tag, _, err := varint.Decode(data[:tagEnd])
	if err != nil {
		return nil, coreerr.New(coreerr.Address, KindInvalidEncoding, err.Error())
	}

	keysLen := 64
	if len(data) < tagEnd+keysLen {
		return nil, coreerr.New(coreerr.Address, KindInvalidEncoding, "truncated address body")
	}

	var spendBytes, viewBytes [32]byte
	copy(spendBytes[:], data[tagEnd:tagEnd+32])
	copy(viewBytes[:], data[tagEnd+32:tagEnd+64])

	spend, err := curve.PointDecompress(spendBytes)
	if err != nil {
		return nil, coreerr.New(coreerr.Address, KindInvalidEncoding, "invalid spend public key")
	}
	view, err := curve.PointDecompress(viewBytes)
	if err != nil {
		return nil, coreerr.New(coreerr.Address, KindInvalidEncoding, "invalid view public key")
	}

	switch tag {
	case prefixes.Standard:
		return Standard(spend, view), nil
	case prefixes.Subaddress:
		return Subaddress(spend, view), nil
	case prefixes.Integrated:
		if len(data) < tagEnd+keysLen+8 {
			return nil, coreerr.New(coreerr.Address, KindInvalidEncoding, "truncated payment id")
		}
		var pid [8]byte
		copy(pid[:], data[tagEnd+keysLen:tagEnd+keysLen+8])
		return Integrated(spend, view, pid), nil
	default:
		return nil, coreerr.New(coreerr.Address, KindInvalidPrefix, "unrecognised address tag")
	}
}
