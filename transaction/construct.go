// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transaction

import (
	"bytes"
	"io"
	"sort"

	"github.com/umbranet/core/address"
	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/ringct"
)

type preparedInput struct {
	source    Source
	in        In
	ephemeral address.OutputKeyPair
}

// findDestinationPublicKey returns the single distinct view public key
// among non-zero, non-change destinations — the key the payment ID is
// encrypted toward. Unlike the reference implementation (which panics
// if destinations disagree on this key and none of them carries an
// explicit payment ID), this returns ok=false so the caller can surface
// it as an ordinary error.
func findDestinationPublicKey(destinations []Destination) (*curve.Point, bool) {
	var found *curve.Point
	for _, dest := range destinations {
		if dest.Amount == 0 || dest.Kind != DestinationPayToAddress {
			continue
		}
		if found != nil && found.Equal(dest.Address.View) != 1 {
			return nil, false
		}
		found = dest.Address.View
	}
	return found, found != nil
}

// Construct builds a complete RingCT transaction spending sources
// towards destinations (spec.md §4.9). It returns the transaction and
// the secret keys of every transaction keypair generated for it (the
// primary keypair, plus one per destination when additional keypairs
// are required), which the caller must retain to later prove authorship
// or recompute payment IDs.
func Construct(rng io.Reader, senderKeys address.AccountKeys, sources []Source, destinations []Destination, unlockDelta uint16) (*Transaction, []*curve.Scalar, error) {
	if len(sources) == 0 {
		return nil, nil, coreerr.New(coreerr.Transaction, KindNoSources, "no transaction sources")
	}
	if len(destinations) == 0 {
		return nil, nil, coreerr.New(coreerr.Transaction, KindNoDestinations, "no transaction destinations")
	}

	var inAmountSum uint64
	prepared := make([]preparedInput, len(sources))
	for i, source := range sources {
		if source.RealOutputIndex >= uint64(len(source.Outputs)) {
			return nil, nil, coreerr.New(coreerr.Transaction, KindRealIndexOutOfBounds, "real output index is beyond output mixin set")
		}
		inAmountSum += source.Amount

		ki, ephemeral, ok := generateKeyImage(senderKeys, source)
		if !ok {
			return nil, nil, coreerr.New(coreerr.Transaction, KindKeyImageGeneration, "key image could not be generated for given output")
		}

		offsets := make([]uint64, len(source.Outputs))
		var last uint64
		for j, entry := range source.Outputs {
			offsets[j] = entry.AbsoluteOffset - last
			last = entry.AbsoluteOffset
		}

		prepared[i] = preparedInput{
			source: source,
			in: In{
				KeyImage:   curve.PointCompress(ki),
				KeyOffsets: offsets,
			},
			ephemeral: ephemeral,
		}
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		return bytes.Compare(prepared[i].in.KeyImage[:], prepared[j].in.KeyImage[:]) < 0
	})

	order, err := shuffleOrder(rng, len(destinations))
	if err != nil {
		return nil, nil, err
	}
	shuffled := make([]Destination, len(destinations))
	for i, idx := range order {
		shuffled[i] = destinations[idx]
	}
	destinations = shuffled

	var numStandard, numSubaddr int
	var paymentID [8]byte
	var havePaymentID bool
	for _, dest := range destinations {
		if dest.Kind != DestinationPayToAddress {
			continue
		}
		switch dest.Address.Kind {
		case address.KindStandard:
			numStandard++
		case address.KindSubaddress:
			numSubaddr++
		case address.KindIntegrated:
			if havePaymentID {
				return nil, nil, coreerr.New(coreerr.Transaction, KindMultiplePaymentIDs, "transaction has more than one payment ID")
			}
			paymentID = dest.Address.PaymentID
			havePaymentID = true
			numStandard++
		}
	}

	if !havePaymentID {
		if _, err := io.ReadFull(rng, paymentID[:]); err != nil {
			return nil, nil, err
		}
	}

	txSecret, err := curve.ScalarRandom(rng)
	if err != nil {
		return nil, nil, err
	}
	txPublic := new(curve.Point).ScalarBaseMult(txSecret)

	if numStandard == 0 && numSubaddr == 1 {
		for _, dest := range destinations {
			if dest.Kind == DestinationPayToAddress && dest.Address.Kind == address.KindSubaddress {
				txPublic = new(curve.Point).ScalarMult(txSecret, dest.Address.Spend)
				break
			}
		}
	}

	needAdditional := numSubaddr > 0 && (numStandard > 0 || numSubaddr > 1)

	var additionalSecrets []*curve.Scalar
	var additionalPublics []*curve.Point
	additionalPerOutput := make([]int, len(destinations)) // -1 if none
	if needAdditional {
		for i, dest := range destinations {
			s, err := curve.ScalarRandom(rng)
			if err != nil {
				return nil, nil, err
			}
			p := new(curve.Point).ScalarBaseMult(s)

			destAddr := destinationAddress(senderKeys, dest)
			if destAddr.Kind == address.KindSubaddress {
				p = new(curve.Point).ScalarMult(s, destAddr.Spend)
			}

			additionalPerOutput[i] = len(additionalSecrets)
			additionalSecrets = append(additionalSecrets, s)
			additionalPublics = append(additionalPublics, p)
		}
	} else {
		for i := range additionalPerOutput {
			additionalPerOutput[i] = -1
		}
	}

	var outAmountSum uint64
	txOutputs := make([]Out, len(destinations))
	outputDerivations := make([]*curve.Point, len(destinations))
	for i, dest := range destinations {
		destAddr := destinationAddress(senderKeys, dest)

		var derivation *curve.Point
		switch dest.Kind {
		case DestinationChange:
			derivation = address.Derivation(senderKeys.View.Secret, txPublic)
		case DestinationPayToAddress:
			secret := txSecret
			if dest.Address.Kind == address.KindSubaddress && needAdditional {
				secret = additionalSecrets[additionalPerOutput[i]]
			}
			derivation = address.Derivation(secret, destAddr.View)
		}

		target := address.DerivationToKeyPair(derivation, uint64(i), destAddr.Spend)

		outAmountSum += dest.Amount
		txOutputs[i] = Out{Amount: dest.Amount, Key: target.Public}
		outputDerivations[i] = derivation
	}

	if outAmountSum > inAmountSum {
		return nil, nil, coreerr.New(coreerr.Transaction, KindExcessSpending, "transaction spends more than it contains as input")
	}

	destPublicKey, ok := findDestinationPublicKey(destinations)
	if !ok {
		return nil, nil, coreerr.New(coreerr.Transaction, KindPaymentIDEncryption, "payment ID could not be encrypted")
	}

	transactionSecretKeys := append([]*curve.Scalar{txSecret}, additionalSecrets...)

	paymentIDDerivation := address.Derivation(txSecret, destPublicKey)
	encryptedPaymentID := address.EncryptPaymentID(paymentID, paymentIDDerivation)

	prefix := Prefix{
		Version:                2,
		UnlockDelta:            unlockDelta,
		Outputs:                txOutputs,
		TxPublicKey:            txPublic,
		AdditionalTxPublicKeys: additionalPublics,
		EncryptedPaymentID:     encryptedPaymentID,
		HasPaymentID:           true,
	}
	prefix.Inputs = make([]In, len(prepared))
	for i, p := range prepared {
		prefix.Inputs[i] = p.in
	}

	rctInputs := make([]ringct.Input, len(prepared))
	for i, p := range prepared {
		mixRing := make([]ringct.MixRingEntry, len(p.source.Outputs))
		for r, entry := range p.source.Outputs {
			mixRing[r] = ringct.MixRingEntry{
				Dest:       curve.PointCompress(entry.Destination),
				Commitment: curve.PointCompress(entry.Commitment),
			}
		}
		rctInputs[i] = ringct.Input{
			MixRing:   mixRing,
			RealIndex: int(p.source.RealOutputIndex),
			SpendKey:  p.ephemeral.Secret,
			RealMask:  p.source.AmountMask,
			Amount:    p.source.Amount,
		}
	}

	rctOutputs := make([]ringct.Output, len(txOutputs))
	for i, out := range txOutputs {
		rctOutputs[i] = ringct.Output{Amount: out.Amount, Derivation: outputDerivations[i]}
	}

	fee := inAmountSum - outAmountSum
	sig, err := ringct.Sign(rng, ringct.TypeBulletproof2, rctInputs, rctOutputs, fee, prefix.Hash())
	if err != nil {
		return nil, nil, err
	}

	return &Transaction{Prefix: prefix, RingCT: sig}, transactionSecretKeys, nil
}

func destinationAddress(senderKeys address.AccountKeys, dest Destination) *address.Address {
	if dest.Kind == DestinationChange {
		return address.AddressForIndex(senderKeys, dest.ChangeIndex)
	}
	return dest.Address
}
