package transaction

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbranet/core/address"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/ringct"
)

func randomScalar(t *testing.T) *curve.Scalar {
	t.Helper()
	s, err := curve.ScalarRandom(rand.Reader)
	require.NoError(t, err)
	return s
}

func randomPoint(t *testing.T) *curve.Point {
	t.Helper()
	return new(curve.Point).ScalarBaseMult(randomScalar(t))
}

// createMockSource builds a Source whose real ring entry is a genuine
// output belonging to senderKeys at subaddress (0,0), hidden among
// decoys, mirroring tx_construction.rs's test helper.
func createMockSource(t *testing.T, txKeypair address.KeyPair, senderKeys address.AccountKeys, amount uint64, ringSize int) Source {
	t.Helper()

	senderAddr := address.AddressForIndex(senderKeys, address.Index{})
	realIndex := uint64(ringSize / 2)
	realTxOutputIndex := uint64(7)

	d := address.Derivation(txKeypair.Secret, senderAddr.View)
	target := address.DerivationToKeyPair(d, realTxOutputIndex, senderAddr.Spend)

	mask := randomScalar(t)
	commitment := ringct.Commitment{Mask: mask, Amount: amount}

	outputs := make([]SourceEntry, ringSize)
	for i := range outputs {
		if uint64(i) == realIndex {
			outputs[i] = SourceEntry{
				AbsoluteOffset: uint64(i+1) * uint64(ringSize),
				Destination:    target.Public,
				Commitment:     curve.MulByInvEight(commitment.Point()),
			}
		} else {
			outputs[i] = SourceEntry{
				AbsoluteOffset: uint64(i+1) * uint64(ringSize),
				Destination:    randomPoint(t),
				Commitment:     randomPoint(t),
			}
		}
	}

	return Source{
		Amount:                 amount,
		AmountMask:             mask,
		Outputs:                outputs,
		RealOutputIndex:        realIndex,
		RealOutputTxIndex:      realTxOutputIndex,
		RealOutputTxPublicKeys: []*curve.Point{txKeypair.Public},
		SubaddressIndex:        address.Index{},
	}
}

func TestConstructAndScanRoundTrip(t *testing.T) {
	senderKeys := address.DeterministicAccountKeys(randomScalar(t))
	txKeypair := address.NewKeyPair(randomScalar(t))

	sources := []Source{
		createMockSource(t, txKeypair, senderKeys, 5, 8),
		createMockSource(t, txKeypair, senderKeys, 7, 8),
	}

	recipientKeys := address.DeterministicAccountKeys(randomScalar(t))
	recipientAddr := address.AddressForIndex(recipientKeys, address.Index{})

	destinations := []Destination{
		{Amount: 3, Kind: DestinationPayToAddress, Address: recipientAddr},
		{Amount: 9, Kind: DestinationChange, ChangeIndex: address.Index{}},
	}

	tx, _, err := Construct(rand.Reader, senderKeys, sources, destinations, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(0), tx.RingCT.Base.Fee)

	err = ringct.VerifyMultiple(rand.Reader, []*ringct.Signature{tx.RingCT}, [][32]byte{tx.Prefix.Hash()})
	require.NoError(t, err)

	var foundRecipient, foundChange bool
	for i, out := range tx.Prefix.Outputs {
		txPublicKeys := []*curve.Point{tx.Prefix.TxPublicKey}
		txPublicKeys = append(txPublicKeys, tx.Prefix.AdditionalTxPublicKeys...)

		if _, ok := GetOutputSecretKey(recipientKeys, address.Index{}, uint64(i), out.Key, txPublicKeys); ok {
			foundRecipient = true
		}
		if _, ok := GetOutputSecretKey(senderKeys, address.Index{}, uint64(i), out.Key, txPublicKeys); ok {
			foundChange = true
		}
	}
	require.True(t, foundRecipient)
	require.True(t, foundChange)
}

func TestConstructRejectsOverspending(t *testing.T) {
	senderKeys := address.DeterministicAccountKeys(randomScalar(t))
	txKeypair := address.NewKeyPair(randomScalar(t))

	sources := []Source{
		createMockSource(t, txKeypair, senderKeys, 1, 8),
		createMockSource(t, txKeypair, senderKeys, 2, 8),
	}

	destinations := []Destination{
		{Amount: 4, Kind: DestinationChange, ChangeIndex: address.Index{}},
	}

	_, _, err := Construct(rand.Reader, senderKeys, sources, destinations, 10)
	require.Error(t, err)
}

func TestConstructRejectsEmptySources(t *testing.T) {
	senderKeys := address.DeterministicAccountKeys(randomScalar(t))
	destinations := []Destination{
		{Amount: 1, Kind: DestinationChange, ChangeIndex: address.Index{}},
	}
	_, _, err := Construct(rand.Reader, senderKeys, nil, destinations, 0)
	require.Error(t, err)
}

func TestConstructRejectsEmptyDestinations(t *testing.T) {
	senderKeys := address.DeterministicAccountKeys(randomScalar(t))
	txKeypair := address.NewKeyPair(randomScalar(t))
	sources := []Source{createMockSource(t, txKeypair, senderKeys, 1, 8)}
	_, _, err := Construct(rand.Reader, senderKeys, sources, nil, 0)
	require.Error(t, err)
}
