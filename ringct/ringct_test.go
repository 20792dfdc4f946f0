package ringct

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbranet/core/curve"
)

func randomScalar(t *testing.T) *curve.Scalar {
	t.Helper()
	s, err := curve.ScalarRandom(rand.Reader)
	require.NoError(t, err)
	return s
}

func randomPoint(t *testing.T) [32]byte {
	t.Helper()
	return curve.PointCompress(new(curve.Point).ScalarBaseMult(randomScalar(t)))
}

// buildSignedTransfer constructs a 1-input, 2-output RingCT signature
// spending a real output of value `spent` into outputs summing to
// `spent - fee`, with a two-decoy mix ring.
func buildSignedTransfer(t *testing.T, spent, fee uint64, outAmounts []uint64) (*Signature, [32]byte) {
	t.Helper()

	spendKey := randomScalar(t)
	spendPub := curve.PointCompress(new(curve.Point).ScalarBaseMult(spendKey))

	realCommitment := Commitment{Mask: randomScalar(t), Amount: spent}
	realCommitmentWire := realCommitment.WireCompressed()

	ring := []MixRingEntry{
		{Dest: randomPoint(t), Commitment: randomPoint(t)},
		{Dest: spendPub, Commitment: realCommitmentWire},
		{Dest: randomPoint(t), Commitment: randomPoint(t)},
	}

	input := Input{
		MixRing:   ring,
		RealIndex: 1,
		SpendKey:  spendKey,
		RealMask:  realCommitment.Mask,
		Amount:    spent,
	}

	outputs := make([]Output, len(outAmounts))
	for i, a := range outAmounts {
		outputs[i] = Output{Amount: a, Derivation: new(curve.Point).ScalarBaseMult(randomScalar(t))}
	}

	var txPrefixHash [32]byte
	_, err := rand.Read(txPrefixHash[:])
	require.NoError(t, err)

	sig, err := Sign(rand.Reader, TypeBulletproof2, []Input{input}, outputs, fee, txPrefixHash)
	require.NoError(t, err)
	return sig, txPrefixHash
}

func TestSignVerifyRoundTrip(t *testing.T) {
	sig, prefixHash := buildSignedTransfer(t, 1000, 10, []uint64{600, 390})
	err := VerifyMultiple(rand.Reader, []*Signature{sig}, [][32]byte{prefixHash})
	require.NoError(t, err)
}

func TestVerifyRejectsUnbalancedAmounts(t *testing.T) {
	sig, prefixHash := buildSignedTransfer(t, 1000, 10, []uint64{600, 500})
	err := VerifyMultiple(rand.Reader, []*Signature{sig}, [][32]byte{prefixHash})
	require.Error(t, err)
}

func TestVerifyRejectsNullType(t *testing.T) {
	sig, prefixHash := buildSignedTransfer(t, 1000, 10, []uint64{600, 390})
	sig.Base.Type = TypeNull
	err := VerifyMultiple(rand.Reader, []*Signature{sig}, [][32]byte{prefixHash})
	require.Error(t, err)
}

func TestVerifyRejectsTamperedMLSAG(t *testing.T) {
	sig, prefixHash := buildSignedTransfer(t, 1000, 10, []uint64{600, 390})
	sig.MLSAG[0].C0 = randomScalar(t)
	err := VerifyMultiple(rand.Reader, []*Signature{sig}, [][32]byte{prefixHash})
	require.Error(t, err)
}

func TestECDHEncodeDecodeRoundTrip(t *testing.T) {
	d := new(curve.Point).ScalarBaseMult(randomScalar(t))
	mask := randomScalar(t)
	tuple := EncodeECDH(mask, 123456789, d)

	gotMask, gotAmount := DecodeECDH(tuple, d)
	require.Equal(t, uint64(123456789), gotAmount)
	require.Equal(t, mask.Bytes(), gotMask.Bytes())
}
