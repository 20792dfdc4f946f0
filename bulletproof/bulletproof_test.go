package bulletproof

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbranet/core/curve"
)

func TestProveVerifyRoundTripSingleValue(t *testing.T) {
	proof, _, err := ProveMultiple(rand.Reader, []uint64{42})
	require.NoError(t, err)
	require.NoError(t, VerifyMultiple(rand.Reader, []*Proof{proof}))
}

func TestProveVerifyRoundTripAggregated(t *testing.T) {
	values := []uint64{0, 1, 1000000, 1 << 40, ^uint64(0)}
	proof, masks, err := ProveMultiple(rand.Reader, values)
	require.NoError(t, err)
	require.Len(t, masks, 8) // next power of two >= 5, capped at M_MAX
	require.NoError(t, VerifyMultiple(rand.Reader, []*Proof{proof}))
}

func TestProveRejectsTooManyValues(t *testing.T) {
	values := make([]uint64, MMax+1)
	_, _, err := ProveMultiple(rand.Reader, values)
	require.Error(t, err)
}

func TestVerifyBatchOfIndependentProofs(t *testing.T) {
	p1, _, err := ProveMultiple(rand.Reader, []uint64{7})
	require.NoError(t, err)
	p2, _, err := ProveMultiple(rand.Reader, []uint64{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, VerifyMultiple(rand.Reader, []*Proof{p1, p2}))
}

func TestVerifyRejectsTamperedCommitment(t *testing.T) {
	proof, _, err := ProveMultiple(rand.Reader, []uint64{100})
	require.NoError(t, err)

	other, err := curve.ScalarRandom(rand.Reader)
	require.NoError(t, err)
	proof.V[0] = new(curve.Point).Add(proof.V[0], new(curve.Point).ScalarBaseMult(other))

	err = VerifyMultiple(rand.Reader, []*Proof{proof})
	require.Error(t, err)
}

func TestVerifyRejectsTamperedScalar(t *testing.T) {
	proof, _, err := ProveMultiple(rand.Reader, []uint64{55})
	require.NoError(t, err)

	other, err := curve.ScalarRandom(rand.Reader)
	require.NoError(t, err)
	proof.T = other

	err = VerifyMultiple(rand.Reader, []*Proof{proof})
	require.Error(t, err)
}
