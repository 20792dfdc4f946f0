package mlsag

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbranet/core/curve"
)

func randomKeyPair(t *testing.T) (*curve.Scalar, [32]byte) {
	t.Helper()
	secret, err := curve.ScalarRandom(rand.Reader)
	require.NoError(t, err)
	pub := new(curve.Point).ScalarBaseMult(secret)
	return secret, curve.PointCompress(pub)
}

func randomMessage(t *testing.T) [32]byte {
	t.Helper()
	var m [32]byte
	_, err := rand.Read(m[:])
	require.NoError(t, err)
	return m
}

func TestSignVerifyRoundTrip(t *testing.T) {
	const index = 0
	secrets := make([]*curve.Scalar, 2)
	pubs := make([][32]byte, 2)
	for i := range secrets {
		secrets[i], pubs[i] = randomKeyPair(t)
	}

	ring := Ring{
		{pubs[0], pubs[1]},
	}
	for r := 1; r < 3; r++ {
		_, decoyA := randomKeyPair(t)
		_, decoyB := randomKeyPair(t)
		ring = append(ring, [][32]byte{decoyA, decoyB})
	}

	message := randomMessage(t)
	sig, err := Sign(rand.Reader, message, ring, index, secrets)
	require.NoError(t, err)

	ok, err := Verify(message, ring, sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsTamperedChallenge(t *testing.T) {
	const index = 0
	secrets := make([]*curve.Scalar, 2)
	pubs := make([][32]byte, 2)
	for i := range secrets {
		secrets[i], pubs[i] = randomKeyPair(t)
	}

	ring := Ring{{pubs[0], pubs[1]}}
	for r := 1; r < 3; r++ {
		_, decoyA := randomKeyPair(t)
		_, decoyB := randomKeyPair(t)
		ring = append(ring, [][32]byte{decoyA, decoyB})
	}

	message := randomMessage(t)
	sig, err := Sign(rand.Reader, message, ring, index, secrets)
	require.NoError(t, err)

	other, err := curve.ScalarRandom(rand.Reader)
	require.NoError(t, err)
	sig.C0 = other

	ok, err := Verify(message, ring, sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignErrorsOnSingleMemberRing(t *testing.T) {
	_, pub := randomKeyPair(t)
	ring := Ring{{pub, pub, pub}}
	secrets := make([]*curve.Scalar, 3)
	for i := range secrets {
		secrets[i], _ = randomKeyPair(t)
	}

	_, err := Sign(rand.Reader, randomMessage(t), ring, 0, secrets)
	require.Error(t, err)
}

func TestSignErrorsOnOutOfBoundsIndex(t *testing.T) {
	_, pubA := randomKeyPair(t)
	_, pubB := randomKeyPair(t)
	ring := Ring{{pubA, pubB}, {pubA, pubB}}
	secrets := make([]*curve.Scalar, 2)
	for i := range secrets {
		secrets[i], _ = randomKeyPair(t)
	}

	_, err := Sign(rand.Reader, randomMessage(t), ring, 2, secrets)
	require.Error(t, err)
}

func TestSignErrorsOnInconsistentSignerKeyVector(t *testing.T) {
	_, pub := randomKeyPair(t)
	ring := Ring{
		{pub, pub, pub},
		{pub, pub, pub},
		{pub, pub, pub},
	}
	secrets := make([]*curve.Scalar, 2)
	for i := range secrets {
		secrets[i], _ = randomKeyPair(t)
	}

	_, err := Sign(rand.Reader, randomMessage(t), ring, 0, secrets)
	require.Error(t, err)
}
