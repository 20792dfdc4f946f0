package curve

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarFromBytesModOrderIsCanonical(t *testing.T) {
	var b [32]byte
	_, err := rand.Read(b[:])
	require.NoError(t, err)

	s := ScalarFromBytesModOrder(b)
	reEncoded := ScalarFromBytesModOrder([32]byte(s.Bytes()[:32]))
	require.Equal(t, 1, s.Equal(reEncoded))
}

func TestPointCompressDecompressRoundTrip(t *testing.T) {
	scalar, err := ScalarRandom(rand.Reader)
	require.NoError(t, err)

	p := new(Point).ScalarBaseMult(scalar)
	compressed := PointCompress(p)

	decompressed, err := PointDecompress(compressed)
	require.NoError(t, err)
	require.Equal(t, 1, p.Equal(decompressed))
}

func TestPointDecompressRejectsGarbage(t *testing.T) {
	var garbage [32]byte
	for i := range garbage {
		garbage[i] = 0xFF
	}
	_, err := PointDecompress(garbage)
	require.Error(t, err)
}

func TestHIsIndependentOfG(t *testing.T) {
	require.NotEqual(t, 1, H().Equal(G()))
}

func TestHashToPointDeterministic(t *testing.T) {
	var h [32]byte
	copy(h[:], []byte("some 32 byte ish input padded..."))
	p1 := HashToPoint(h)
	p2 := HashToPoint(h)
	require.Equal(t, 1, p1.Equal(p2))
}

func TestGeneratorVectorsCachedAndStable(t *testing.T) {
	gi1, hi1 := GeneratorVectors()
	gi2, hi2 := GeneratorVectors()
	require.Equal(t, len(gi1), MaxGeneratorLen)
	require.Equal(t, len(hi1), MaxGeneratorLen)
	require.Equal(t, 1, gi1[0].Equal(gi2[0]))
	require.Equal(t, 1, hi1[5].Equal(hi2[5]))
}
