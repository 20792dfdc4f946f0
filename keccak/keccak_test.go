package keccak

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestSum256KnownVectors(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"abc", "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}
	for _, c := range cases {
		got := Sum256([]byte(c.in))
		require.Equal(t, c.out, hex.EncodeToString(got[:]))
	}
}

func TestSumFullPrefixMatchesSum256(t *testing.T) {
	data := []byte("de omnibus dubitandum")
	full := SumFull(data)
	short := Sum256(data)
	require.Equal(t, short[:], full[:32])
}

func TestDeterministic(t *testing.T) {
	data := []byte("repeatable input")
	require.Equal(t, Sum256(data), Sum256(data))
	require.Equal(t, SumFull(data), SumFull(data))
}

// TestSum256MatchesLegacyKeccak cross-checks Sum256 against
// golang.org/x/crypto/sha3's legacy (original, non-NIST-padded) Keccak-256
// implementation: CN_fast_hash uses the same 0x01 domain-separation byte
// NewLegacyKeccak256 does, unlike SHA3-256's 0x06. This is the only point
// in the module where an independent implementation of the same digest
// exists in the dependency set, so it is the one place a direct
// third-party comparison is possible rather than a self-consistency check.
func TestSum256MatchesLegacyKeccak(t *testing.T) {
	for i := 0; i < 64; i++ {
		data := make([]byte, i)
		_, err := rand.Read(data)
		require.NoError(t, err)

		want := sha3.NewLegacyKeccak256()
		want.Write(data)

		got := Sum256(data)
		require.Equal(t, want.Sum(nil), got[:])
	}
}
