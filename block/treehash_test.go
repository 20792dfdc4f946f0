package block

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func hashesFromHex(t *testing.T, s string) [][32]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Zero(t, len(raw)%32)

	out := make([][32]byte, len(raw)/32)
	for i := range out {
		copy(out[i][:], raw[i*32:(i+1)*32])
	}
	return out
}

func hashFromHex(t *testing.T, s string) [32]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, 32)

	var out [32]byte
	copy(out[:], raw)
	return out
}

// TestTreeHashVectors reproduces spec.md §8 scenario 3: a single-element
// input returns itself, and a two-element concatenation hashes to the
// literal digest given there.
func TestTreeHashVectors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single element returns itself",
			input: "676567f8b1b470207c20d8efbaacfa64b2753301b46139562111636f36304bb8",
			want:  "676567f8b1b470207c20d8efbaacfa64b2753301b46139562111636f36304bb8",
		},
		{
			name:  "two elements hash their concatenation",
			input: "3124758667bc8e76e25403eee75a1044175d58fcd3b984e0745d0ab18f473984975ce54240407d80eedba2b395bcad5be99b5c920abc2423865e3066edd4847a",
			want:  "5077570fed2363a14fa978218185b914059e23517faf366f08a87cf3c47fd58e",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hashes := hashesFromHex(t, tc.input)
			want := hashFromHex(t, tc.want)
			require.Equal(t, want, TreeHash(hashes))
		})
	}
}

func TestTreeHashOddLeafCounts(t *testing.T) {
	for n := 3; n <= 9; n++ {
		hashes := make([][32]byte, n)
		for i := range hashes {
			hashes[i][0] = byte(i + 1)
		}
		require.NotPanics(t, func() { TreeHash(hashes) })
	}
}

func TestTreeHashDeterministic(t *testing.T) {
	hashes := make([][32]byte, 5)
	for i := range hashes {
		hashes[i][0] = byte(i + 1)
	}
	require.Equal(t, TreeHash(hashes), TreeHash(hashes))
}

func TestTreeHashPanicsOnEmptyInput(t *testing.T) {
	require.Panics(t, func() { TreeHash(nil) })
}
