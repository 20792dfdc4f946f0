package block

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbranet/core/curve"
)

func randomMinerSpecific(t *testing.T) *curve.Point {
	t.Helper()
	s, err := curve.ScalarRandom(rand.Reader)
	require.NoError(t, err)
	return new(curve.Point).ScalarBaseMult(s)
}

func TestRoundTimestamp(t *testing.T) {
	require.Equal(t, uint64(300), roundTimestamp(0))
	require.Equal(t, uint64(300), roundTimestamp(300))
	require.Equal(t, uint64(900), roundTimestamp(600))
	require.Equal(t, uint64(900), roundTimestamp(899))
	require.Equal(t, uint64(900), roundTimestamp(900))
}

func TestMiningBlobEmptyUsesZeroHash(t *testing.T) {
	b := Block{
		Header: Header{
			MajorVersion:  1,
			MinorVersion:  9,
			Timestamp:     1_700_000_000,
			MinerSpecific: randomMinerSpecific(t),
		},
	}
	blob := b.MiningBlob()
	require.Contains(t, string(blob), string(zeroHash[:]))
}

func TestMiningBlobDeterministic(t *testing.T) {
	b := Block{
		Header: Header{
			MajorVersion:  1,
			MinorVersion:  9,
			Timestamp:     1_700_000_123,
			MinerSpecific: randomMinerSpecific(t),
		},
		TxHashes: [][32]byte{{1}, {2}, {3}},
	}
	require.Equal(t, b.MiningBlob(), b.MiningBlob())
}

func TestMiningBlobIgnoresTimestampWithinRoundingWindow(t *testing.T) {
	specific := randomMinerSpecific(t)
	b1 := Block{Header: Header{MajorVersion: 1, MinorVersion: 9, Timestamp: 600, MinerSpecific: specific}}
	b2 := Block{Header: Header{MajorVersion: 1, MinorVersion: 9, Timestamp: 899, MinerSpecific: specific}}
	require.Equal(t, b1.MiningBlob(), b2.MiningBlob())
}

func TestBlockHashChangesWithTxHashes(t *testing.T) {
	specific := randomMinerSpecific(t)
	base := Block{
		Header:    Header{MajorVersion: 1, MinorVersion: 9, Timestamp: 1700, MinerSpecific: specific},
		MinerHash: [32]byte{0xAA},
	}
	withTx := base
	withTx.TxHashes = [][32]byte{{1}, {2}}

	require.NotEqual(t, base.Hash(), withTx.Hash())
}

func TestBlockHashDeterministic(t *testing.T) {
	specific := randomMinerSpecific(t)
	b := Block{
		Header:    Header{MajorVersion: 1, MinorVersion: 9, Timestamp: 1700, MinerSpecific: specific, Iterations: 5},
		MinerHash: [32]byte{0xAA},
		TxHashes:  [][32]byte{{1}, {2}, {3}},
	}
	require.Equal(t, b.Hash(), b.Hash())
}
