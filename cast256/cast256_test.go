package cast256

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T) [KeySize]byte {
	t.Helper()
	var k [KeySize]byte
	_, err := rand.Read(k[:])
	require.NoError(t, err)
	return k
}

func randomBlock(t *testing.T) [BlockSize]byte {
	t.Helper()
	var b [BlockSize]byte
	_, err := rand.Read(b[:])
	require.NoError(t, err)
	return b
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := NewCipher(randomKey(t))
	plain := randomBlock(t)
	cipherText := c.Encrypt(plain)
	require.NotEqual(t, plain, cipherText)
	require.Equal(t, plain, c.Decrypt(cipherText))
}

func TestEncryptIsDeterministic(t *testing.T) {
	key := randomKey(t)
	block := randomBlock(t)
	c1 := NewCipher(key)
	c2 := NewCipher(key)
	require.Equal(t, c1.Encrypt(block), c2.Encrypt(block))
}

func TestDifferentKeysDiverge(t *testing.T) {
	block := randomBlock(t)
	c1 := NewCipher(randomKey(t))
	c2 := NewCipher(randomKey(t))
	require.NotEqual(t, c1.Encrypt(block), c2.Encrypt(block))
}

func TestAvalanche(t *testing.T) {
	key := randomKey(t)
	c := NewCipher(key)
	block := randomBlock(t)
	out1 := c.Encrypt(block)

	block[0] ^= 1
	out2 := c.Encrypt(block)
	require.NotEqual(t, out1, out2)
}
