package pinprotocol

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolOneRoundTrip(t *testing.T) {
	proto := One{}

	z := make([]byte, 32)
	_, err := rand.Read(z)
	require.NoError(t, err)

	sharedSecret, err := proto.KDF(z)
	require.NoError(t, err)
	assert.Len(t, sharedSecret, 32)

	plaintext := make([]byte, 64)
	_, err = rand.Read(plaintext)
	require.NoError(t, err)

	ciphertext, err := proto.Encrypt(sharedSecret, plaintext)
	require.NoError(t, err)
	assert.Len(t, ciphertext, 64)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := proto.Decrypt(sharedSecret, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestProtocolOneRejectsBadLengths(t *testing.T) {
	proto := One{}
	sharedSecret := make([]byte, 32)

	_, err := proto.Encrypt(sharedSecret, make([]byte, 33))
	assert.Error(t, err)

	_, err = proto.Encrypt(make([]byte, 16), make([]byte, 32))
	assert.Error(t, err)

	_, err = proto.Decrypt(sharedSecret, make([]byte, 17))
	assert.Error(t, err)
}

func TestProtocolOneAuthenticate(t *testing.T) {
	proto := One{}
	key := make([]byte, 32)
	message := []byte("salt enc")

	signature := proto.Authenticate(key, message)
	assert.Len(t, signature, 16)
	assert.True(t, proto.Verify(key, message, signature))
	assert.False(t, proto.Verify(key, []byte("other"), signature))
}

func TestProtocolTwoRoundTrip(t *testing.T) {
	proto := Two{}

	z := make([]byte, 32)
	_, err := rand.Read(z)
	require.NoError(t, err)

	sharedSecret, err := proto.KDF(z)
	require.NoError(t, err)
	assert.Len(t, sharedSecret, 64)

	plaintext := make([]byte, 32)
	_, err = rand.Read(plaintext)
	require.NoError(t, err)

	ciphertext, err := proto.Encrypt(sharedSecret, plaintext)
	require.NoError(t, err)
	// Random IV is prepended.
	assert.Len(t, ciphertext, 48)

	// Same plaintext encrypts differently every time.
	ciphertext2, err := proto.Encrypt(sharedSecret, plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, ciphertext, ciphertext2)

	decrypted, err := proto.Decrypt(sharedSecret, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestProtocolTwoRejectsBadLengths(t *testing.T) {
	proto := Two{}
	sharedSecret := make([]byte, 64)

	_, err := proto.Encrypt(sharedSecret, make([]byte, 31))
	assert.Error(t, err)

	_, err = proto.Encrypt(make([]byte, 32), make([]byte, 32))
	assert.Error(t, err)

	_, err = proto.Decrypt(sharedSecret, make([]byte, 8))
	assert.Error(t, err)

	_, err = proto.Decrypt(sharedSecret, make([]byte, 41))
	assert.Error(t, err)
}

func TestProtocolTwoAuthenticate(t *testing.T) {
	proto := Two{}
	sharedSecret := make([]byte, 64)
	message := []byte("salt enc")

	signature := proto.Authenticate(sharedSecret, message)
	assert.Len(t, signature, 32)
	assert.True(t, proto.Verify(sharedSecret, message, signature))
	assert.False(t, proto.Verify(sharedSecret, []byte("other"), signature))
}
