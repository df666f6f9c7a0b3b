// Package pinprotocol implements the two PIN/UV auth protocol cipher
// suites. Both sides of the key agreement share these primitives; the
// authenticator additionally verifies parameter signatures with Verify.
package pinprotocol

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"slices"

	"golang.org/x/crypto/hkdf"
)

// Protocol is one PIN/UV auth protocol version. Encrypt and Decrypt take
// the full shared secret; each version selects its own key portion.
type Protocol interface {
	KDF(z []byte) ([]byte, error)
	Encrypt(sharedSecret, plaintext []byte) ([]byte, error)
	Decrypt(sharedSecret, ciphertext []byte) ([]byte, error)
	Authenticate(key, message []byte) []byte
	Verify(key, message, signature []byte) bool
}

// One is PIN/UV auth protocol one: SHA-256 KDF, AES-256-CBC with a zero
// IV, HMAC-SHA-256 truncated to 16 bytes.
type One struct{}

func (One) KDF(z []byte) ([]byte, error) {
	hasher := sha256.New()
	hasher.Write(z)
	return hasher.Sum(nil), nil
}

func (One) Encrypt(sharedSecret, plaintext []byte) ([]byte, error) {
	if len(sharedSecret) != 32 {
		return nil, fmt.Errorf("invalid shared secret length")
	}
	if len(plaintext)%16 != 0 {
		return nil, fmt.Errorf("invalid plaintext length")
	}

	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, fmt.Errorf("cannot create new AES cipher: %w", err)
	}

	iv := make([]byte, block.BlockSize())
	ciphertext := make([]byte, len(plaintext))

	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext, plaintext)

	return ciphertext, nil
}

func (One) Decrypt(sharedSecret, ciphertext []byte) ([]byte, error) {
	if len(sharedSecret) != 32 {
		return nil, fmt.Errorf("invalid shared secret length")
	}
	if len(ciphertext)%16 != 0 {
		return nil, errors.New("invalid ciphertext")
	}

	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return nil, fmt.Errorf("cannot create new AES cipher: %w", err)
	}

	iv := make([]byte, block.BlockSize())
	plaintext := make([]byte, len(ciphertext))

	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, ciphertext)

	return plaintext, nil
}

func (One) Authenticate(key, message []byte) []byte {
	hasher := hmac.New(sha256.New, key)
	hasher.Write(message)
	return hasher.Sum(nil)[:16]
}

func (p One) Verify(key, message, signature []byte) bool {
	return hmac.Equal(signature, p.Authenticate(key, message))
}

// Two is PIN/UV auth protocol two: HKDF-SHA-256 derives separate HMAC
// and AES keys, AES-256-CBC with a random IV prepended to the
// ciphertext, full-length HMAC-SHA-256.
type Two struct{}

func (Two) KDF(z []byte) ([]byte, error) {
	// Zero bytes for salt
	salt := make([]byte, 32)

	hmacKey := make([]byte, 32)
	if _, err := io.ReadFull(
		hkdf.New(sha256.New, z, salt, []byte("CTAP2 HMAC key")),
		hmacKey,
	); err != nil {
		return nil, fmt.Errorf("calculating CTAP2 HMAC key using HKDF failed: %w", err)
	}

	aesKey := make([]byte, 32)
	if _, err := io.ReadFull(
		hkdf.New(sha256.New, z, salt, []byte("CTAP2 AES key")),
		aesKey,
	); err != nil {
		return nil, fmt.Errorf("calculating CTAP2 AES key using HKDF failed: %w", err)
	}

	return slices.Concat(hmacKey, aesKey), nil
}

func (Two) Encrypt(sharedSecret, plaintext []byte) ([]byte, error) {
	if len(sharedSecret) != 64 {
		return nil, fmt.Errorf("invalid shared secret length")
	}
	if len(plaintext)%16 != 0 {
		return nil, fmt.Errorf("invalid plaintext length")
	}

	// Discard the first 32 bytes of the key.
	// (This selects the AES-key portion of the shared secret.)
	key := sharedSecret[32:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cannot create new AES cipher: %w", err)
	}

	iv := make([]byte, 16)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("cannot generate random iv: %w", err)
	}
	ciphertext := make([]byte, len(plaintext))

	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext, plaintext)

	return slices.Concat(iv, ciphertext), nil
}

func (Two) Decrypt(sharedSecret, ciphertext []byte) ([]byte, error) {
	if len(sharedSecret) != 64 {
		return nil, fmt.Errorf("invalid shared secret length")
	}

	// Discard the first 32 bytes of the key.
	// (This selects the AES-key portion of the shared secret.)
	key := sharedSecret[32:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cannot create new AES cipher: %w", err)
	}

	if len(ciphertext) < block.BlockSize() || (len(ciphertext)-block.BlockSize())%16 != 0 {
		return nil, errors.New("invalid ciphertext")
	}

	iv := ciphertext[:16]
	body := ciphertext[16:]
	plaintext := make([]byte, len(body))

	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, body)

	return plaintext, nil
}

func (Two) Authenticate(key, message []byte) []byte {
	// If the key is longer than 32 bytes, discard the excess.
	// (This selects the HMAC-key portion of the shared secret.
	// When the key is the pinUvAuthToken, it is exactly 32 bytes long,
	// and thus this step has no effect.)
	hasher := hmac.New(sha256.New, key[:32])
	hasher.Write(message)
	return hasher.Sum(nil)
}

func (p Two) Verify(key, message, signature []byte) bool {
	return hmac.Equal(signature, p.Authenticate(key, message))
}
