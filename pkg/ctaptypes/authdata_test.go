package ctaptypes

import (
	"crypto/sha256"
	"testing"

	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"

	"github.com/google/uuid"
	"github.com/ldclabs/cose/iana"
	"github.com/ldclabs/cose/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentialPublicKey() key.Key {
	x := make([]byte, 32)
	y := make([]byte, 32)
	x[31] = 0x01
	y[31] = 0x02
	return key.Key{
		iana.KeyParameterKty:    uint64(iana.KeyTypeEC2),
		iana.KeyParameterAlg:    int64(iana.AlgorithmES256),
		iana.EC2KeyParameterCrv: uint64(iana.EllipticCurveP_256),
		iana.EC2KeyParameterX:   x,
		iana.EC2KeyParameterY:   y,
	}
}

func TestAuthDataRoundTrip(t *testing.T) {
	rpIDHash := sha256.Sum256([]byte("example.com"))
	extensions, err := ctapcbor.Marshal(map[any]any{
		"hmac-secret": true,
	})
	require.NoError(t, err)

	authData := &AuthData{
		RPIDHash:  rpIDHash[:],
		Flags:     AuthDataFlagUserPresent | AuthDataFlagUserVerified,
		SignCount: 42,
		AttestedCredentialData: &AttestedCredentialData{
			AAGUID:              uuid.MustParse("eabb46cc-e241-80bf-ae9e-96cb641a3601"),
			CredentialID:        []byte{0xde, 0xad, 0xbe, 0xef},
			CredentialPublicKey: testCredentialPublicKey(),
		},
		Extensions: extensions,
	}

	bin, err := authData.MarshalBinary()
	require.NoError(t, err)

	parsed, err := ParseAuthData(bin)
	require.NoError(t, err)
	assert.Equal(t, authData.RPIDHash, parsed.RPIDHash)
	assert.Equal(t, uint32(42), parsed.SignCount)
	assert.True(t, parsed.Flags.UserPresent())
	assert.True(t, parsed.Flags.UserVerified())
	assert.True(t, parsed.Flags.AttestedCredentialDataIncluded())
	assert.True(t, parsed.Flags.ExtensionDataIncluded())
	assert.Equal(t, authData.AttestedCredentialData, parsed.AttestedCredentialData)
	assert.Equal(t, extensions, parsed.Extensions)
}

func TestAuthDataWithoutAttestedCredentialData(t *testing.T) {
	rpIDHash := sha256.Sum256([]byte("example.com"))
	authData := &AuthData{
		RPIDHash:  rpIDHash[:],
		Flags:     AuthDataFlagUserPresent,
		SignCount: 7,
	}

	bin, err := authData.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, bin, 37)

	parsed, err := ParseAuthData(bin)
	require.NoError(t, err)
	assert.Nil(t, parsed.AttestedCredentialData)
	assert.Nil(t, parsed.Extensions)
}

func TestAuthDataMarshalErrors(t *testing.T) {
	_, err := (&AuthData{RPIDHash: []byte("short")}).MarshalBinary()
	assert.ErrorIs(t, err, ErrInvalidAuthData)
}

func TestParseAuthDataMalformed(t *testing.T) {
	_, err := ParseAuthData(make([]byte, 36))
	assert.ErrorIs(t, err, ErrInvalidAuthData)

	// Attested-data flag set but nothing follows the header.
	header := make([]byte, 37)
	header[32] = byte(AuthDataFlagAttestedCredentialDataIncluded)
	_, err = ParseAuthData(header)
	assert.ErrorIs(t, err, ErrInvalidAuthData)

	// Extension flag set with no extension bytes.
	header = make([]byte, 37)
	header[32] = byte(AuthDataFlagExtensionDataIncluded)
	_, err = ParseAuthData(header)
	assert.ErrorIs(t, err, ErrInvalidAuthData)

	// Credential ID length runs past the buffer.
	rpIDHash := sha256.Sum256([]byte("example.com"))
	authData := &AuthData{
		RPIDHash: rpIDHash[:],
		AttestedCredentialData: &AttestedCredentialData{
			AAGUID:              uuid.New(),
			CredentialID:        []byte{0x01, 0x02, 0x03, 0x04},
			CredentialPublicKey: testCredentialPublicKey(),
		},
	}
	bin, err := authData.MarshalBinary()
	require.NoError(t, err)
	_, err = ParseAuthData(bin[:55])
	assert.ErrorIs(t, err, ErrInvalidAuthData)
}
