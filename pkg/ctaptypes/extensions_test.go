package ctaptypes

import (
	"testing"

	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/statuscode"
	"github.com/go-ctap/ctapauthn/pkg/webauthntypes"

	"github.com/ldclabs/cose/iana"
	"github.com/ldclabs/cose/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCOSEKeyTree() map[any]any {
	return map[any]any{
		ctapcbor.IntKey(int64(iana.KeyParameterKty)):    uint64(iana.KeyTypeEC2),
		ctapcbor.IntKey(int64(iana.KeyParameterAlg)):    int64(iana.AlgorithmECDH_ES_HKDF_256),
		ctapcbor.IntKey(int64(iana.EC2KeyParameterCrv)): uint64(iana.EllipticCurveP_256),
		ctapcbor.IntKey(int64(iana.EC2KeyParameterX)):   make([]byte, 32),
		ctapcbor.IntKey(int64(iana.EC2KeyParameterY)):   make([]byte, 32),
	}
}

func TestDecodeExtensions(t *testing.T) {
	exts, err := DecodeExtensions(map[any]any{
		"hmac-secret": true,
		"credBlob":    []byte{0x01},
	})
	require.NoError(t, err)
	assert.Len(t, exts, 2)

	// Non-text keys are malformed.
	_, err = DecodeExtensions(map[any]any{
		uint64(1): true,
	})
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)
}

func TestExtensionsCBORRoundTrip(t *testing.T) {
	exts := Extensions{
		webauthntypes.ExtensionIdentifierHMACSecret:     true,
		webauthntypes.ExtensionIdentifierCredentialBlob: []byte{0xca, 0xfe},
	}

	blob, err := ctapcbor.Marshal(exts.CBOR())
	require.NoError(t, err)
	node, err := ctapcbor.Unmarshal(blob)
	require.NoError(t, err)

	decoded, err := DecodeExtensions(node)
	require.NoError(t, err)
	assert.Equal(t, exts, decoded)
}

func TestMakeCredentialHMACSecret(t *testing.T) {
	ok, err := (Extensions{}).MakeCredentialHMACSecret()
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = (Extensions{
		webauthntypes.ExtensionIdentifierHMACSecret: true,
	}).MakeCredentialHMACSecret()
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = (Extensions{
		webauthntypes.ExtensionIdentifierHMACSecret: uint64(1),
	}).MakeCredentialHMACSecret()
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)
}

func TestGetAssertionHMACSecret(t *testing.T) {
	input, err := (Extensions{}).GetAssertionHMACSecret()
	require.NoError(t, err)
	assert.Nil(t, input)

	saltEnc := make([]byte, 32)
	saltAuth := make([]byte, 16)
	input, err = (Extensions{
		webauthntypes.ExtensionIdentifierHMACSecret: map[any]any{
			ctapcbor.IntKey(hmacSecretLabelKeyAgreement): testCOSEKeyTree(),
			ctapcbor.IntKey(hmacSecretLabelSaltEnc):      saltEnc,
			ctapcbor.IntKey(hmacSecretLabelSaltAuth):     saltAuth,
		},
	}).GetAssertionHMACSecret()
	require.NoError(t, err)
	assert.Equal(t, saltEnc, input.SaltEnc)
	assert.Equal(t, saltAuth, input.SaltAuth)
	assert.Equal(t, uint64(iana.KeyTypeEC2), input.KeyAgreement[iana.KeyParameterKty])
}

func TestGetAssertionHMACSecretErrors(t *testing.T) {
	_, err := (Extensions{
		webauthntypes.ExtensionIdentifierHMACSecret: map[any]any{
			ctapcbor.IntKey(hmacSecretLabelKeyAgreement): testCOSEKeyTree(),
			ctapcbor.IntKey(hmacSecretLabelSaltEnc):      make([]byte, 32),
		},
	}).GetAssertionHMACSecret()
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_MISSING_PARAMETER)

	_, err = (Extensions{
		webauthntypes.ExtensionIdentifierHMACSecret: []any{},
	}).GetAssertionHMACSecret()
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)

	// COSE key labels must be integers.
	_, err = (Extensions{
		webauthntypes.ExtensionIdentifierHMACSecret: map[any]any{
			ctapcbor.IntKey(hmacSecretLabelKeyAgreement): map[any]any{"kty": uint64(2)},
			ctapcbor.IntKey(hmacSecretLabelSaltEnc):      make([]byte, 32),
			ctapcbor.IntKey(hmacSecretLabelSaltAuth):     make([]byte, 16),
		},
	}).GetAssertionHMACSecret()
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)
}

func TestHMACSecretOutputRoundTrip(t *testing.T) {
	blob, err := ctapcbor.Marshal(HMACSecretOutput([]byte{0x01, 0x02, 0x03}).CBOR())
	require.NoError(t, err)
	node, err := ctapcbor.Unmarshal(blob)
	require.NoError(t, err)

	output, err := DecodeHMACSecretOutput(node)
	require.NoError(t, err)
	assert.Equal(t, HMACSecretOutput([]byte{0x01, 0x02, 0x03}), output)

	_, err = DecodeHMACSecretOutput("not bytes")
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)
}

func TestHMACSecretCBORRoundTrip(t *testing.T) {
	input := HMACSecret{
		KeyAgreement: key.Key{
			iana.KeyParameterKty:    uint64(iana.KeyTypeEC2),
			iana.KeyParameterAlg:    int64(iana.AlgorithmECDH_ES_HKDF_256),
			iana.EC2KeyParameterCrv: uint64(iana.EllipticCurveP_256),
			iana.EC2KeyParameterX:   make([]byte, 32),
			iana.EC2KeyParameterY:   make([]byte, 32),
		},
		SaltEnc:  make([]byte, 48),
		SaltAuth: make([]byte, 16),
	}

	blob, err := ctapcbor.Marshal(input.CBOR())
	require.NoError(t, err)
	node, err := ctapcbor.Unmarshal(blob)
	require.NoError(t, err)

	decoded, err := DecodeHMACSecret(node)
	require.NoError(t, err)
	assert.Equal(t, input.SaltEnc, decoded.SaltEnc)
	assert.Equal(t, input.SaltAuth, decoded.SaltAuth)
	assert.Equal(t, input.KeyAgreement, decoded.KeyAgreement)
}
