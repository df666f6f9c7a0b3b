package ctaptypes

import (
	"testing"

	"github.com/go-ctap/ctapauthn/pkg/statuscode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMakeCredentialOptions(t *testing.T) {
	opts, err := DecodeMakeCredentialOptions(map[any]any{})
	require.NoError(t, err)
	assert.False(t, opts.RK)
	assert.False(t, opts.UV)

	opts, err = DecodeMakeCredentialOptions(map[any]any{
		"rk": true,
		"uv": true,
	})
	require.NoError(t, err)
	assert.True(t, opts.RK)
	assert.True(t, opts.UV)

	// "up":true is accepted; it only restates the default.
	opts, err = DecodeMakeCredentialOptions(map[any]any{
		"up": true,
	})
	require.NoError(t, err)
	assert.False(t, opts.RK)
}

func TestDecodeMakeCredentialOptionsUserPresence(t *testing.T) {
	_, err := DecodeMakeCredentialOptions(map[any]any{
		"up": false,
	})
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_INVALID_OPTION)

	// A non-boolean value reports the type error, not the option error.
	_, err = DecodeMakeCredentialOptions(map[any]any{
		"up": "yes",
	})
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)

	_, err = DecodeMakeCredentialOptions(map[any]any{
		"rk": uint64(1),
	})
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)
}

func TestDecodeGetAssertionOptions(t *testing.T) {
	opts, err := DecodeGetAssertionOptions(map[any]any{})
	require.NoError(t, err)
	assert.True(t, opts.UP)
	assert.False(t, opts.UV)

	opts, err = DecodeGetAssertionOptions(map[any]any{
		"up": false,
		"uv": true,
	})
	require.NoError(t, err)
	assert.False(t, opts.UP)
	assert.True(t, opts.UV)
}

func TestDecodeGetAssertionOptionsResidentKeys(t *testing.T) {
	// "rk" is not a getAssertion option at all, whatever the value.
	for _, value := range []any{true, false} {
		_, err := DecodeGetAssertionOptions(map[any]any{
			"rk": value,
		})
		assert.ErrorIs(t, err, statuscode.CTAP2_ERR_INVALID_OPTION)
	}

	// But a malformed entry still reports the type error first.
	_, err := DecodeGetAssertionOptions(map[any]any{
		"rk": uint64(1),
	})
	assert.ErrorIs(t, err, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE)
}
