package ctaptypes

import (
	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/statuscode"
)

type Command byte

const (
	AuthenticatorMakeCredential   Command = 0x01
	AuthenticatorGetAssertion     Command = 0x02
	AuthenticatorGetInfo          Command = 0x04
	AuthenticatorClientPIN        Command = 0x06
	AuthenticatorReset            Command = 0x07
	AuthenticatorGetNextAssertion Command = 0x08
	AuthenticatorSelection        Command = 0x0b
)

type ClientPINSubCommand byte

const (
	ClientPINSubCommandGetPINRetries ClientPINSubCommand = iota + 1
	ClientPINSubCommandGetKeyAgreement
	ClientPINSubCommandSetPIN
	ClientPINSubCommandChangePIN
	ClientPINSubCommandGetPinUvAuthTokenUsingPIN
	ClientPINSubCommandGetPinUvAuthTokenUsingUV
	ClientPINSubCommandGetUVRetries
)

// DecodeClientPINSubCommand is strict: sub-commands select PIN-management
// behavior, so an unrecognized code is rejected instead of mapped to a
// sentinel.
func DecodeClientPINSubCommand(v any) (ClientPINSubCommand, error) {
	n, err := ctapcbor.ReadUnsigned(v)
	if err != nil {
		return 0, err
	}
	if n < uint64(ClientPINSubCommandGetPINRetries) || n > uint64(ClientPINSubCommandGetUVRetries) {
		return 0, statuscode.CTAP1_ERR_INVALID_PARAMETER
	}
	return ClientPINSubCommand(n), nil
}

func (c ClientPINSubCommand) CBOR() any {
	return uint64(c)
}

type Option string

const (
	OptionResidentKeys     Option = "rk"
	OptionUserPresence     Option = "up"
	OptionUserVerification Option = "uv"
)

type PinUvAuthProtocol uint

const (
	PinUvAuthProtocolOne PinUvAuthProtocol = iota + 1
	PinUvAuthProtocolTwo
)
