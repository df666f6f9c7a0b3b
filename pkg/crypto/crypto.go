// Package crypto holds the authenticator-side key agreement, the
// PIN/UV auth protocol state, and key material conversions.
package crypto

import (
	"crypto/ecdh"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"slices"

	"github.com/go-ctap/ctapauthn/pkg/crypto/pinprotocol"
	"github.com/go-ctap/ctapauthn/pkg/ctaptypes"
	"github.com/go-ctap/ctapauthn/pkg/statuscode"

	"github.com/ldclabs/cose/key"
)

// PinUvAuthProtocol is the authenticator half of one PIN/UV auth
// protocol session: an ephemeral P-256 keypair plus the version's
// cipher suite.
type PinUvAuthProtocol struct {
	Number     ctaptypes.PinUvAuthProtocol
	privateKey *ecdh.PrivateKey
	coseKey    key.Key
	proto      pinprotocol.Protocol
}

func NewPinUvAuthProtocol(number ctaptypes.PinUvAuthProtocol) (*PinUvAuthProtocol, error) {
	var proto pinprotocol.Protocol
	switch number {
	case ctaptypes.PinUvAuthProtocolOne:
		proto = pinprotocol.One{}
	case ctaptypes.PinUvAuthProtocolTwo:
		proto = pinprotocol.Two{}
	default:
		return nil, ErrInvalidAuthProtocol
	}

	privkey, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cannot generate authenticator P-256 keypair: %w", err)
	}

	return &PinUvAuthProtocol{
		Number:     number,
		privateKey: privkey,
		coseKey:    EncodeCOSEKey(privkey.Public().(*ecdh.PublicKey)),
		proto:      proto,
	}, nil
}

// KeyAgreement is the COSE_Key sent back for the getKeyAgreement
// sub-command.
func (p *PinUvAuthProtocol) KeyAgreement() key.Key {
	return p.coseKey
}

// SharedSecret runs ECDH against the platform's COSE_Key and applies
// the protocol KDF.
func (p *PinUvAuthProtocol) SharedSecret(platformCoseKey key.Key) ([]byte, error) {
	platformPubkey, err := DecodeCOSEKey(platformCoseKey)
	if err != nil {
		return nil, err
	}

	z, err := p.privateKey.ECDH(platformPubkey)
	if err != nil {
		return nil, fmt.Errorf("cannot derive shared secret: %w", err)
	}

	return p.proto.KDF(z)
}

func (p *PinUvAuthProtocol) Encrypt(sharedSecret, plaintext []byte) ([]byte, error) {
	return p.proto.Encrypt(sharedSecret, plaintext)
}

func (p *PinUvAuthProtocol) Decrypt(sharedSecret, ciphertext []byte) ([]byte, error) {
	return p.proto.Decrypt(sharedSecret, ciphertext)
}

func (p *PinUvAuthProtocol) Authenticate(key, message []byte) []byte {
	return p.proto.Authenticate(key, message)
}

func (p *PinUvAuthProtocol) Verify(key, message, signature []byte) bool {
	return p.proto.Verify(key, message, signature)
}

// EvaluateHMACSecret processes the get-assertion hmac-secret input
// against the credential's credRandom: verify saltAuth, decrypt one or
// two 32-byte salts, HMAC each with credRandom and encrypt the outputs
// under the same shared secret.
func (p *PinUvAuthProtocol) EvaluateHMACSecret(input *ctaptypes.HMACSecret, credRandom []byte) ([]byte, error) {
	sharedSecret, err := p.SharedSecret(input.KeyAgreement)
	if err != nil {
		return nil, err
	}

	if !p.Verify(sharedSecret, input.SaltEnc, input.SaltAuth) {
		return nil, statuscode.CTAP2_ERR_PIN_AUTH_INVALID
	}

	salts, err := p.Decrypt(sharedSecret, input.SaltEnc)
	if err != nil {
		return nil, err
	}
	if len(salts) != 32 && len(salts) != 64 {
		return nil, statuscode.CTAP1_ERR_INVALID_PARAMETER
	}

	var outputs []byte
	for len(salts) > 0 {
		hasher := hmac.New(sha256.New, credRandom)
		hasher.Write(salts[:32])
		outputs = slices.Concat(outputs, hasher.Sum(nil))
		salts = salts[32:]
	}

	return p.Encrypt(sharedSecret, outputs)
}
