package ctaptypes

import (
	"math"

	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/statuscode"
	"github.com/go-ctap/ctapauthn/pkg/webauthntypes"

	"github.com/ldclabs/cose/key"
)

// Extensions is the extensions bag of a request. Values stay as raw tree
// nodes: the authenticator supports a strict subset of extensions and must
// still accept messages carrying ones it ignores, so payloads are only
// validated when the typed accessor for a known name is called.
type Extensions map[webauthntypes.ExtensionIdentifier]any

// DecodeExtensions collects every entry. Keys must be text strings;
// values are taken as-is.
func DecodeExtensions(v any) (Extensions, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	exts := make(Extensions, len(m))
	for k, entry := range m {
		name, err := ctapcbor.ReadTextString(k)
		if err != nil {
			return nil, err
		}
		exts[webauthntypes.ExtensionIdentifier(name)] = entry
	}
	return exts, nil
}

func (e Extensions) CBOR() any {
	m := make(map[any]any, len(e))
	for name, entry := range e {
		m[string(name)] = entry
	}
	return m
}

// MakeCredentialHMACSecret reports whether the make-credential request asks
// for hmac-secret. An absent entry means false; a present non-boolean entry
// is a type error.
func (e Extensions) MakeCredentialHMACSecret() (bool, error) {
	entry, ok := e[webauthntypes.ExtensionIdentifierHMACSecret]
	if !ok {
		return false, nil
	}
	return ctapcbor.ReadBool(entry)
}

// HMACSecret is the get-assertion hmac-secret extension input. All three
// fields are required when the extension is present.
type HMACSecret struct {
	KeyAgreement key.Key
	SaltEnc      []byte
	SaltAuth     []byte
}

const (
	hmacSecretLabelKeyAgreement int64 = 1
	hmacSecretLabelSaltEnc      int64 = 2
	hmacSecretLabelSaltAuth     int64 = 3
)

// GetAssertionHMACSecret returns the hmac-secret input of a get-assertion
// request. Absence is (nil, nil); a present but malformed payload is an
// error.
func (e Extensions) GetAssertionHMACSecret() (*HMACSecret, error) {
	entry, ok := e[webauthntypes.ExtensionIdentifierHMACSecret]
	if !ok {
		return nil, nil
	}
	return DecodeHMACSecret(entry)
}

func DecodeHMACSecret(v any) (*HMACSecret, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	keyRaw, err := ctapcbor.RequireEntry(m, ctapcbor.IntKey(hmacSecretLabelKeyAgreement))
	if err != nil {
		return nil, err
	}
	keyAgreement, err := readCOSEKey(keyRaw)
	if err != nil {
		return nil, err
	}
	saltEncRaw, err := ctapcbor.RequireEntry(m, ctapcbor.IntKey(hmacSecretLabelSaltEnc))
	if err != nil {
		return nil, err
	}
	saltEnc, err := ctapcbor.ReadByteString(saltEncRaw)
	if err != nil {
		return nil, err
	}
	saltAuthRaw, err := ctapcbor.RequireEntry(m, ctapcbor.IntKey(hmacSecretLabelSaltAuth))
	if err != nil {
		return nil, err
	}
	saltAuth, err := ctapcbor.ReadByteString(saltAuthRaw)
	if err != nil {
		return nil, err
	}
	return &HMACSecret{
		KeyAgreement: keyAgreement,
		SaltEnc:      saltEnc,
		SaltAuth:     saltAuth,
	}, nil
}

func (h HMACSecret) CBOR() any {
	keyAgreement := make(map[any]any, len(h.KeyAgreement))
	for label, entry := range h.KeyAgreement {
		keyAgreement[label] = entry
	}
	return map[any]any{
		ctapcbor.IntKey(hmacSecretLabelKeyAgreement): keyAgreement,
		ctapcbor.IntKey(hmacSecretLabelSaltEnc):      h.SaltEnc,
		ctapcbor.IntKey(hmacSecretLabelSaltAuth):     h.SaltAuth,
	}
}

// HMACSecretOutput is the encrypted extension output returned with an
// assertion.
type HMACSecretOutput []byte

func DecodeHMACSecretOutput(v any) (HMACSecretOutput, error) {
	b, err := ctapcbor.ReadByteString(v)
	if err != nil {
		return nil, err
	}
	return HMACSecretOutput(b), nil
}

func (o HMACSecretOutput) CBOR() any {
	return []byte(o)
}

// readCOSEKey re-keys a decoded tree map by its integer labels so it can be
// handled as a COSE key map. Non-integer labels are rejected; values keep
// their wire form until the key-agreement adapter validates them.
func readCOSEKey(v any) (key.Key, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	coseKey := make(key.Key, len(m))
	for k, entry := range m {
		switch label := k.(type) {
		case uint64:
			if label > math.MaxInt32 {
				return nil, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
			}
			coseKey[int(label)] = entry
		case int64:
			coseKey[int(label)] = entry
		case int:
			coseKey[label] = entry
		default:
			return nil, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
		}
	}
	return coseKey, nil
}
