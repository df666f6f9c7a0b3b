package webauthntypes

import (
	"github.com/ldclabs/cose/iana"
	"github.com/ldclabs/cose/key"
	"github.com/samber/mo"
)

type (
	// PublicKeyCredentialType defines the valid credential types.
	// https://www.w3.org/TR/webauthn-3/#enumdef-publickeycredentialtype
	PublicKeyCredentialType string
	// AuthenticatorTransport defines hints as to how clients might communicate
	// with a particular authenticator in order to obtain an assertion for a specific credential.
	// https://www.w3.org/TR/webauthn-3/#enumdef-authenticatortransport
	AuthenticatorTransport string
	// SignatureAlgorithm is a COSE algorithm identifier for credential signing keys.
	SignatureAlgorithm key.Alg
	// ExtensionIdentifier is an enum consisting of IANA registered Extension Identifiers.
	// https://www.iana.org/assignments/webauthn/webauthn.xhtml
	ExtensionIdentifier string
)

const (
	PublicKeyCredentialTypePublicKey PublicKeyCredentialType = "public-key"
	// PublicKeyCredentialTypeUnknown absorbs type strings the authenticator
	// does not recognize. Such entries are ignored, not rejected, so requests
	// carrying future credential types keep working.
	PublicKeyCredentialTypeUnknown PublicKeyCredentialType = "unknown"
)

const (
	AuthenticatorTransportUSB      AuthenticatorTransport = "usb"
	AuthenticatorTransportNFC      AuthenticatorTransport = "nfc"
	AuthenticatorTransportBLE      AuthenticatorTransport = "ble"
	AuthenticatorTransportInternal AuthenticatorTransport = "internal"
)

const (
	SignatureAlgorithmES256 = SignatureAlgorithm(iana.AlgorithmES256)
	// SignatureAlgorithmUnknown absorbs algorithm codes the authenticator
	// does not recognize, mirroring PublicKeyCredentialTypeUnknown.
	SignatureAlgorithmUnknown SignatureAlgorithm = 0
)

const (
	ExtensionIdentifierHMACSecret           ExtensionIdentifier = "hmac-secret"
	ExtensionIdentifierCredentialProtection ExtensionIdentifier = "credProtect"
	ExtensionIdentifierCredentialBlob       ExtensionIdentifier = "credBlob"
	ExtensionIdentifierLargeBlobKey         ExtensionIdentifier = "largeBlobKey"
	ExtensionIdentifierMinPinLength         ExtensionIdentifier = "minPinLength"
)

// PublicKeyCredentialRpEntity is used to supply additional Relying Party attributes when creating a new credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialrpentity
type PublicKeyCredentialRpEntity struct {
	ID   string
	Name mo.Option[string]
	Icon mo.Option[string] // deprecated upstream, still on the wire
}

// PublicKeyCredentialUserEntity is used to supply additional user account attributes when creating a new credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialuserentity
type PublicKeyCredentialUserEntity struct {
	ID          []byte
	Name        mo.Option[string]
	DisplayName mo.Option[string]
	Icon        mo.Option[string]
}

// PublicKeyCredentialParameters is used to supply additional parameters when creating a new credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialparameters
type PublicKeyCredentialParameters struct {
	Type      PublicKeyCredentialType
	Algorithm SignatureAlgorithm
}

// PublicKeyCredentialDescriptor identifies a specific public key credential.
// https://www.w3.org/TR/webauthn-3/#dictdef-publickeycredentialdescriptor
type PublicKeyCredentialDescriptor struct {
	Type PublicKeyCredentialType
	ID   []byte
	// Transports is nil when the descriptor carries no transport hints.
	Transports []AuthenticatorTransport
}

// PackedAttestationStatementFormat is a WebAuthn optimized attestation statement format.
// The authenticator only produces it, so there is no decoder.
// https://www.w3.org/TR/webauthn-3/#sctn-packed-attestation
type PackedAttestationStatementFormat struct {
	Algorithm  key.Alg
	Signature  []byte
	X509Chain  [][]byte
	ECDAAKeyID mo.Option[[]byte]
}
