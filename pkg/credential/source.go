// Package credential persists public key credential sources as CBOR
// blobs.
package credential

import (
	"crypto/ecdsa"

	"github.com/go-ctap/ctapauthn/pkg/crypto"
	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/webauthntypes"

	"github.com/samber/mo"
)

// Storage tags. The blob format is append-only: new fields get new
// tags, and unknown tags are skipped on read so newer blobs stay
// readable by older firmware. Reserved tags: none.
const (
	tagCredentialID uint64 = iota
	tagPrivateKey
	tagRPID
	tagUserHandle
	tagOtherUI
	tagCredRandom
)

// Source is a stored public key credential source. Type is always
// public-key today but is kept explicit so the storage format does not
// have to change when another type appears.
type Source struct {
	Type       webauthntypes.PublicKeyCredentialType
	ID         []byte
	PrivateKey *ecdsa.PrivateKey
	RPID       string
	UserHandle []byte
	OtherUI    mo.Option[string]
	CredRandom mo.Option[[]byte]
}

func (s *Source) CBOR() any {
	m := map[any]any{
		tagCredentialID: s.ID,
		tagPrivateKey:   crypto.ES256PrivateKeyBytes(s.PrivateKey),
		tagRPID:         s.RPID,
		tagUserHandle:   s.UserHandle,
	}
	if ui, ok := s.OtherUI.Get(); ok {
		m[tagOtherUI] = ui
	}
	if credRandom, ok := s.CredRandom.Get(); ok {
		m[tagCredRandom] = credRandom
	}
	return m
}

// DecodeSource reads a stored source tree. Unknown tags are dropped
// without error; missing required tags are CTAP2_ERR_MISSING_PARAMETER.
func DecodeSource(v any) (*Source, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}

	idRaw, err := ctapcbor.RequireEntry(m, tagCredentialID)
	if err != nil {
		return nil, err
	}
	id, err := ctapcbor.ReadByteString(idRaw)
	if err != nil {
		return nil, err
	}

	privRaw, err := ctapcbor.RequireEntry(m, tagPrivateKey)
	if err != nil {
		return nil, err
	}
	privBytes, err := ctapcbor.ReadByteString(privRaw)
	if err != nil {
		return nil, err
	}
	priv, err := crypto.ES256PrivateKeyFromBytes(privBytes)
	if err != nil {
		return nil, err
	}

	rpIDRaw, err := ctapcbor.RequireEntry(m, tagRPID)
	if err != nil {
		return nil, err
	}
	rpID, err := ctapcbor.ReadTextString(rpIDRaw)
	if err != nil {
		return nil, err
	}

	userHandleRaw, err := ctapcbor.RequireEntry(m, tagUserHandle)
	if err != nil {
		return nil, err
	}
	userHandle, err := ctapcbor.ReadByteString(userHandleRaw)
	if err != nil {
		return nil, err
	}

	otherUI := mo.None[string]()
	if entry, ok := m[tagOtherUI]; ok {
		ui, err := ctapcbor.ReadTextString(entry)
		if err != nil {
			return nil, err
		}
		otherUI = mo.Some(ui)
	}

	credRandom := mo.None[[]byte]()
	if entry, ok := m[tagCredRandom]; ok {
		b, err := ctapcbor.ReadByteString(entry)
		if err != nil {
			return nil, err
		}
		credRandom = mo.Some(b)
	}

	return &Source{
		Type:       webauthntypes.PublicKeyCredentialTypePublicKey,
		ID:         id,
		PrivateKey: priv,
		RPID:       rpID,
		UserHandle: userHandle,
		OtherUI:    otherUI,
		CredRandom: credRandom,
	}, nil
}

// MarshalBinary encodes the source as a canonical CBOR blob.
func (s *Source) MarshalBinary() ([]byte, error) {
	return ctapcbor.Marshal(s.CBOR())
}

// UnmarshalBinary decodes a blob produced by MarshalBinary. Truncated
// or otherwise malformed blobs are CTAP2_ERR_INVALID_CBOR.
func (s *Source) UnmarshalBinary(data []byte) error {
	v, err := ctapcbor.Unmarshal(data)
	if err != nil {
		return err
	}
	decoded, err := DecodeSource(v)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}
