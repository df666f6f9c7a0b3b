package ctaptypes

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"

	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"

	"github.com/google/uuid"
	"github.com/ldclabs/cose/key"
)

var ErrInvalidAuthData = errors.New("ctaptypes: malformed authenticator data")

type AuthDataFlag byte

const (
	AuthDataFlagUserPresent AuthDataFlag = 1 << iota
	_
	AuthDataFlagUserVerified
	_
	_
	_
	AuthDataFlagAttestedCredentialDataIncluded
	AuthDataFlagExtensionDataIncluded
)

func (f AuthDataFlag) UserPresent() bool {
	return f&AuthDataFlagUserPresent != 0
}
func (f AuthDataFlag) UserVerified() bool {
	return f&AuthDataFlagUserVerified != 0
}
func (f AuthDataFlag) AttestedCredentialDataIncluded() bool {
	return f&AuthDataFlagAttestedCredentialDataIncluded != 0
}
func (f AuthDataFlag) ExtensionDataIncluded() bool {
	return f&AuthDataFlagExtensionDataIncluded != 0
}

type AttestedCredentialData struct {
	AAGUID              uuid.UUID
	CredentialID        []byte
	CredentialPublicKey key.Key
}

// AuthData is the authenticator data structure covered by attestation and
// assertion signatures.
type AuthData struct {
	RPIDHash               []byte
	Flags                  AuthDataFlag
	SignCount              uint32
	AttestedCredentialData *AttestedCredentialData
	Extensions             []byte // raw CBOR map, already encoded
}

// MarshalBinary produces the signed byte layout. The attested-credential
// and extension flag bits are derived from what is actually present.
func (d *AuthData) MarshalBinary() ([]byte, error) {
	if len(d.RPIDHash) != 32 {
		return nil, ErrInvalidAuthData
	}

	flags := d.Flags
	if d.AttestedCredentialData != nil {
		flags |= AuthDataFlagAttestedCredentialDataIncluded
	}
	if d.Extensions != nil {
		flags |= AuthDataFlagExtensionDataIncluded
	}

	buf := new(bytes.Buffer)
	buf.Write(d.RPIDHash)
	buf.WriteByte(byte(flags))
	_ = binary.Write(buf, binary.BigEndian, d.SignCount)

	if credData := d.AttestedCredentialData; credData != nil {
		if len(credData.CredentialID) > math.MaxUint16 {
			return nil, ErrInvalidAuthData
		}
		buf.Write(credData.AAGUID[:])
		_ = binary.Write(buf, binary.BigEndian, uint16(len(credData.CredentialID)))
		buf.Write(credData.CredentialID)
		pubKey, err := ctapcbor.Marshal(credData.CredentialPublicKey)
		if err != nil {
			return nil, err
		}
		buf.Write(pubKey)
	}

	if d.Extensions != nil {
		buf.Write(d.Extensions)
	}

	return buf.Bytes(), nil
}

// ParseAuthData is the inverse of MarshalBinary. It is used on stored
// blobs and in tests, so every length is checked.
func ParseAuthData(data []byte) (*AuthData, error) {
	if len(data) < 37 {
		return nil, ErrInvalidAuthData
	}

	d := &AuthData{
		RPIDHash:  data[:32],
		Flags:     AuthDataFlag(data[32]),
		SignCount: binary.BigEndian.Uint32(data[33:37]),
	}
	offset := 37

	if d.Flags.AttestedCredentialDataIncluded() {
		if len(data) < offset+18 {
			return nil, ErrInvalidAuthData
		}
		credData := &AttestedCredentialData{
			AAGUID: uuid.UUID(data[offset : offset+16]),
		}
		offset += 16

		length := int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if len(data) < offset+length {
			return nil, ErrInvalidAuthData
		}
		credData.CredentialID = data[offset : offset+length]
		offset += length

		dec := ctapcbor.DecMode().NewDecoder(bytes.NewReader(data[offset:]))
		var node any
		if err := dec.Decode(&node); err != nil {
			return nil, ErrInvalidAuthData
		}
		pubKey, err := readCOSEKey(node)
		if err != nil {
			return nil, ErrInvalidAuthData
		}
		credData.CredentialPublicKey = pubKey
		offset += dec.NumBytesRead()

		d.AttestedCredentialData = credData
	}

	if d.Flags.ExtensionDataIncluded() {
		if offset >= len(data) {
			return nil, ErrInvalidAuthData
		}
		d.Extensions = data[offset:]
	}

	return d, nil
}
