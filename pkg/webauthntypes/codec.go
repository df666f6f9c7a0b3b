package webauthntypes

import (
	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/statuscode"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// optionalText reads a text value for key if the entry exists. Absence is
// not an error; a present entry of the wrong type is.
func optionalText(m map[any]any, key string) (mo.Option[string], error) {
	v, ok := m[key]
	if !ok {
		return mo.None[string](), nil
	}
	s, err := ctapcbor.ReadTextString(v)
	if err != nil {
		return mo.None[string](), err
	}
	return mo.Some(s), nil
}

func setOptionalText(m map[any]any, key string, v mo.Option[string]) {
	if s, ok := v.Get(); ok {
		m[key] = s
	}
}

func DecodePublicKeyCredentialRpEntity(v any) (*PublicKeyCredentialRpEntity, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	idRaw, err := ctapcbor.RequireEntry(m, "id")
	if err != nil {
		return nil, err
	}
	id, err := ctapcbor.ReadTextString(idRaw)
	if err != nil {
		return nil, err
	}
	name, err := optionalText(m, "name")
	if err != nil {
		return nil, err
	}
	icon, err := optionalText(m, "icon")
	if err != nil {
		return nil, err
	}
	return &PublicKeyCredentialRpEntity{
		ID:   id,
		Name: name,
		Icon: icon,
	}, nil
}

func (e PublicKeyCredentialRpEntity) CBOR() any {
	m := map[any]any{
		"id": e.ID,
	}
	setOptionalText(m, "name", e.Name)
	setOptionalText(m, "icon", e.Icon)
	return m
}

func DecodePublicKeyCredentialUserEntity(v any) (*PublicKeyCredentialUserEntity, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	idRaw, err := ctapcbor.RequireEntry(m, "id")
	if err != nil {
		return nil, err
	}
	id, err := ctapcbor.ReadByteString(idRaw)
	if err != nil {
		return nil, err
	}
	name, err := optionalText(m, "name")
	if err != nil {
		return nil, err
	}
	displayName, err := optionalText(m, "displayName")
	if err != nil {
		return nil, err
	}
	icon, err := optionalText(m, "icon")
	if err != nil {
		return nil, err
	}
	return &PublicKeyCredentialUserEntity{
		ID:          id,
		Name:        name,
		DisplayName: displayName,
		Icon:        icon,
	}, nil
}

func (e PublicKeyCredentialUserEntity) CBOR() any {
	m := map[any]any{
		"id": e.ID,
	}
	setOptionalText(m, "name", e.Name)
	setOptionalText(m, "displayName", e.DisplayName)
	setOptionalText(m, "icon", e.Icon)
	return m
}

// DecodePublicKeyCredentialType never fails on an unrecognized type string;
// it yields PublicKeyCredentialTypeUnknown instead so callers can skip the
// entry.
func DecodePublicKeyCredentialType(v any) (PublicKeyCredentialType, error) {
	s, err := ctapcbor.ReadTextString(v)
	if err != nil {
		return "", err
	}
	switch PublicKeyCredentialType(s) {
	case PublicKeyCredentialTypePublicKey:
		return PublicKeyCredentialTypePublicKey, nil
	default:
		return PublicKeyCredentialTypeUnknown, nil
	}
}

func (t PublicKeyCredentialType) CBOR() any {
	return string(t)
}

// DecodeSignatureAlgorithm never fails on an unrecognized algorithm code;
// it yields SignatureAlgorithmUnknown instead so callers can skip the entry.
func DecodeSignatureAlgorithm(v any) (SignatureAlgorithm, error) {
	n, err := ctapcbor.ReadInteger(v)
	if err != nil {
		return SignatureAlgorithmUnknown, err
	}
	switch SignatureAlgorithm(n) {
	case SignatureAlgorithmES256:
		return SignatureAlgorithmES256, nil
	default:
		return SignatureAlgorithmUnknown, nil
	}
}

func (a SignatureAlgorithm) CBOR() any {
	return int64(a)
}

// DecodeAuthenticatorTransport is strict: the transport set gates which
// channels a descriptor may be used over, so an unknown string is an error
// rather than a sentinel.
func DecodeAuthenticatorTransport(v any) (AuthenticatorTransport, error) {
	s, err := ctapcbor.ReadTextString(v)
	if err != nil {
		return "", err
	}
	switch t := AuthenticatorTransport(s); t {
	case AuthenticatorTransportUSB,
		AuthenticatorTransportNFC,
		AuthenticatorTransportBLE,
		AuthenticatorTransportInternal:
		return t, nil
	default:
		return "", statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
}

func (t AuthenticatorTransport) CBOR() any {
	return string(t)
}

func DecodePublicKeyCredentialParameters(v any) (*PublicKeyCredentialParameters, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	typRaw, err := ctapcbor.RequireEntry(m, "type")
	if err != nil {
		return nil, err
	}
	typ, err := DecodePublicKeyCredentialType(typRaw)
	if err != nil {
		return nil, err
	}
	algRaw, err := ctapcbor.RequireEntry(m, "alg")
	if err != nil {
		return nil, err
	}
	alg, err := DecodeSignatureAlgorithm(algRaw)
	if err != nil {
		return nil, err
	}
	return &PublicKeyCredentialParameters{
		Type:      typ,
		Algorithm: alg,
	}, nil
}

func (p PublicKeyCredentialParameters) CBOR() any {
	return map[any]any{
		"type": p.Type.CBOR(),
		"alg":  p.Algorithm.CBOR(),
	}
}

func DecodePublicKeyCredentialDescriptor(v any) (*PublicKeyCredentialDescriptor, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	typRaw, err := ctapcbor.RequireEntry(m, "type")
	if err != nil {
		return nil, err
	}
	typ, err := DecodePublicKeyCredentialType(typRaw)
	if err != nil {
		return nil, err
	}
	idRaw, err := ctapcbor.RequireEntry(m, "id")
	if err != nil {
		return nil, err
	}
	id, err := ctapcbor.ReadByteString(idRaw)
	if err != nil {
		return nil, err
	}
	var transports []AuthenticatorTransport
	if transportsRaw, ok := m["transports"]; ok {
		entries, err := ctapcbor.ReadArray(transportsRaw)
		if err != nil {
			return nil, err
		}
		transports = make([]AuthenticatorTransport, 0, len(entries))
		for _, entry := range entries {
			transport, err := DecodeAuthenticatorTransport(entry)
			if err != nil {
				return nil, err
			}
			transports = append(transports, transport)
		}
	}
	return &PublicKeyCredentialDescriptor{
		Type:       typ,
		ID:         id,
		Transports: transports,
	}, nil
}

func (d PublicKeyCredentialDescriptor) CBOR() any {
	m := map[any]any{
		"type": d.Type.CBOR(),
		"id":   d.ID,
	}
	if d.Transports != nil {
		m["transports"] = lo.Map(d.Transports, func(t AuthenticatorTransport, _ int) any {
			return t.CBOR()
		})
	}
	return m
}

func (s PackedAttestationStatementFormat) CBOR() any {
	m := map[any]any{
		"alg": int64(s.Algorithm),
		"sig": s.Signature,
	}
	if s.X509Chain != nil {
		m["x5c"] = lo.Map(s.X509Chain, func(cert []byte, _ int) any {
			return cert
		})
	}
	if id, ok := s.ECDAAKeyID.Get(); ok {
		m["ecdaaKeyId"] = id
	}
	return m
}
