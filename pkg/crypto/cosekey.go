package crypto

import (
	"bytes"
	"crypto/ecdh"

	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/statuscode"

	"github.com/ldclabs/cose/iana"
	"github.com/ldclabs/cose/key"
)

// EncodeCOSEKey encodes an ephemeral P-256 public key as the COSE_Key
// map used during key agreement. Only the five mandatory parameters are
// emitted; some peers reject keys carrying anything else.
func EncodeCOSEKey(pub *ecdh.PublicKey) key.Key {
	raw := pub.Bytes() // uncompressed point, 0x04 || X || Y
	return key.Key{
		iana.KeyParameterKty:    int64(iana.KeyTypeEC2),
		iana.KeyParameterAlg:    int64(iana.AlgorithmECDH_ES_HKDF_256),
		iana.EC2KeyParameterCrv: int64(iana.EllipticCurveP_256),
		iana.EC2KeyParameterX:   bytes.Clone(raw[1:33]),
		iana.EC2KeyParameterY:   bytes.Clone(raw[33:65]),
	}
}

// keyInteger reads an integer COSE parameter. Wire trees carry
// uint64/int64; locally built keys may carry plain int.
func keyInteger(v any) (int64, error) {
	if n, ok := v.(int); ok {
		return int64(n), nil
	}
	return ctapcbor.ReadInteger(v)
}

func requireKeyEntry(k key.Key, label int) (any, error) {
	v, ok := k[label]
	if !ok {
		return nil, statuscode.CTAP2_ERR_MISSING_PARAMETER
	}
	return v, nil
}

func requireKeyInteger(k key.Key, label int) (int64, error) {
	v, err := requireKeyEntry(k, label)
	if err != nil {
		return 0, err
	}
	return keyInteger(v)
}

func requireKeyBytes(k key.Key, label int) ([]byte, error) {
	v, err := requireKeyEntry(k, label)
	if err != nil {
		return nil, err
	}
	return ctapcbor.ReadByteString(v)
}

// DecodeCOSEKey validates a peer COSE_Key and converts it to a Go
// public key. Wrong kty, alg or crv is CTAP2_ERR_UNSUPPORTED_ALGORITHM;
// malformed coordinates are CTAP1_ERR_INVALID_PARAMETER. Both ES256 and
// ECDH-ES+HKDF-256 algorithm identifiers are accepted for the agreement
// key.
func DecodeCOSEKey(k key.Key) (*ecdh.PublicKey, error) {
	kty, err := requireKeyInteger(k, iana.KeyParameterKty)
	if err != nil {
		return nil, err
	}
	if kty != int64(iana.KeyTypeEC2) {
		return nil, statuscode.CTAP2_ERR_UNSUPPORTED_ALGORITHM
	}

	alg, err := requireKeyInteger(k, iana.KeyParameterAlg)
	if err != nil {
		return nil, err
	}
	if alg != int64(iana.AlgorithmECDH_ES_HKDF_256) && alg != int64(iana.AlgorithmES256) {
		return nil, statuscode.CTAP2_ERR_UNSUPPORTED_ALGORITHM
	}

	crv, err := requireKeyInteger(k, iana.EC2KeyParameterCrv)
	if err != nil {
		return nil, err
	}
	if crv != int64(iana.EllipticCurveP_256) {
		return nil, statuscode.CTAP2_ERR_UNSUPPORTED_ALGORITHM
	}

	x, err := requireKeyBytes(k, iana.EC2KeyParameterX)
	if err != nil {
		return nil, err
	}
	y, err := requireKeyBytes(k, iana.EC2KeyParameterY)
	if err != nil {
		return nil, err
	}
	if len(x) != 32 || len(y) != 32 {
		return nil, statuscode.CTAP1_ERR_INVALID_PARAMETER
	}

	raw := make([]byte, 0, 65)
	raw = append(raw, 0x04)
	raw = append(raw, x...)
	raw = append(raw, y...)

	pub, err := ecdh.P256().NewPublicKey(raw)
	if err != nil {
		// Point is not on the curve.
		return nil, statuscode.CTAP1_ERR_INVALID_PARAMETER
	}
	return pub, nil
}
