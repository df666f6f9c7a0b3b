package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/go-ctap/ctapauthn/pkg/statuscode"
)

// ES256PrivateKeyFromBytes reconstructs a P-256 signing key from its
// 32-byte big-endian scalar. Anything but a valid scalar of exactly
// that length is CTAP2_ERR_INVALID_CBOR, since the bytes come out of a
// stored credential blob.
func ES256PrivateKeyFromBytes(b []byte) (*ecdsa.PrivateKey, error) {
	if len(b) != 32 {
		return nil, statuscode.CTAP2_ERR_INVALID_CBOR
	}

	// NewPrivateKey rejects zero and out-of-range scalars.
	priv, err := ecdh.P256().NewPrivateKey(b)
	if err != nil {
		return nil, statuscode.CTAP2_ERR_INVALID_CBOR
	}

	raw := priv.PublicKey().Bytes()
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(raw[1:33]),
			Y:     new(big.Int).SetBytes(raw[33:65]),
		},
		D: new(big.Int).SetBytes(b),
	}, nil
}

// ES256PrivateKeyBytes is the inverse: the fixed-width scalar used when
// persisting a credential.
func ES256PrivateKeyBytes(priv *ecdsa.PrivateKey) []byte {
	return priv.D.FillBytes(make([]byte, 32))
}
