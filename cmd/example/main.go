package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-ctap/ctapauthn/pkg/credential"
	"github.com/go-ctap/ctapauthn/pkg/crypto"
	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/ctaptypes"
	"github.com/go-ctap/ctapauthn/pkg/webauthntypes"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

func main() {
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))

	// Decode request entities the way they arrive off the wire.
	rpBlob, err := ctapcbor.Marshal(map[any]any{
		"id":   "example.com",
		"name": "Example",
	})
	if err != nil {
		panic(err)
	}
	rpTree, err := ctapcbor.Unmarshal(rpBlob)
	if err != nil {
		panic(err)
	}
	rp, err := webauthntypes.DecodePublicKeyCredentialRpEntity(rpTree)
	if err != nil {
		panic(err)
	}
	logger.Info("decoded relying party", "id", rp.ID, "name", rp.Name.OrElse(""))

	optionsTree, err := ctapcbor.Unmarshal(must(ctapcbor.Marshal(map[any]any{
		"rk": true,
		"uv": true,
	})))
	if err != nil {
		panic(err)
	}
	mcOptions, err := ctaptypes.DecodeMakeCredentialOptions(optionsTree)
	if err != nil {
		panic(err)
	}
	fmt.Printf("options: rk=%t uv=%t\n", mcOptions.RK, mcOptions.UV)

	// Mint a resident credential and persist it.
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}
	credID := make([]byte, 32)
	if _, err := rand.Read(credID); err != nil {
		panic(err)
	}
	credRandom := make([]byte, 32)
	if _, err := rand.Read(credRandom); err != nil {
		panic(err)
	}

	source := &credential.Source{
		Type:       webauthntypes.PublicKeyCredentialTypePublicKey,
		ID:         credID,
		PrivateKey: privKey,
		RPID:       rp.ID,
		UserHandle: []byte("alice"),
		OtherUI:    mo.Some("Alice"),
		CredRandom: mo.Some(credRandom),
	}
	blob, err := source.MarshalBinary()
	if err != nil {
		panic(err)
	}
	logger.Info("persisted credential source", "bytes", len(blob))

	var reloaded credential.Source
	if err := reloaded.UnmarshalBinary(blob); err != nil {
		panic(err)
	}
	fmt.Printf("reloaded credential for %s (user %q)\n", reloaded.RPID, reloaded.UserHandle)

	// Build the authenticator data covered by the attestation signature.
	rpIDHash := sha256.Sum256([]byte(reloaded.RPID))
	authData := &ctaptypes.AuthData{
		RPIDHash:  rpIDHash[:],
		Flags:     ctaptypes.AuthDataFlagUserPresent | ctaptypes.AuthDataFlagUserVerified,
		SignCount: 1,
		AttestedCredentialData: &ctaptypes.AttestedCredentialData{
			AAGUID:       uuid.New(),
			CredentialID: reloaded.ID,
			CredentialPublicKey: crypto.EncodeCOSEKey(
				must(reloaded.PrivateKey.PublicKey.ECDH()),
			),
		},
	}
	authDataBin, err := authData.MarshalBinary()
	if err != nil {
		panic(err)
	}
	logger.Info("built authenticator data", "bytes", len(authDataBin))

	// hmac-secret round trip: the platform encrypts a salt, the
	// authenticator evaluates it against credRandom.
	authnSide, err := crypto.NewPinUvAuthProtocol(ctaptypes.PinUvAuthProtocolTwo)
	if err != nil {
		panic(err)
	}
	platformSide, err := crypto.NewPinUvAuthProtocol(ctaptypes.PinUvAuthProtocolTwo)
	if err != nil {
		panic(err)
	}

	sharedSecret, err := platformSide.SharedSecret(authnSide.KeyAgreement())
	if err != nil {
		panic(err)
	}
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		panic(err)
	}
	saltEnc, err := platformSide.Encrypt(sharedSecret, salt)
	if err != nil {
		panic(err)
	}

	output, err := authnSide.EvaluateHMACSecret(&ctaptypes.HMACSecret{
		KeyAgreement: platformSide.KeyAgreement(),
		SaltEnc:      saltEnc,
		SaltAuth:     platformSide.Authenticate(sharedSecret, saltEnc),
	}, credRandom)
	if err != nil {
		panic(err)
	}

	secret, err := platformSide.Decrypt(sharedSecret, output)
	if err != nil {
		panic(err)
	}
	fmt.Printf("hmac-secret output: %s\n", hex.EncodeToString(secret))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
