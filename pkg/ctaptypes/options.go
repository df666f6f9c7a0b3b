package ctaptypes

import (
	"github.com/go-ctap/ctapauthn/pkg/ctapcbor"
	"github.com/go-ctap/ctapauthn/pkg/statuscode"
)

// MakeCredentialOptions is the authenticatorMakeCredential options record.
// Absent flags take their defaults (both false).
type MakeCredentialOptions struct {
	RK bool
	UV bool
}

// DecodeMakeCredentialOptions rejects an explicit "up":false entry with
// CTAP2_ERR_INVALID_OPTION. A present entry is type-checked first, so a
// non-boolean value yields a type error instead of the option error; this
// ordering is the wire-compatibility contract and must not be "fixed".
func DecodeMakeCredentialOptions(v any) (*MakeCredentialOptions, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	rk := false
	if entry, ok := m[string(OptionResidentKeys)]; ok {
		rk, err = ctapcbor.ReadBool(entry)
		if err != nil {
			return nil, err
		}
	}
	if entry, ok := m[string(OptionUserPresence)]; ok {
		up, err := ctapcbor.ReadBool(entry)
		if err != nil {
			return nil, err
		}
		if !up {
			return nil, statuscode.CTAP2_ERR_INVALID_OPTION
		}
	}
	uv := false
	if entry, ok := m[string(OptionUserVerification)]; ok {
		uv, err = ctapcbor.ReadBool(entry)
		if err != nil {
			return nil, err
		}
	}
	return &MakeCredentialOptions{
		RK: rk,
		UV: uv,
	}, nil
}

func (o MakeCredentialOptions) CBOR() any {
	return map[any]any{
		string(OptionResidentKeys):     o.RK,
		string(OptionUserVerification): o.UV,
	}
}

// GetAssertionOptions is the authenticatorGetAssertion options record.
// up defaults to true, uv to false.
type GetAssertionOptions struct {
	UP bool
	UV bool
}

// DecodeGetAssertionOptions rejects any "rk" entry with
// CTAP2_ERR_INVALID_OPTION: the key is not valid for getAssertion at all,
// whatever its value. The value is still type-checked first so that a
// malformed entry reports the type error.
func DecodeGetAssertionOptions(v any) (*GetAssertionOptions, error) {
	m, err := ctapcbor.ReadMap(v)
	if err != nil {
		return nil, err
	}
	if entry, ok := m[string(OptionResidentKeys)]; ok {
		// Read only to surface the right status code.
		if _, err := ctapcbor.ReadBool(entry); err != nil {
			return nil, err
		}
		return nil, statuscode.CTAP2_ERR_INVALID_OPTION
	}
	up := true
	if entry, ok := m[string(OptionUserPresence)]; ok {
		up, err = ctapcbor.ReadBool(entry)
		if err != nil {
			return nil, err
		}
	}
	uv := false
	if entry, ok := m[string(OptionUserVerification)]; ok {
		uv, err = ctapcbor.ReadBool(entry)
		if err != nil {
			return nil, err
		}
	}
	return &GetAssertionOptions{
		UP: up,
		UV: uv,
	}, nil
}

func (o GetAssertionOptions) CBOR() any {
	return map[any]any{
		string(OptionUserPresence):     o.UP,
		string(OptionUserVerification): o.UV,
	}
}
