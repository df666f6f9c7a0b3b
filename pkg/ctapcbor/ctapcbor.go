// Package ctapcbor reads protocol values out of generically decoded CBOR.
//
// Messages are decoded with github.com/fxamacker/cbor into untyped tree
// nodes (bool, uint64, int64, []byte, string, []any, map[any]any). The
// accessors here are the single place where wire types are checked: they
// return the exactly matching Go value or CTAP2_ERR_CBOR_UNEXPECTED_TYPE,
// with no coercion between major types. Entity codecs compose these
// instead of type-switching themselves.
package ctapcbor

import (
	"math"

	"github.com/go-ctap/ctapauthn/pkg/statuscode"

	"github.com/fxamacker/cbor/v2"
)

var decMode, _ = cbor.DecOptions{
	// CTAP2 canonical CBOR: no duplicate map keys, no indefinite
	// lengths, no tags.
	DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	IndefLength: cbor.IndefLengthForbidden,
	TagsMd:      cbor.TagsForbidden,
}.DecMode()

var encMode, _ = cbor.CTAP2EncOptions().EncMode()

// Unmarshal decodes a whole message into an untyped tree node.
// Malformed input maps to CTAP2_ERR_INVALID_CBOR.
func Unmarshal(data []byte) (any, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, statuscode.CTAP2_ERR_INVALID_CBOR
	}
	return v, nil
}

// Marshal encodes a tree node in CTAP2 canonical form.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// EncMode exposes the canonical encoder for callers that marshal typed
// structures directly.
func EncMode() cbor.EncMode {
	return encMode
}

// DecMode exposes the strict decoder for callers that stream-decode
// from a larger buffer.
func DecMode() cbor.DecMode {
	return decMode
}

// ReadBool accepts only the boolean simple values. There is no truthy
// interpretation of other types.
func ReadBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
	return b, nil
}

// ReadUnsigned accepts the full non-negative wire range.
func ReadUnsigned(v any) (uint64, error) {
	u, ok := v.(uint64)
	if !ok {
		return 0, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
	return u, nil
}

// ReadInteger accepts a negative wire integer directly and a non-negative
// one only if it fits int64; values above MaxInt64 fail instead of
// wrapping.
func ReadInteger(v any) (int64, error) {
	switch n := v.(type) {
	case uint64:
		if n > math.MaxInt64 {
			return 0, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
		}
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
}

func ReadByteString(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
	return b, nil
}

func ReadTextString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
	return s, nil
}

func ReadArray(v any) ([]any, error) {
	a, ok := v.([]any)
	if !ok {
		return nil, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
	return a, nil
}

func ReadMap(v any) (map[any]any, error) {
	m, ok := v.(map[any]any)
	if !ok {
		return nil, statuscode.CTAP2_ERR_CBOR_UNEXPECTED_TYPE
	}
	return m, nil
}

// RequireEntry looks up a required key; a missing key is
// CTAP2_ERR_MISSING_PARAMETER, never a type error.
func RequireEntry(m map[any]any, key any) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, statuscode.CTAP2_ERR_MISSING_PARAMETER
	}
	return v, nil
}

// IntKey normalizes an integer map label to the representation the
// decoder produces: non-negative labels arrive as uint64 keys, negative
// ones as int64.
func IntKey(label int64) any {
	if label < 0 {
		return label
	}
	return uint64(label)
}
