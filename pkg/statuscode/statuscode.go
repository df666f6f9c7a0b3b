// Package statuscode defines the CTAP status-code space.
//
// Codes double as error values: every decoder in this module reports
// failures as one of these codes, and callers can put the code byte
// directly into a response message.
package statuscode

import "strconv"

type Code byte

const (
	CTAP2_OK                          Code = 0x00
	CTAP1_ERR_INVALID_COMMAND         Code = 0x01
	CTAP1_ERR_INVALID_PARAMETER       Code = 0x02
	CTAP1_ERR_INVALID_LENGTH          Code = 0x03
	CTAP1_ERR_INVALID_SEQ             Code = 0x04
	CTAP1_ERR_TIMEOUT                 Code = 0x05
	CTAP1_ERR_CHANNEL_BUSY            Code = 0x06
	CTAP1_ERR_LOCK_REQUIRED           Code = 0x0A
	CTAP1_ERR_INVALID_CHANNEL         Code = 0x0B
	CTAP2_ERR_CBOR_UNEXPECTED_TYPE    Code = 0x11
	CTAP2_ERR_INVALID_CBOR            Code = 0x12
	CTAP2_ERR_MISSING_PARAMETER       Code = 0x14
	CTAP2_ERR_LIMIT_EXCEEDED          Code = 0x15
	CTAP2_ERR_FP_DATABASE_FULL        Code = 0x17
	CTAP2_ERR_LARGE_BLOB_STORAGE_FULL Code = 0x18
	CTAP2_ERR_CREDENTIAL_EXCLUDED     Code = 0x19
	CTAP2_ERR_PROCESSING              Code = 0x21
	CTAP2_ERR_INVALID_CREDENTIAL      Code = 0x22
	CTAP2_ERR_USER_ACTION_PENDING     Code = 0x23
	CTAP2_ERR_OPERATION_PENDING       Code = 0x24
	CTAP2_ERR_NO_OPERATIONS           Code = 0x25
	CTAP2_ERR_UNSUPPORTED_ALGORITHM   Code = 0x26
	CTAP2_ERR_OPERATION_DENIED        Code = 0x27
	CTAP2_ERR_KEY_STORE_FULL          Code = 0x28
	CTAP2_ERR_UNSUPPORTED_OPTION      Code = 0x2B
	CTAP2_ERR_INVALID_OPTION          Code = 0x2C
	CTAP2_ERR_KEEPALIVE_CANCEL        Code = 0x2D
	CTAP2_ERR_NO_CREDENTIALS          Code = 0x2E
	CTAP2_ERR_USER_ACTION_TIMEOUT     Code = 0x2F
	CTAP2_ERR_NOT_ALLOWED             Code = 0x30
	CTAP2_ERR_PIN_INVALID             Code = 0x31
	CTAP2_ERR_PIN_BLOCKED             Code = 0x32
	CTAP2_ERR_PIN_AUTH_INVALID        Code = 0x33
	CTAP2_ERR_PIN_AUTH_BLOCKED        Code = 0x34
	CTAP2_ERR_PIN_NOT_SET             Code = 0x35
	CTAP2_ERR_PUAT_REQUIRED           Code = 0x36
	CTAP2_ERR_PIN_POLICY_VIOLATION    Code = 0x37
	CTAP2_ERR_REQUEST_TOO_LARGE       Code = 0x39
	CTAP2_ERR_ACTION_TIMEOUT          Code = 0x3A
	CTAP2_ERR_UP_REQUIRED             Code = 0x3B
	CTAP2_ERR_UV_BLOCKED              Code = 0x3C
	CTAP2_ERR_INTEGRITY_FAILURE       Code = 0x3D
	CTAP2_ERR_INVALID_SUBCOMMAND      Code = 0x3E
	CTAP2_ERR_UV_INVALID              Code = 0x3F
	CTAP2_ERR_UNAUTHORIZED_PERMISSION Code = 0x40
	CTAP1_ERR_OTHER                   Code = 0x7F
	CTAP2_ERR_SPEC_LAST               Code = 0xDF
	CTAP2_ERR_EXTENSION_FIRST         Code = 0xE0
	CTAP2_ERR_EXTENSION_LAST          Code = 0xEF
	CTAP2_ERR_VENDOR_FIRST            Code = 0xF0
	CTAP2_ERR_VENDOR_LAST             Code = 0xFF
)

var names = map[Code]string{
	CTAP2_OK:                          "CTAP2_OK",
	CTAP1_ERR_INVALID_COMMAND:         "CTAP1_ERR_INVALID_COMMAND",
	CTAP1_ERR_INVALID_PARAMETER:       "CTAP1_ERR_INVALID_PARAMETER",
	CTAP1_ERR_INVALID_LENGTH:          "CTAP1_ERR_INVALID_LENGTH",
	CTAP1_ERR_INVALID_SEQ:             "CTAP1_ERR_INVALID_SEQ",
	CTAP1_ERR_TIMEOUT:                 "CTAP1_ERR_TIMEOUT",
	CTAP1_ERR_CHANNEL_BUSY:            "CTAP1_ERR_CHANNEL_BUSY",
	CTAP1_ERR_LOCK_REQUIRED:           "CTAP1_ERR_LOCK_REQUIRED",
	CTAP1_ERR_INVALID_CHANNEL:         "CTAP1_ERR_INVALID_CHANNEL",
	CTAP2_ERR_CBOR_UNEXPECTED_TYPE:    "CTAP2_ERR_CBOR_UNEXPECTED_TYPE",
	CTAP2_ERR_INVALID_CBOR:            "CTAP2_ERR_INVALID_CBOR",
	CTAP2_ERR_MISSING_PARAMETER:       "CTAP2_ERR_MISSING_PARAMETER",
	CTAP2_ERR_LIMIT_EXCEEDED:          "CTAP2_ERR_LIMIT_EXCEEDED",
	CTAP2_ERR_FP_DATABASE_FULL:        "CTAP2_ERR_FP_DATABASE_FULL",
	CTAP2_ERR_LARGE_BLOB_STORAGE_FULL: "CTAP2_ERR_LARGE_BLOB_STORAGE_FULL",
	CTAP2_ERR_CREDENTIAL_EXCLUDED:     "CTAP2_ERR_CREDENTIAL_EXCLUDED",
	CTAP2_ERR_PROCESSING:              "CTAP2_ERR_PROCESSING",
	CTAP2_ERR_INVALID_CREDENTIAL:      "CTAP2_ERR_INVALID_CREDENTIAL",
	CTAP2_ERR_USER_ACTION_PENDING:     "CTAP2_ERR_USER_ACTION_PENDING",
	CTAP2_ERR_OPERATION_PENDING:       "CTAP2_ERR_OPERATION_PENDING",
	CTAP2_ERR_NO_OPERATIONS:           "CTAP2_ERR_NO_OPERATIONS",
	CTAP2_ERR_UNSUPPORTED_ALGORITHM:   "CTAP2_ERR_UNSUPPORTED_ALGORITHM",
	CTAP2_ERR_OPERATION_DENIED:        "CTAP2_ERR_OPERATION_DENIED",
	CTAP2_ERR_KEY_STORE_FULL:          "CTAP2_ERR_KEY_STORE_FULL",
	CTAP2_ERR_UNSUPPORTED_OPTION:      "CTAP2_ERR_UNSUPPORTED_OPTION",
	CTAP2_ERR_INVALID_OPTION:          "CTAP2_ERR_INVALID_OPTION",
	CTAP2_ERR_KEEPALIVE_CANCEL:        "CTAP2_ERR_KEEPALIVE_CANCEL",
	CTAP2_ERR_NO_CREDENTIALS:          "CTAP2_ERR_NO_CREDENTIALS",
	CTAP2_ERR_USER_ACTION_TIMEOUT:     "CTAP2_ERR_USER_ACTION_TIMEOUT",
	CTAP2_ERR_NOT_ALLOWED:             "CTAP2_ERR_NOT_ALLOWED",
	CTAP2_ERR_PIN_INVALID:             "CTAP2_ERR_PIN_INVALID",
	CTAP2_ERR_PIN_BLOCKED:             "CTAP2_ERR_PIN_BLOCKED",
	CTAP2_ERR_PIN_AUTH_INVALID:        "CTAP2_ERR_PIN_AUTH_INVALID",
	CTAP2_ERR_PIN_AUTH_BLOCKED:        "CTAP2_ERR_PIN_AUTH_BLOCKED",
	CTAP2_ERR_PIN_NOT_SET:             "CTAP2_ERR_PIN_NOT_SET",
	CTAP2_ERR_PUAT_REQUIRED:           "CTAP2_ERR_PUAT_REQUIRED",
	CTAP2_ERR_PIN_POLICY_VIOLATION:    "CTAP2_ERR_PIN_POLICY_VIOLATION",
	CTAP2_ERR_REQUEST_TOO_LARGE:       "CTAP2_ERR_REQUEST_TOO_LARGE",
	CTAP2_ERR_ACTION_TIMEOUT:          "CTAP2_ERR_ACTION_TIMEOUT",
	CTAP2_ERR_UP_REQUIRED:             "CTAP2_ERR_UP_REQUIRED",
	CTAP2_ERR_UV_BLOCKED:              "CTAP2_ERR_UV_BLOCKED",
	CTAP2_ERR_INTEGRITY_FAILURE:       "CTAP2_ERR_INTEGRITY_FAILURE",
	CTAP2_ERR_INVALID_SUBCOMMAND:      "CTAP2_ERR_INVALID_SUBCOMMAND",
	CTAP2_ERR_UV_INVALID:              "CTAP2_ERR_UV_INVALID",
	CTAP2_ERR_UNAUTHORIZED_PERMISSION: "CTAP2_ERR_UNAUTHORIZED_PERMISSION",
	CTAP1_ERR_OTHER:                   "CTAP1_ERR_OTHER",
}

func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "Code(0x" + strconv.FormatUint(uint64(c), 16) + ")"
}

// Error makes codes usable as error values; CTAP2_OK is never returned
// as an error by this module.
func (c Code) Error() string {
	return c.String()
}
