package crypto

import "errors"

var ErrInvalidAuthProtocol = errors.New("invalid PIN/UV auth protocol")
