package registry

import "errors"

// ErrUnknownHost is returned when a host name cannot be parsed.
var ErrUnknownHost = errors.New("unknown host runtime")
