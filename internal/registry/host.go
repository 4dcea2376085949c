package registry

import (
	"fmt"
	"os"
	"strings"
)

// HostEnv is the environment variable consulted by DetectHost.
const HostEnv = "VARWIRE_HOST"

// Host identifies the runtime whose values are being inspected.
type Host int

const (
	// HostGo inspects native Go values.
	HostGo Host = iota
	// HostLua inspects values of an embedded gopher-lua VM.
	HostLua
)

// String returns the host name.
func (h Host) String() string {
	switch h {
	case HostGo:
		return "go"
	case HostLua:
		return "lua"
	default:
		return fmt.Sprintf("host(%d)", int(h))
	}
}

// ParseHost parses a host name. "auto" and the empty string resolve
// through DetectHost.
func ParseHost(s string) (Host, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectHost(), nil
	case "go":
		return HostGo, nil
	case "lua":
		return HostLua, nil
	default:
		return HostGo, fmt.Errorf("%w: %q", ErrUnknownHost, s)
	}
}

// DetectHost reports the host named by VARWIRE_HOST, defaulting to HostGo.
func DetectHost() Host {
	if strings.EqualFold(os.Getenv(HostEnv), "lua") {
		return HostLua
	}
	return HostGo
}
