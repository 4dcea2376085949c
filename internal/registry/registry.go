package registry

import (
	"reflect"
	"sync"

	"github.com/dshills/varwire/internal/resolver"
)

// TypeUnavailable is the type name reported when a value's type cannot be
// determined.
const TypeUnavailable = "Unable to get Type"

// TypeNamer is implemented by values that report their own type name,
// typically values bridged from another runtime.
type TypeNamer interface {
	VarTypeName() string
}

// Entry is one row of the type table. A nil Resolver marks a scalar type.
type Entry struct {
	// Name describes the entry for diagnostics.
	Name string

	// Match reports whether the entry applies to a type. The type is nil
	// for the nil interface value.
	Match func(t reflect.Type) bool

	// Resolver expands matching values, or nil for scalars.
	Resolver resolver.Resolver
}

// Registry classifies values against a lazily built type table.
type Registry struct {
	host   Host
	probes []Probe
	extra  []Probe

	once  sync.Once
	table []Entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithProbes adds optional entries evaluated after the built-in probes.
// The Lua table runs these probes alone, without the built-in Go probes.
func WithProbes(probes ...Probe) Option {
	return func(r *Registry) {
		r.extra = append(r.extra, probes...)
	}
}

// New creates a registry for the given host. The table is not built until
// the first classification.
func New(host Host, opts ...Option) *Registry {
	r := &Registry{
		host:   host,
		probes: DefaultProbes(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry for the detected host.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(DetectHost())
	})
	return defaultRegistry
}

// Host returns the host the registry was created for.
func (r *Registry) Host() Host {
	return r.host
}

// entries returns the type table, building it on first use.
func (r *Registry) entries() []Entry {
	r.once.Do(func() {
		if r.host == HostLua {
			r.table = buildTable(luaTable(), r.extra)
		} else {
			probes := append(append([]Probe(nil), r.probes...), r.extra...)
			r.table = buildTable(baseTable(), probes)
		}
	})
	return r.table
}

// Entries returns a copy of the type table in lookup order.
func (r *Registry) Entries() []Entry {
	table := r.entries()
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// bridged maps bridged runtime type names to their resolvers. These names
// are checked before any structural match.
var bridged = map[string]resolver.Resolver{
	"*lua.LUserData": resolver.Instance,
	"*lua.LTable":    resolver.Array,
}

// Classify returns the type name of v and its resolver. A nil resolver
// means v is a scalar. Unmatched types get resolver.Default. When the type
// itself cannot be determined, Classify returns TypeUnavailable and no
// resolver.
func (r *Registry) Classify(v any) (typeName string, res resolver.Resolver) {
	t, name, ok := typeOf(v)
	if !ok {
		return TypeUnavailable, nil
	}

	if br, ok := bridged[name]; ok {
		return name, br
	}

	for _, e := range r.entries() {
		if matches(e, t) {
			return name, e.Resolver
		}
	}
	return name, resolver.Default
}

// IsContainer reports whether v has a resolver.
func (r *Registry) IsContainer(v any) bool {
	_, res := r.Classify(v)
	return res != nil
}

// typeOf determines the type and type name of v, reporting failure
// instead of panicking.
func typeOf(v any) (t reflect.Type, name string, ok bool) {
	defer func() {
		if recover() != nil {
			t, name, ok = nil, "", false
		}
	}()

	t = reflect.TypeOf(v)
	if tn, isNamer := v.(TypeNamer); isNamer {
		return t, tn.VarTypeName(), true
	}
	if t == nil {
		return nil, "nil", true
	}
	return t, t.String(), true
}

// matches runs an entry matcher, treating a panicking matcher as no match.
func matches(e Entry, t reflect.Type) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return e.Match(t)
}
