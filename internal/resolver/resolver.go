package resolver

import (
	"fmt"
)

// Kind identifies a resolver variant.
type Kind int

const (
	// KindDefault introspects arbitrary values (struct fields, pointers, funcs).
	KindDefault Kind = iota
	// KindSequence exposes indexed children of slices and arrays.
	KindSequence
	// KindMapping exposes key/value children of maps.
	KindMapping
	// KindSet exposes the elements of set-like values.
	KindSet
	// KindMultiMap exposes each key of a multi-valued map with its full value list.
	KindMultiMap
	// KindFrame exposes the locals of a stack frame.
	KindFrame
	// KindInstance exposes bridged host instances (Lua userdata).
	KindInstance
	// KindArray exposes bridged host arrays (Lua tables).
	KindArray
	// KindMatrix exposes summary children of numeric matrices.
	KindMatrix
	// KindFunction exposes the prototype of a host function (Lua functions).
	KindFunction
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindSet:
		return "set"
	case KindMultiMap:
		return "multimap"
	case KindFrame:
		return "frame"
	case KindInstance:
		return "instance"
	case KindArray:
		return "array"
	case KindMatrix:
		return "matrix"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Child is one named child of a compound value.
type Child struct {
	// Name is the display name of the child.
	Name string

	// Value is the child value.
	Value any
}

// Resolver expands a compound value into named children.
type Resolver interface {
	// Kind reports the resolver variant.
	Kind() Kind

	// Children returns the children of v in display order.
	Children(v any) []Child

	// Resolve returns the child of v with the given name.
	Resolve(v any, name string) (any, bool)
}

// SetView is implemented by set types that are not plain
// map[K]struct{} values, such as immutable set wrappers.
type SetView interface {
	Members() []any
}

// Limits applied while expanding children.
const (
	// MaxChildren is the maximum number of children returned by one expansion.
	MaxChildren = 300

	// LenName is the name of the synthetic length child.
	LenName = "__len__"

	// TooLargeName is the name of the child added when an expansion is capped.
	TooLargeName = "Unable to handle:"
)

// tooLargeChild returns the marker child appended to capped expansions.
func tooLargeChild() Child {
	return Child{
		Name:  TooLargeName,
		Value: fmt.Sprintf("Too large to show contents. Max items to show: %d", MaxChildren),
	}
}

// lookup finds a child by name.
func lookup(children []Child, name string) (any, bool) {
	for _, c := range children {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}
