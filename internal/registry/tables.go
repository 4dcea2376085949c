package registry

import (
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/varwire/internal/resolver"
	"github.com/dshills/varwire/internal/stack"
)

// kindOf returns a matcher accepting any of the given kinds.
func kindOf(kinds ...reflect.Kind) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		if t == nil {
			return false
		}
		for _, k := range kinds {
			if t.Kind() == k {
				return true
			}
		}
		return false
	}
}

// typeIs returns a matcher accepting exactly the given types.
func typeIs(types ...reflect.Type) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	}
}

// implements returns a matcher accepting types that implement iface.
func implements(iface reflect.Type) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		return t != nil && t.Implements(iface)
	}
}

func isNil(t reflect.Type) bool { return t == nil }

// isSetShape reports whether t is a map with empty-struct values.
func isSetShape(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Map &&
		t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0
}

var frameType = reflect.TypeOf((*stack.Frame)(nil))

// scalarEntries are the types displayed as plain values.
func scalarEntries() []Entry {
	return []Entry{
		{Name: "nil", Match: isNil},
		{Name: "integer", Match: kindOf(
			reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		)},
		{Name: "float", Match: kindOf(reflect.Float32, reflect.Float64)},
		{Name: "complex", Match: kindOf(reflect.Complex64, reflect.Complex128)},
		{Name: "string", Match: kindOf(reflect.String)},
	}
}

// baseTable returns the entries every Go host table starts from.
func baseTable() []Entry {
	return append(scalarEntries(),
		Entry{Name: "sequence", Match: kindOf(reflect.Slice, reflect.Array), Resolver: resolver.Sequence},
		Entry{Name: "mapping", Match: func(t reflect.Type) bool {
			return t != nil && t.Kind() == reflect.Map && !isSetShape(t)
		}, Resolver: resolver.Mapping},
		Entry{Name: "set", Match: isSetShape, Resolver: resolver.Set},
	)
}

// luaTable returns the table used when inspecting a gopher-lua VM. The Go
// scalar entries follow the Lua ones so Go values produced by resolvers
// still display as scalars.
func luaTable() []Entry {
	table := []Entry{
		{Name: "lua-nil", Match: typeIs(reflect.TypeOf(lua.LNil))},
		{Name: "lua-bool", Match: typeIs(reflect.TypeOf(lua.LTrue))},
		{Name: "lua-number", Match: typeIs(reflect.TypeOf(lua.LNumber(0)))},
		{Name: "lua-string", Match: typeIs(reflect.TypeOf(lua.LString("")))},
		{Name: "lua-table", Match: typeIs(reflect.TypeOf((*lua.LTable)(nil))), Resolver: resolver.Array},
		{Name: "lua-function", Match: typeIs(reflect.TypeOf((*lua.LFunction)(nil))), Resolver: resolver.Function},
		{Name: "lua-userdata", Match: typeIs(reflect.TypeOf((*lua.LUserData)(nil))), Resolver: resolver.Instance},
		{Name: "frame", Match: typeIs(frameType), Resolver: resolver.Frame},
	}
	return append(table, scalarEntries()...)
}
