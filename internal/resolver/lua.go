package resolver

import (
	"math"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// Names of synthetic children of bridged Lua values.
const (
	MetatableName = "__metatable__"
	ValueName     = "__value__"
)

// Instance resolves Lua userdata into the wrapped Go value and its fields.
var Instance Resolver = instanceResolver{}

// Array resolves Lua tables: the array part first, then the hash part.
var Array Resolver = arrayResolver{}

// Function resolves Lua functions into their prototype details.
var Function Resolver = functionResolver{}

type instanceResolver struct{}

func (instanceResolver) Kind() Kind { return KindInstance }

func (instanceResolver) Children(v any) []Child {
	ud, ok := v.(*lua.LUserData)
	if !ok || ud == nil {
		return nil
	}
	children := []Child{{Name: ValueName, Value: ud.Value}}
	for _, c := range Default.Children(ud.Value) {
		if c.Name == "value" {
			continue
		}
		children = append(children, c)
	}
	if ud.Metatable != nil && ud.Metatable != lua.LNil {
		children = append(children, Child{Name: MetatableName, Value: ud.Metatable})
	}
	return children
}

func (r instanceResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}

type arrayResolver struct{}

func (arrayResolver) Kind() Kind { return KindArray }

func (arrayResolver) Children(v any) []Child {
	t, ok := v.(*lua.LTable)
	if !ok || t == nil {
		return nil
	}
	n := t.Len()
	seen := make(map[string]int)
	children := make([]Child, 0, min(n, MaxChildren)+2)
	for i := 1; i <= n && len(children) < MaxChildren; i++ {
		children = append(children, Child{Name: uniqueName(seen, strconv.Itoa(i)), Value: t.RawGetInt(i)})
	}

	type entry struct {
		key   string
		value lua.LValue
	}
	var hash []entry
	t.ForEach(func(k, val lua.LValue) {
		if num, ok := k.(lua.LNumber); ok {
			f := float64(num)
			if f == math.Trunc(f) && f >= 1 && f <= float64(n) {
				return
			}
		}
		hash = append(hash, entry{key: k.String(), value: val})
	})
	sort.SliceStable(hash, func(i, j int) bool { return hash[i].key < hash[j].key })

	truncated := n > MaxChildren
	for _, e := range hash {
		if len(children) >= MaxChildren {
			truncated = true
			break
		}
		children = append(children, Child{Name: uniqueName(seen, e.key), Value: e.value})
	}
	if truncated {
		children = append(children, tooLargeChild())
	}
	if t.Metatable != nil && t.Metatable != lua.LNil {
		children = append(children, Child{Name: MetatableName, Value: t.Metatable})
	}
	return append(children, Child{Name: LenName, Value: n})
}

func (r arrayResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}

type functionResolver struct{}

func (functionResolver) Kind() Kind { return KindFunction }

func (functionResolver) Children(v any) []Child {
	fn, ok := v.(*lua.LFunction)
	if !ok || fn == nil {
		return nil
	}
	if fn.IsG || fn.Proto == nil {
		return []Child{{Name: "builtin", Value: true}}
	}
	p := fn.Proto
	return []Child{
		{Name: "builtin", Value: false},
		{Name: "source", Value: p.SourceName},
		{Name: "line", Value: p.LineDefined},
		{Name: "lastline", Value: p.LastLineDefined},
		{Name: "params", Value: int(p.NumParameters)},
		{Name: "vararg", Value: p.IsVarArg != 0},
		{Name: "upvalues", Value: len(fn.Upvalues)},
	}
}

func (r functionResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}
