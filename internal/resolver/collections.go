package resolver

import (
	"reflect"
	"strconv"
)

// Sequence resolves slices and arrays into indexed children.
var Sequence Resolver = sequenceResolver{}

// Mapping resolves maps into key/value children.
var Mapping Resolver = mappingResolver{}

// Set resolves set-like values into element children.
var Set Resolver = setResolver{}

// MultiMap resolves multi-valued maps (url.Values, http.Header) into one
// child per key holding the complete value list.
var MultiMap Resolver = multiMapResolver{}

type sequenceResolver struct{}

func (sequenceResolver) Kind() Kind { return KindSequence }

func (sequenceResolver) Children(v any) []Child {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil
	}
	return sequenceChildren(rv)
}

func sequenceChildren(rv reflect.Value) []Child {
	n := rv.Len()
	limit := min(n, MaxChildren)
	children := make([]Child, 0, limit+2)
	for i := 0; i < limit; i++ {
		children = append(children, Child{Name: strconv.Itoa(i), Value: valueOf(rv.Index(i))})
	}
	if n > limit {
		children = append(children, tooLargeChild())
	}
	return append(children, Child{Name: LenName, Value: n})
}

func (r sequenceResolver) Resolve(v any, name string) (any, bool) {
	rv := indirect(reflect.ValueOf(v))
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < rv.Len() {
			return valueOf(rv.Index(i)), true
		}
	}
	return lookup(r.Children(v), name)
}

type mappingResolver struct{}

func (mappingResolver) Kind() Kind { return KindMapping }

func (mappingResolver) Children(v any) []Child {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil
	}
	return mapChildren(rv)
}

func mapChildren(rv reflect.Value) []Child {
	keys := sortedKeys(rv)
	limit := min(len(keys), MaxChildren)
	seen := make(map[string]int, limit)
	children := make([]Child, 0, limit+2)
	for _, k := range keys[:limit] {
		children = append(children, Child{
			Name:  uniqueName(seen, text(k)),
			Value: valueOf(rv.MapIndex(k)),
		})
	}
	if len(keys) > limit {
		children = append(children, tooLargeChild())
	}
	return append(children, Child{Name: LenName, Value: rv.Len()})
}

func (r mappingResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}

type setResolver struct{}

func (setResolver) Kind() Kind { return KindSet }

func (setResolver) Children(v any) []Child {
	if sv, ok := v.(SetView); ok {
		return memberChildren(sv.Members())
	}
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil
	}
	keys := sortedKeys(rv)
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = valueOf(k)
	}
	return memberChildren(members)
}

func memberChildren(members []any) []Child {
	limit := min(len(members), MaxChildren)
	seen := make(map[string]int, limit)
	children := make([]Child, 0, limit+2)
	for _, m := range members[:limit] {
		children = append(children, Child{
			Name:  uniqueName(seen, text(reflect.ValueOf(m))),
			Value: m,
		})
	}
	if len(members) > limit {
		children = append(children, tooLargeChild())
	}
	return append(children, Child{Name: LenName, Value: len(members)})
}

func (r setResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}

type multiMapResolver struct{}

func (multiMapResolver) Kind() Kind { return KindMultiMap }

func (multiMapResolver) Children(v any) []Child {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil
	}
	keys := sortedKeys(rv)
	limit := min(len(keys), MaxChildren)
	children := make([]Child, 0, limit+1)
	for _, k := range keys[:limit] {
		children = append(children, Child{Name: text(k), Value: valueOf(rv.MapIndex(k))})
	}
	if len(keys) > limit {
		children = append(children, tooLargeChild())
	}
	return children
}

func (r multiMapResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}
