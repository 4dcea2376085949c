package resolver

import (
	"reflect"
	"runtime"
)

// Default resolves arbitrary values by reflection: struct fields,
// pointer targets, function names and channel occupancy.
var Default Resolver = defaultResolver{}

type defaultResolver struct{}

func (defaultResolver) Kind() Kind { return KindDefault }

func (defaultResolver) Children(v any) []Child {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}
	return reflectChildren(rv)
}

func reflectChildren(rv reflect.Value) []Child {
	switch rv.Kind() {
	case reflect.Struct:
		return structChildren(rv)
	case reflect.Slice, reflect.Array:
		return sequenceChildren(rv)
	case reflect.Map:
		return mapChildren(rv)
	case reflect.Func:
		if rv.IsNil() {
			return nil
		}
		name := "unknown"
		if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
			name = fn.Name()
		}
		return []Child{{Name: "name", Value: name}}
	case reflect.Chan:
		if rv.IsNil() {
			return nil
		}
		return []Child{
			{Name: "len", Value: rv.Len()},
			{Name: "cap", Value: rv.Cap()},
			{Name: "dir", Value: rv.Type().ChanDir().String()},
		}
	default:
		return []Child{{Name: "value", Value: valueOf(rv)}}
	}
}

func structChildren(rv reflect.Value) []Child {
	t := rv.Type()
	n := min(t.NumField(), MaxChildren)
	children := make([]Child, 0, n+1)
	for i := 0; i < n; i++ {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}
		children = append(children, Child{Name: f.Name, Value: valueOf(rv.Field(i))})
	}
	if t.NumField() > n {
		children = append(children, tooLargeChild())
	}
	return children
}

func (r defaultResolver) Resolve(v any, name string) (any, bool) {
	rv := indirect(reflect.ValueOf(v))
	if rv.IsValid() && rv.Kind() == reflect.Struct {
		if f, ok := rv.Type().FieldByName(name); ok && len(f.Index) == 1 {
			return valueOf(rv.Field(f.Index[0])), true
		}
	}
	return lookup(r.Children(v), name)
}
