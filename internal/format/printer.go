package format

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// maxDepth bounds how deep nested values are rendered.
const maxDepth = 32

// visit identifies a map or slice on the current rendering path.
type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// printer renders the %v form of a value. Maps and slices that contain
// themselves are printed once, with the repeated reference shown as
// "map[...]" or "[...]". String and Error methods are called
// directly, so a panicking method unwinds to the caller instead of being
// printed inline.
type printer struct {
	b    strings.Builder
	path map[visit]bool
}

// sprint returns the %v form of v.
func sprint(v any) string {
	p := &printer{path: make(map[visit]bool)}
	p.value(reflect.ValueOf(v), 0)
	return p.b.String()
}

func (p *printer) value(rv reflect.Value, depth int) {
	if !rv.IsValid() {
		p.b.WriteString("<nil>")
		return
	}
	if depth > maxDepth {
		p.b.WriteString("...")
		return
	}
	if p.methods(rv) {
		return
	}

	switch rv.Kind() {
	case reflect.Bool:
		p.b.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		p.b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		p.b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		p.b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Complex64:
		p.b.WriteString(strconv.FormatComplex(rv.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		p.b.WriteString(strconv.FormatComplex(rv.Complex(), 'g', -1, 128))
	case reflect.String:
		p.b.WriteString(rv.String())
	case reflect.Interface:
		p.value(rv.Elem(), depth+1)
	case reflect.Map:
		p.mapValue(rv, depth)
	case reflect.Slice:
		p.sliceValue(rv, depth)
	case reflect.Array:
		p.elems(rv, depth)
	case reflect.Struct:
		p.b.WriteByte('{')
		for i := 0; i < rv.NumField(); i++ {
			if i > 0 {
				p.b.WriteByte(' ')
			}
			p.value(rv.Field(i), depth+1)
		}
		p.b.WriteByte('}')
	case reflect.Pointer:
		if rv.IsNil() {
			p.b.WriteString("<nil>")
			return
		}
		if depth == 0 {
			switch rv.Elem().Kind() {
			case reflect.Array, reflect.Slice, reflect.Struct, reflect.Map:
				p.b.WriteByte('&')
				p.value(rv.Elem(), depth+1)
				return
			}
		}
		p.address(rv)
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		p.address(rv)
	default:
		p.b.WriteString("?")
	}
}

// methods writes the result of v's Error or String method and
// reports whether one was used. Nil pointers never have their methods
// called.
func (p *printer) methods(rv reflect.Value) bool {
	if !rv.CanInterface() {
		return false
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return false
	}
	switch x := rv.Interface().(type) {
	case error:
		p.b.WriteString(x.Error())
	case fmt.Stringer:
		p.b.WriteString(x.String())
	default:
		return false
	}
	return true
}

func (p *printer) mapValue(rv reflect.Value, depth int) {
	if rv.IsNil() {
		p.b.WriteString("map[]")
		return
	}
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if p.path[key] {
		p.b.WriteString("map[...]")
		return
	}
	p.path[key] = true
	defer delete(p.path, key)

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })

	p.b.WriteString("map[")
	for i, k := range keys {
		if i > 0 {
			p.b.WriteByte(' ')
		}
		p.value(k, depth+1)
		p.b.WriteByte(':')
		p.value(rv.MapIndex(k), depth+1)
	}
	p.b.WriteByte(']')
}

func (p *printer) sliceValue(rv reflect.Value, depth int) {
	if rv.Len() == 0 {
		p.b.WriteString("[]")
		return
	}
	key := visit{ptr: rv.Pointer(), typ: rv.Type(), len: rv.Len()}
	if p.path[key] {
		p.b.WriteString("[...]")
		return
	}
	p.path[key] = true
	defer delete(p.path, key)

	p.elems(rv, depth)
}

func (p *printer) elems(rv reflect.Value, depth int) {
	p.b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			p.b.WriteByte(' ')
		}
		p.value(rv.Index(i), depth+1)
	}
	p.b.WriteByte(']')
}

func (p *printer) address(rv reflect.Value) {
	ptr := rv.Pointer()
	if ptr == 0 {
		p.b.WriteString("<nil>")
		return
	}
	p.b.WriteString("0x")
	p.b.WriteString(strconv.FormatUint(uint64(ptr), 16))
}

// lessKey orders map keys: numbers and strings by value, false before
// true, anything else by its rendered text.
func lessKey(a, b reflect.Value) bool {
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return a.Uint() < b.Uint()
		case reflect.Float32, reflect.Float64:
			return a.Float() < b.Float()
		case reflect.String:
			return a.String() < b.String()
		case reflect.Bool:
			return !a.Bool() && b.Bool()
		}
	}
	return keyText(a) < keyText(b)
}

func keyText(k reflect.Value) string {
	p := &printer{path: make(map[visit]bool)}
	p.value(k, 1)
	return p.b.String()
}

// checkGoSyntax walks v the way the %#v verb does, calling every nested
// GoString method so that a panic unwinds to the caller. It reports false
// when v contains itself or nests deeper than maxDepth.
func checkGoSyntax(rv reflect.Value, depth int, path map[visit]bool) bool {
	if !rv.IsValid() {
		return true
	}
	if depth > maxDepth {
		return false
	}
	if depth > 0 && rv.CanInterface() && !(rv.Kind() == reflect.Pointer && rv.IsNil()) {
		if gs, ok := rv.Interface().(fmt.GoStringer); ok {
			_ = gs.GoString()
			return true
		}
	}

	switch rv.Kind() {
	case reflect.Interface:
		return checkGoSyntax(rv.Elem(), depth+1, path)
	case reflect.Pointer:
		if depth > 0 || rv.IsNil() {
			return true
		}
		return checkGoSyntax(rv.Elem(), depth+1, path)
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !checkGoSyntax(rv.Field(i), depth+1, path) {
				return false
			}
		}
		return true
	case reflect.Array:
		return checkElems(rv, depth, path)
	case reflect.Slice:
		if rv.Len() == 0 {
			return true
		}
		key := visit{ptr: rv.Pointer(), typ: rv.Type(), len: rv.Len()}
		if path[key] {
			return false
		}
		path[key] = true
		defer delete(path, key)
		return checkElems(rv, depth, path)
	case reflect.Map:
		if rv.IsNil() {
			return true
		}
		key := visit{ptr: rv.Pointer(), typ: rv.Type()}
		if path[key] {
			return false
		}
		path[key] = true
		defer delete(path, key)
		iter := rv.MapRange()
		for iter.Next() {
			if !checkGoSyntax(iter.Key(), depth+1, path) || !checkGoSyntax(iter.Value(), depth+1, path) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func checkElems(rv reflect.Value, depth int, path map[visit]bool) bool {
	for i := 0; i < rv.Len(); i++ {
		if !checkGoSyntax(rv.Index(i), depth+1, path) {
			return false
		}
	}
	return true
}
