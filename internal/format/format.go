package format

import (
	"fmt"
	"reflect"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/varwire/internal/resolver"
	"github.com/dshills/varwire/internal/stack"
)

// DefaultTooBigLen is the element count above which built-in slices and
// arrays are not printed.
const DefaultTooBigLen = 300

var frameType = reflect.TypeOf((*stack.Frame)(nil))

// Formatter renders values as display strings.
type Formatter struct {
	tooBigLen int
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithTooBigLen sets the element count above which slices are summarised.
func WithTooBigLen(n int) Option {
	return func(f *Formatter) {
		if n > 0 {
			f.tooBigLen = n
		}
	}
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{tooBigLen: DefaultTooBigLen}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFormatter = New()

// Format renders v with the default Formatter.
func Format(v any) string {
	return defaultFormatter.Format(v)
}

// TooBigLen returns the configured element threshold.
func (f *Formatter) TooBigLen() int {
	return f.tooBigLen
}

// Format renders v. It never panics.
func (f *Formatter) Format(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = fallback(v)
		}
	}()
	return f.format(v)
}

func (f *Formatter) format(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return fmt.Sprint(v)
	}

	if t == frameType {
		return resolver.FrameName(v.(*stack.Frame))
	}

	if isBuiltinSequence(t) {
		n := reflect.ValueOf(v).Len()
		if n > f.tooBigLen {
			return fmt.Sprintf("%s: <Too big to print. Len: %d>", t.String(), n)
		}
		return fmt.Sprintf("%s: %s", t.String(), text(v))
	}

	if lv, ok := v.(lua.LValue); ok && selfDescribing(lv.Type()) && !reflect.ValueOf(v).IsNil() {
		return text(v)
	}
	return fmt.Sprintf("%s: %s", ShortName(describe(v, t)), text(v))
}

// selfDescribing reports whether the text of a Lua value already starts
// with its type name, as in "table: 0xc000123456".
func selfDescribing(t lua.LValueType) bool {
	switch t {
	case lua.LTTable, lua.LTFunction, lua.LTUserData, lua.LTThread, lua.LTChannel:
		return true
	default:
		return false
	}
}

// isBuiltinSequence reports whether t is an unnamed slice or array type.
// Byte slices are text and excluded.
func isBuiltinSequence(t reflect.Type) bool {
	if t.Name() != "" {
		return false
	}
	switch t.Kind() {
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	default:
		return false
	}
}

// Describe returns the qualified description of a type: the import path
// and name for named types, the type literal otherwise.
func Describe(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// describe prefers the Lua type name for Lua values.
func describe(v any, t reflect.Type) string {
	if lv, ok := v.(lua.LValue); ok {
		return lv.Type().String()
	}
	return Describe(t)
}

// ShortName derives the short display name from a type description. The
// package path of the leading identifier is dropped, as is the
// "<type '...'>" decoration used by quoted descriptions. Type arguments
// are kept whole.
func ShortName(desc string) string {
	head, args := desc, ""
	if i := strings.IndexByte(desc, '['); i > 0 {
		head, args = desc[:i], desc[i:]
	}

	name := head + args
	if i := strings.LastIndexAny(head, "./"); i >= 0 {
		name = head[i+1:] + args
	} else if i := strings.IndexByte(name, '\''); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "'>")
}

// text returns the %v form of v. Byte slices are shown as text.
func text(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return sprint(v)
}

// goText returns the %#v form of v.
func goText(v any) string {
	rv := reflect.ValueOf(v)
	if gs, ok := v.(fmt.GoStringer); ok && !(rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return gs.GoString()
	}
	return fmt.Sprintf("%#v", v)
}

// fallback renders v after the primary form failed. Values that fail
// under %#v as well, or that contain themselves, get the unable marker.
func fallback(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = unable(v)
		}
	}()
	if !checkGoSyntax(reflect.ValueOf(v), 0, make(map[visit]bool)) {
		return unable(v)
	}
	return goText(v)
}

// unable returns the marker used when no text form could be produced.
func unable(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = "Unable to get repr for unknown"
		}
	}()
	return "Unable to get repr for " + reflect.TypeOf(v).String()
}
