package resolver

import (
	"fmt"
	"sort"

	"github.com/dshills/varwire/internal/stack"
)

// BackName is the name of the child linking a frame to its caller.
const BackName = "__back__"

// Frame resolves stack frames into their locals.
var Frame Resolver = frameResolver{}

type frameResolver struct{}

func (frameResolver) Kind() Kind { return KindFrame }

func (frameResolver) Children(v any) []Child {
	f, ok := v.(*stack.Frame)
	if !ok || f == nil {
		return nil
	}
	names := make([]string, 0, len(f.Locals))
	for name := range f.Locals {
		names = append(names, name)
	}
	sort.Strings(names)

	children := make([]Child, 0, len(names)+1)
	for _, name := range names {
		children = append(children, Child{Name: name, Value: f.Locals[name]})
	}
	if f.Back != nil {
		children = append(children, Child{Name: BackName, Value: f.Back})
	}
	return children
}

func (r frameResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}

// FrameName returns the one-line description of a frame used in place of
// a dump of its contents.
func FrameName(f *stack.Frame) string {
	if f == nil {
		return "None"
	}
	if f.Function == "" && f.File == "" {
		return "frame object"
	}
	return fmt.Sprintf("frame: %s [%s:%d]  id:%s", f.Function, f.FileName(), f.Line, f.ID)
}
