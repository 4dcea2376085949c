package resolver

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/varwire/internal/stack"
)

func names(children []Child) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.Name
	}
	return out
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindDefault, "default"},
		{KindSequence, "sequence"},
		{KindMapping, "mapping"},
		{KindSet, "set"},
		{KindMultiMap, "multimap"},
		{KindFrame, "frame"},
		{KindInstance, "instance"},
		{KindArray, "array"},
		{KindMatrix, "matrix"},
		{KindFunction, "function"},
		{Kind(99), "kind(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestSequence_Children(t *testing.T) {
	children := Sequence.Children([]string{"a", "b"})

	want := []Child{{"0", "a"}, {"1", "b"}, {LenName, 2}}
	if diff := cmp.Diff(want, children); diff != "" {
		t.Errorf("Children() mismatch (-want +got):\n%s", diff)
	}

	v, ok := Sequence.Resolve([2]int{7, 8}, "1")
	if !ok || v != 8 {
		t.Errorf("Resolve(1) = %v, %v", v, ok)
	}
	if _, ok := Sequence.Resolve([]int{1}, "5"); ok {
		t.Error("Resolve out of range should fail")
	}
}

func TestSequence_Capped(t *testing.T) {
	children := Sequence.Children(make([]int, MaxChildren+5))

	if len(children) != MaxChildren+2 {
		t.Fatalf("len(children) = %d, expected %d", len(children), MaxChildren+2)
	}
	if children[MaxChildren].Name != TooLargeName {
		t.Errorf("expected marker child, got %q", children[MaxChildren].Name)
	}
	last := children[len(children)-1]
	if last.Name != LenName || last.Value != MaxChildren+5 {
		t.Errorf("last child = %+v", last)
	}
}

func TestMapping_ChildrenSorted(t *testing.T) {
	children := Mapping.Children(map[int]string{10: "ten", 2: "two", 1: "one"})

	got := names(children)
	want := []string{"1", "2", "10", LenName}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	v, ok := Mapping.Resolve(map[string]int{"x": 1}, "x")
	if !ok || v != 1 {
		t.Errorf("Resolve(x) = %v, %v", v, ok)
	}
}

func TestSet_Children(t *testing.T) {
	children := Set.Children(map[string]struct{}{"b": {}, "a": {}})

	want := []string{"a", "b", LenName}
	if diff := cmp.Diff(want, names(children)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

type frozen []any

func (f frozen) Members() []any { return f }

func TestSet_SetView(t *testing.T) {
	children := Set.Children(frozen{3, 3, 4})

	want := []string{"3", "3 (1)", "4", LenName}
	if diff := cmp.Diff(want, names(children)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiMap_Children(t *testing.T) {
	values := url.Values{"q": {"a", "b"}, "page": {"2"}}
	children := MultiMap.Children(values)

	want := []Child{{"page", []string{"2"}}, {"q", []string{"a", "b"}}}
	if diff := cmp.Diff(want, children); diff != "" {
		t.Errorf("Children() mismatch (-want +got):\n%s", diff)
	}
}

func TestFrame_Children(t *testing.T) {
	caller := stack.NewFrame("main", "/src/main.go", 3, nil)
	f := stack.NewFrame("run", "/src/run.go", 10, map[string]any{"z": 1, "a": "x"})
	f.Back = caller

	got := names(Frame.Children(f))
	want := []string{"a", "z", BackName}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	back, ok := Frame.Resolve(f, BackName)
	if !ok || back != caller {
		t.Errorf("Resolve(%s) = %v", BackName, back)
	}
}

func TestFrameName(t *testing.T) {
	f := &stack.Frame{ID: "42", Function: "run", File: "/src/run.go", Line: 10}

	if got := FrameName(f); got != "frame: run [run.go:10]  id:42" {
		t.Errorf("FrameName() = %q", got)
	}
	if got := FrameName(nil); got != "None" {
		t.Errorf("FrameName(nil) = %q", got)
	}
	if got := FrameName(&stack.Frame{}); got != "frame object" {
		t.Errorf("FrameName(empty) = %q", got)
	}
}

type point struct {
	X, Y   int
	hidden string
}

func TestDefault_Struct(t *testing.T) {
	p := &point{X: 1, Y: 2, hidden: "h"}

	want := []Child{{"X", 1}, {"Y", 2}, {"hidden", "h"}}
	if diff := cmp.Diff(want, Default.Children(p)); diff != "" {
		t.Errorf("Children() mismatch (-want +got):\n%s", diff)
	}

	v, ok := Default.Resolve(p, "Y")
	if !ok || v != 2 {
		t.Errorf("Resolve(Y) = %v, %v", v, ok)
	}
}

func TestDefault_FuncAndChan(t *testing.T) {
	children := Default.Children(TestDefault_FuncAndChan)
	if len(children) != 1 || !strings.HasSuffix(children[0].Value.(string), "TestDefault_FuncAndChan") {
		t.Errorf("func children = %+v", children)
	}

	ch := make(chan int, 4)
	ch <- 1
	v, ok := Default.Resolve(ch, "len")
	if !ok || v != 1 {
		t.Errorf("Resolve(len) = %v, %v", v, ok)
	}

	if got := Default.Children(nil); got != nil {
		t.Errorf("Children(nil) = %v", got)
	}
	var np *point
	if got := Default.Children(np); got != nil {
		t.Errorf("Children(nil pointer) = %v", got)
	}
}

func TestArray_LuaTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.Append(lua.LString("first"))
	tbl.Append(lua.LString("second"))
	tbl.RawSetString("name", lua.LString("t"))

	got := names(Array.Children(tbl))
	want := []string{"1", "2", "name", LenName}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	v, ok := Array.Resolve(tbl, "name")
	if !ok || v != lua.LString("t") {
		t.Errorf("Resolve(name) = %v, %v", v, ok)
	}
}

func TestInstance_LuaUserData(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	ud := L.NewUserData()
	ud.Value = &point{X: 5}

	got := names(Instance.Children(ud))
	want := []string{ValueName, "X", "Y", "hidden"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestFunction_Lua(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString("function add(a, b) return a + b end"); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	fn := L.GetGlobal("add")

	params, ok := Function.Resolve(fn, "params")
	if !ok || params != 2 {
		t.Errorf("Resolve(params) = %v, %v", params, ok)
	}

	builtin, _ := Function.Resolve(L.GetGlobal("print"), "builtin")
	if builtin != true {
		t.Errorf("print builtin = %v", builtin)
	}
}
