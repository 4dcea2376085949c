package luahost

import (
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/varwire/internal/dump"
)

func (s *State) installBuiltins() {
	s.L.SetGlobal("dump", s.L.NewFunction(s.luaDump))
	s.L.SetGlobal("dumpstack", s.L.NewFunction(s.luaDumpStack))
	s.L.SetGlobal("inspect", s.L.NewFunction(s.luaInspect))
	s.L.SetGlobal("expand", s.L.NewFunction(s.luaExpand))
}

// luaDump writes the caller's locals, or with (name, value) arguments a
// single record.
func (s *State) luaDump(L *lua.LState) int {
	if L.GetTop() >= 1 {
		name := L.CheckString(1)
		s.writeVar(name, L.Get(2))
		return 0
	}

	frame := Caller(L)
	if frame == nil {
		return 0
	}
	if s.format == FormatJSON {
		s.write(s.dumper.FrameJSON(frame.Locals))
	} else {
		s.write(s.dumper.Frame(frame.Locals))
	}
	return 0
}

// luaDumpStack writes every active frame.
func (s *State) luaDumpStack(L *lua.LState) int {
	frames := Capture(L).Frames
	if s.format == FormatJSON {
		s.write(s.dumper.StackJSON(frames))
	} else {
		s.write(s.dumper.Stack(frames))
	}
	return 0
}

// luaInspect evaluates expr with the caller's locals in scope and writes
// the result as name. It returns the value, or nil and the error message.
func (s *State) luaInspect(L *lua.LState) int {
	name := L.CheckString(1)
	expr := L.CheckString(2)

	value, err := s.eval(L, expr)
	if err != nil {
		msg := lua.LString(err.Error())
		s.writeVar(name, dump.ErrorOnEval{Result: msg})
		L.Push(lua.LNil)
		L.Push(msg)
		return 2
	}
	s.writeVar(name, value)
	L.Push(value)
	return 1
}

// luaExpand writes the children of the value found by following the
// remaining arguments as a path from the variable name. The name is looked
// up among the caller's locals, then the globals. It returns true, or nil
// and the error message.
func (s *State) luaExpand(L *lua.LState) int {
	segments := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		segments = append(segments, L.CheckString(i))
	}
	if len(segments) == 0 {
		L.ArgError(1, "variable name expected")
		return 0
	}

	vars := make(map[string]any)
	if frame := Caller(L); frame != nil {
		for k, v := range frame.Locals {
			vars[k] = v
		}
	}
	if _, ok := vars[segments[0]]; !ok {
		if g := L.GetGlobal(segments[0]); g != lua.LNil {
			vars[segments[0]] = g
		}
	}

	v, err := s.dumper.Lookup(vars, strings.Join(segments, dump.PathSeparator))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	if s.format == FormatJSON {
		s.write(s.dumper.ChildrenJSON(v))
	} else {
		s.write(s.dumper.Children(v))
	}
	L.Push(lua.LTrue)
	return 1
}

// eval compiles "return expr" in an environment holding the caller's
// locals over the globals.
func (s *State) eval(L *lua.LState, expr string) (lua.LValue, error) {
	fn, err := L.LoadString("return " + expr)
	if err != nil {
		return lua.LNil, err
	}

	env := L.NewTable()
	if frame := Caller(L); frame != nil {
		for k, v := range frame.Locals {
			if lv, ok := v.(lua.LValue); ok {
				env.RawSetString(k, lv)
			}
		}
	}
	mt := L.NewTable()
	mt.RawSetString("__index", L.G.Global)
	L.SetMetatable(env, mt)
	L.SetFEnv(fn, env)

	top := L.GetTop()
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		L.SetTop(top)
		var apiErr *lua.ApiError
		if errors.As(err, &apiErr) && apiErr.Object != nil && apiErr.Object != lua.LNil {
			return lua.LNil, errors.New(apiErr.Object.String())
		}
		return lua.LNil, err
	}
	value := L.Get(-1)
	L.SetTop(top)
	return value, nil
}

func (s *State) writeVar(name string, v any) {
	if s.format == FormatJSON {
		s.write(s.dumper.FrameJSON(map[string]any{name: v}))
		return
	}
	record, err := s.dumper.Var(name, v)
	if err != nil {
		s.logger.Warn("dump failed", zap.String("variable", name), zap.Error(err))
		return
	}
	s.write(record)
}
