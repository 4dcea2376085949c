package luahost

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/varwire/internal/stack"
)

// maxLocals caps the local slots read from one frame.
const maxLocals = 250

// Capture converts the active Lua frames into a call stack, innermost
// first. Go function frames (the builtins themselves) are skipped.
func Capture(L *lua.LState) *stack.CallStack {
	var frames []*stack.Frame
	for level := 0; ; level++ {
		dbg, ok := L.GetStack(level)
		if !ok {
			break
		}
		if _, err := L.GetInfo("nSl", dbg, lua.LNil); err != nil {
			continue
		}
		if dbg.What == "G" {
			continue
		}
		frames = append(frames, stack.NewFrame(functionName(dbg), dbg.Source, dbg.CurrentLine, locals(L, dbg)))
	}
	return stack.NewCallStack(0, "main", frames)
}

// Caller returns the innermost Lua frame, or nil when no Lua code is
// running.
func Caller(L *lua.LState) *stack.Frame {
	return Capture(L).Top()
}

func functionName(dbg *lua.Debug) string {
	switch {
	case dbg.Name != "":
		return dbg.Name
	case dbg.What == "main", dbg.LineDefined == 0:
		return "main chunk"
	default:
		return "?"
	}
}

// locals reads the active locals of a frame. Temporaries such as
// "(for index)" are left out; a shadowed name keeps its innermost value.
func locals(L *lua.LState, dbg *lua.Debug) map[string]any {
	vars := make(map[string]any)
	for n := 1; n <= maxLocals; n++ {
		name, value := L.GetLocal(dbg, n)
		if name == "" {
			break
		}
		if strings.HasPrefix(name, "(") {
			continue
		}
		vars[name] = value
	}
	return vars
}
