// Package luahost runs Lua scripts in a sandboxed gopher-lua state and
// exposes the variable dump to them.
//
// Scripts get three builtins on top of the safe base, table, string and
// math libraries:
//
//	dump()              -- records for the caller's locals
//	dumpstack()         -- every active frame with its locals
//	inspect(name, expr) -- evaluates expr against the caller's locals
//
// Output goes to the writer configured with WithOutput, as XML records or
// as JSON arrays depending on WithFormat. A failed inspect expression is
// still written, flagged isErrorOnEval, with the error message as its
// value.
//
// Like gopher-lua itself, a State must only be used from one goroutine at
// a time.
package luahost
