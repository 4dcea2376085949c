// Package stack models call-stack frames of an inspected program.
//
// A Frame is the unit the variable encoder receives when asked to describe
// a paused program: it carries the function, source location and the
// already-collected mapping of local variable names to values. Frames link
// to their caller through Back, forming a CallStack.
//
// Frames can be built by hand, captured from the current goroutine with
// Capture, or produced by a host runtime (see the luahost package).
package stack
