// Package format renders runtime values as short display strings.
//
// Format never panics. The primary form is "<ShortType>: <value>" built
// from the value's %v text; stack frames render as their frame name and
// oversized built-in slices and arrays render as a length placeholder
// instead of their elements. When the primary form fails (a String or
// Error method panics) the %#v form is tried, and when that fails too a
// fixed "Unable to get repr for <type>" marker is returned.
package format
