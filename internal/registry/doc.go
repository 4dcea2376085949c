// Package registry classifies runtime values for the variable encoder.
//
// Classification answers two questions about an arbitrary value: what is
// its type name, and which resolver (if any) can expand it into children.
// A value with a resolver is a container; a value without one is a scalar.
//
// Lookup is two-tier:
//
//  1. Bridged type names. Values that cross from the Lua runtime
//     (*lua.LUserData, *lua.LTable) are recognised by exact type name and
//     win over any structural match.
//  2. The ordered type table. Entries are consulted in order and the first
//     structural match wins. Values that match nothing get the default
//     resolver, so only scalar entries ever report "no resolver".
//
// The table is built lazily on first use, exactly once, from the base
// entries plus the optional probes that report themselves available. A
// registry created for the Lua host builds the Lua table instead. Once
// built, the table is read-only and shared without locking.
package registry
