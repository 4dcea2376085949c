// Package resolver exposes the children of compound values.
//
// A Resolver is the capability that turns a container value (slice, map,
// set, stack frame, struct, bridged Lua value, numeric matrix) into an
// ordered list of named children for tree display. The set of resolvers is
// closed: every variant is a package-level value of an unexported type and
// reports its Kind.
//
// The variable encoder only needs to know whether a value has a resolver to
// flag it as a container; the children themselves are requested later, when
// the front end expands a node.
package resolver
