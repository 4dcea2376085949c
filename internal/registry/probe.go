package registry

import (
	"math/big"
	"net/http"
	"net/url"
	"reflect"

	"github.com/dshills/varwire/internal/resolver"
)

// Placement says where an optional entry joins the table.
type Placement int

const (
	// PlaceBack appends the entry after the existing entries.
	PlaceBack Placement = iota
	// PlaceFront inserts the entry before the existing entries, ahead of
	// the generic entries it would otherwise be shadowed by.
	PlaceFront
)

// Probe reports an optional table entry. ok is false when the capability
// is unavailable, in which case the entry is ignored.
type Probe func() (entry Entry, place Placement, ok bool)

// DefaultProbes returns the built-in optional entries in evaluation order.
func DefaultProbes() []Probe {
	return []Probe{
		bigNumberProbe,
		byteTextProbe,
		setViewProbe,
		matrixProbe,
		multiMapProbe,
		frameProbe,
	}
}

// buildTable evaluates the probes against the base entries. A panicking
// probe counts as unavailable.
func buildTable(base []Entry, probes []Probe) []Entry {
	table := base
	for _, p := range probes {
		entry, place, ok := runProbe(p)
		if !ok {
			continue
		}
		if place == PlaceFront {
			table = append([]Entry{entry}, table...)
		} else {
			table = append(table, entry)
		}
	}
	return table
}

func runProbe(p Probe) (entry Entry, place Placement, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	entry, place, ok = p()
	if ok && entry.Match == nil {
		ok = false
	}
	return entry, place, ok
}

func bigNumberProbe() (Entry, Placement, bool) {
	return Entry{
		Name: "big-number",
		Match: typeIs(
			reflect.TypeOf((*big.Int)(nil)), reflect.TypeOf(big.Int{}),
			reflect.TypeOf((*big.Float)(nil)), reflect.TypeOf(big.Float{}),
			reflect.TypeOf((*big.Rat)(nil)), reflect.TypeOf(big.Rat{}),
		),
	}, PlaceBack, true
}

// byteTextProbe treats byte slices as text. They are slices in Go, so the
// entry goes ahead of the sequence entry.
func byteTextProbe() (Entry, Placement, bool) {
	return Entry{
		Name: "byte-text",
		Match: func(t reflect.Type) bool {
			return t != nil && t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
		},
	}, PlaceFront, true
}

var setViewType = reflect.TypeOf((*resolver.SetView)(nil)).Elem()

func setViewProbe() (Entry, Placement, bool) {
	return Entry{
		Name:     "set-view",
		Match:    implements(setViewType),
		Resolver: resolver.Set,
	}, PlaceFront, true
}

func multiMapProbe() (Entry, Placement, bool) {
	return Entry{
		Name:     "multimap",
		Match:    typeIs(reflect.TypeOf(url.Values(nil)), reflect.TypeOf(http.Header(nil))),
		Resolver: resolver.MultiMap,
	}, PlaceFront, true
}

func frameProbe() (Entry, Placement, bool) {
	return Entry{
		Name:     "frame",
		Match:    typeIs(frameType),
		Resolver: resolver.Frame,
	}, PlaceBack, true
}
