//go:build !nogonum

package registry

import (
	"reflect"

	"gonum.org/v1/gonum/mat"

	"github.com/dshills/varwire/internal/resolver"
)

var matrixType = reflect.TypeOf((*mat.Matrix)(nil)).Elem()

func matrixProbe() (Entry, Placement, bool) {
	return Entry{
		Name:     "matrix",
		Match:    implements(matrixType),
		Resolver: resolver.Matrix,
	}, PlaceBack, true
}
