//go:build !nogonum

package resolver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix resolves numeric matrices into shape and range summaries plus
// their leading rows.
var Matrix Resolver = matrixResolver{}

type matrixResolver struct{}

func (matrixResolver) Kind() Kind { return KindMatrix }

func (matrixResolver) Children(v any) []Child {
	m, ok := v.(mat.Matrix)
	if !ok || m == nil {
		return nil
	}
	r, c := m.Dims()
	children := []Child{
		{Name: "shape", Value: fmt.Sprintf("(%d, %d)", r, c)},
		{Name: "size", Value: r * c},
	}
	if r*c > 0 {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				x := m.At(i, j)
				lo = math.Min(lo, x)
				hi = math.Max(hi, x)
			}
		}
		children = append(children, Child{Name: "min", Value: lo}, Child{Name: "max", Value: hi})
	}

	rows := make([][]float64, min(r, MaxChildren))
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	return append(children, Child{Name: fmt.Sprintf("[0:%d]", len(rows)), Value: rows})
}

func (r matrixResolver) Resolve(v any, name string) (any, bool) {
	return lookup(r.Children(v), name)
}
