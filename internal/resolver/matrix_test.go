//go:build !nogonum

package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

func TestMatrix_Children(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, -3, 4, 2})

	shape, _ := Matrix.Resolve(m, "shape")
	if shape != "(2, 2)" {
		t.Errorf("shape = %v", shape)
	}
	lo, _ := Matrix.Resolve(m, "min")
	hi, _ := Matrix.Resolve(m, "max")
	if lo != -3.0 || hi != 4.0 {
		t.Errorf("min/max = %v/%v", lo, hi)
	}
	rows, ok := Matrix.Resolve(m, "[0:2]")
	if !ok {
		t.Fatal("rows child missing")
	}
	if diff := cmp.Diff([][]float64{{1, -3}, {4, 2}}, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}
