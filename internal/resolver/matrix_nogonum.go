//go:build nogonum

package resolver

// Matrix is unavailable in builds without gonum; it resolves nothing.
var Matrix Resolver = matrixResolver{}

type matrixResolver struct{}

func (matrixResolver) Kind() Kind { return KindMatrix }

func (matrixResolver) Children(any) []Child { return nil }

func (matrixResolver) Resolve(any, string) (any, bool) { return nil, false }
