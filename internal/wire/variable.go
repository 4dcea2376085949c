package wire

// Variable is one resolved variable ready for encoding.
type Variable struct {
	// Name is the variable name.
	Name string

	// Type is the variable type name.
	Type string

	// Value is the display text. Empty means no value attribute.
	Value string

	// IsContainer marks values that can be expanded into children.
	IsContainer bool

	// IsErrorOnEval marks values that are captured evaluation errors.
	// It takes precedence over IsContainer.
	IsErrorOnEval bool

	// Extra is appended verbatim after the flags, before the element end.
	Extra string
}

// Flag returns the attribute signalling the variable state, if any.
func (v Variable) Flag() string {
	switch {
	case v.IsErrorOnEval:
		return ` isErrorOnEval="True"`
	case v.IsContainer:
		return ` isContainer="True"`
	default:
		return ""
	}
}
