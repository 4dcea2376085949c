// Package dump produces the wire records for a frame's variables.
//
// A Dumper wires the three stages of the variable encoder together:
// classification (registry), display text (format) and record encoding
// (wire). Frame dumps iterate variables in sorted name order so repeated
// dumps of an unchanged frame are byte-identical, and a failure on one
// variable is reported to the logging sink and skipped rather than aborting
// the dump.
//
//	d := dump.New(dump.WithSink(logging.NewZapSink(logger)))
//	out := d.Frame(map[string]any{"x": 1, "items": []string{"a"}})
//
// Values wrapped in ErrorOnEval are displayed from their wrapped result but
// flagged as evaluation errors instead of containers.
package dump
