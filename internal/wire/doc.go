// Package wire encodes resolved variables as XML-like wire records.
//
// A record has the shape
//
//	<var name="NAME" type="TYPE" value="VALUE" isContainer="True" />
//
// with isErrorOnEval="True" in place of isContainer for evaluation errors
// and the value attribute omitted when the value text is empty. Each record
// ends with a newline so records can be concatenated.
//
// Encoding is a pure function of the Variable and the encoder options.
package wire
