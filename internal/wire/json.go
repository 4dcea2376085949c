package wire

import (
	"github.com/tidwall/sjson"
)

// EncodeJSON returns v as a JSON object with the same fields and flag
// precedence as Encode. Names and types are not percent-quoted. Extra is
// XML attribute text and is not carried.
func (e *Encoder) EncodeJSON(v Variable) (string, error) {
	doc := "{}"
	var err error

	set := func(path string, value any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, value)
		}
	}

	set("name", NormalizeUTF8(v.Name))
	set("type", NormalizeUTF8(v.Type))
	if value := e.Value(v.Value); value != "" {
		set("value", value)
	}
	switch {
	case v.IsErrorOnEval:
		set("isErrorOnEval", true)
	case v.IsContainer:
		set("isContainer", true)
	}

	if err != nil {
		return "", err
	}
	return doc, nil
}

// AppendJSON appends an encoded object to a JSON array document.
func AppendJSON(array, object string) (string, error) {
	if array == "" {
		array = "[]"
	}
	return sjson.SetRaw(array, "-1", object)
}
