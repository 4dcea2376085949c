package wire

import (
	"encoding/xml"
	"strings"
	"testing"
	"unicode/utf8"
)

type varElement struct {
	Name          string `xml:"name,attr"`
	Type          string `xml:"type,attr"`
	Value         string `xml:"value,attr"`
	IsContainer   string `xml:"isContainer,attr"`
	IsErrorOnEval string `xml:"isErrorOnEval,attr"`
}

func parseRecord(t *testing.T, record string) varElement {
	t.Helper()
	var el varElement
	if err := xml.Unmarshal([]byte(record), &el); err != nil {
		t.Fatalf("record %q is not well-formed: %v", record, err)
	}
	return el
}

func TestEncode_Shape(t *testing.T) {
	enc := NewEncoder(DefaultOptions())

	tests := []struct {
		name     string
		v        Variable
		expected string
	}{
		{
			"scalar",
			Variable{Name: "x", Type: "int", Value: "int: 1"},
			`<var name="x" type="int" value="int: 1" />` + "\n",
		},
		{
			"container",
			Variable{Name: "xs", Type: "[]int", Value: "[]int: [1]", IsContainer: true},
			`<var name="xs" type="[]int" value="[]int: [1]" isContainer="True" />` + "\n",
		},
		{
			"error wins over container",
			Variable{Name: "e", Type: "int", Value: "int: 42", IsContainer: true, IsErrorOnEval: true},
			`<var name="e" type="int" value="int: 42" isErrorOnEval="True" />` + "\n",
		},
		{
			"empty value omitted",
			Variable{Name: "s", Type: "string"},
			`<var name="s" type="string" />` + "\n",
		},
		{
			"extra attributes",
			Variable{Name: "x", Type: "int", Value: "int: 1", Extra: ` scope="local"`},
			`<var name="x" type="int" value="int: 1" scope="local" />` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enc.Encode(tt.v); got != tt.expected {
				t.Errorf("Encode() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestEncode_Escaping(t *testing.T) {
	enc := NewEncoder(DefaultOptions())

	record := enc.Encode(Variable{
		Name:  `a<b>"c"&d`,
		Type:  "map[string]*pkg.T",
		Value: `string: <tag attr="v"> & more`,
	})

	start := strings.Index(record, `value="`) + len(`value="`)
	end := start + strings.IndexByte(record[start:], '"')
	if strings.ContainsAny(record[start:end], "<>") {
		t.Errorf("unescaped characters in value: %q", record)
	}

	el := parseRecord(t, record)
	if el.Value != `string: <tag attr="v"> & more` {
		t.Errorf("decoded value = %q", el.Value)
	}
	if el.Name != "a%3Cb>%22c%22%26d" {
		t.Errorf("decoded name = %q", el.Name)
	}
}

func TestEncode_Truncation(t *testing.T) {
	enc := NewEncoder(Options{MaxLength: 10, Ellipsis: "...", Trim: true})

	el := parseRecord(t, enc.Encode(Variable{Name: "s", Type: "string", Value: strings.Repeat("x", 25)}))
	if len(el.Value) != 10+len("...") {
		t.Errorf("len(value) = %d, expected %d", len(el.Value), 13)
	}
	if !strings.HasSuffix(el.Value, "...") {
		t.Errorf("value %q does not end with ellipsis", el.Value)
	}

	el = parseRecord(t, enc.Encode(Variable{Name: "s", Type: "string", Value: strings.Repeat("x", 10)}))
	if el.Value != strings.Repeat("x", 10) {
		t.Errorf("value at the limit was changed: %q", el.Value)
	}

	noTrim := NewEncoder(Options{MaxLength: 10, Ellipsis: "...", Trim: false})
	el = parseRecord(t, noTrim.Encode(Variable{Name: "s", Type: "string", Value: strings.Repeat("x", 25)}))
	if len(el.Value) != 25 {
		t.Errorf("untrimmed len(value) = %d", len(el.Value))
	}
}

func TestEncode_DefaultMaxLength(t *testing.T) {
	enc := NewEncoder(Options{Trim: true, Ellipsis: "..."})
	if enc.Options().MaxLength != DefaultMaxLength {
		t.Errorf("MaxLength = %d", enc.Options().MaxLength)
	}

	el := parseRecord(t, enc.Encode(Variable{Name: "s", Type: "string", Value: strings.Repeat("y", 5000)}))
	if len(el.Value) != DefaultMaxLength+3 {
		t.Errorf("len(value) = %d", len(el.Value))
	}
}

func TestEncode_InvalidUTF8(t *testing.T) {
	enc := NewEncoder(DefaultOptions())

	record := enc.Encode(Variable{Name: "b", Type: "[]uint8", Value: "caf\xe9 \x01ok"})
	if !utf8.ValidString(record) {
		t.Fatalf("record is not valid UTF-8: %q", record)
	}
	el := parseRecord(t, record)
	if el.Value != "café �ok" {
		t.Errorf("value = %q", el.Value)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	enc := NewEncoder(DefaultOptions())
	v := Variable{Name: "x y", Type: "int", Value: "int: 1", IsContainer: true}

	if enc.Encode(v) != enc.Encode(v) {
		t.Error("Encode() is not deterministic")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain_name.x-1~", "plain_name.x-1~"},
		{"a b/c=d>e", "a b/c=d>e"},
		{"a<b", "a%3Cb"},
		{`"q"`, "%22q%22"},
		{"é", "%C3%A9"},
		{"50%", "50%25"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Quote(tt.input, NameSafe); got != tt.expected {
				t.Errorf("Quote(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate_Runes(t *testing.T) {
	if got := Truncate("héllo wörld", 5, "..."); got != "héllo..." {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("abc", 0, "..."); got != "abc" {
		t.Errorf("Truncate() with max 0 = %q", got)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<a href="x">&</a>`); got != "&lt;a href=&quot;x&quot;&gt;&amp;&lt;/a&gt;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}
