package wire

import (
	"strings"
)

// Default encoder settings.
const (
	DefaultMaxLength = 1000
	DefaultEllipsis  = "..."
)

// Options configures an Encoder.
type Options struct {
	// MaxLength is the maximum value length in characters.
	MaxLength int

	// Ellipsis is appended to truncated values.
	Ellipsis string

	// Trim enables value truncation.
	Trim bool
}

// DefaultOptions returns the default encoder options.
func DefaultOptions() Options {
	return Options{
		MaxLength: DefaultMaxLength,
		Ellipsis:  DefaultEllipsis,
		Trim:      true,
	}
}

// Encoder turns Variables into wire records.
type Encoder struct {
	opts Options
}

// NewEncoder creates an encoder. A non-positive MaxLength falls back to
// DefaultMaxLength.
func NewEncoder(opts Options) *Encoder {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	return &Encoder{opts: opts}
}

// Options returns the encoder options.
func (e *Encoder) Options() Options {
	return e.opts
}

// Encode returns the wire record for v.
func (e *Encoder) Encode(v Variable) string {
	var b strings.Builder
	b.WriteString(`<var name="`)
	b.WriteString(EscapeXML(Quote(v.Name, NameSafe)))
	b.WriteString(`" type="`)
	b.WriteString(EscapeXML(NormalizeUTF8(v.Type)))
	b.WriteByte('"')

	if value := e.Value(v.Value); value != "" {
		b.WriteString(` value="`)
		b.WriteString(EscapeXML(value))
		b.WriteByte('"')
	}

	b.WriteString(v.Flag())
	b.WriteString(v.Extra)
	b.WriteString(" />\n")
	return b.String()
}

// Value returns the normalised and truncated value text, unescaped.
func (e *Encoder) Value(s string) string {
	if s == "" {
		return ""
	}
	s = NormalizeUTF8(s)
	if e.opts.Trim {
		s = Truncate(s, e.opts.MaxLength, e.opts.Ellipsis)
	}
	return s
}
