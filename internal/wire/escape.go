package wire

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// NameSafe lists the characters left unquoted in variable names besides
// letters, digits and "_.-~".
const NameSafe = "/>_= "

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeXML escapes the characters that would break an attribute value.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// Quote percent-encodes s byte-wise, leaving letters, digits, "_.-~" and
// the characters in safe unchanged.
func Quote(s, safe string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || (c < utf8.RuneSelf && strings.IndexByte(safe, c) >= 0) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~':
		return true
	default:
		return false
	}
}

// NormalizeUTF8 returns s as valid UTF-8 that can appear in an XML
// document. Bytes that do not form valid UTF-8 are decoded as Windows-1252
// and characters XML 1.0 forbids are replaced with U+FFFD.
func NormalizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return strings.Map(xmlChar, s)
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			r = charmap.Windows1252.DecodeByte(s[i])
		}
		b.WriteRune(xmlChar(r))
		i += size
	}
	return b.String()
}

// xmlChar maps characters outside the XML 1.0 Char production to U+FFFD.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r < 0x20:
		return utf8.RuneError
	case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return utf8.RuneError
	default:
		return r
	}
}

// Truncate shortens s to max runes, appending ellipsis when it was cut.
// A max of zero or less disables truncation.
func Truncate(s string, max int, ellipsis string) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}
