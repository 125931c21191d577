package atom

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
	indentWidth    = 4
)

// EscapeContent escapes s for use as element character data. An ampersand
// that already starts "&amp;" is left alone so escaping is stable on text that
// was escaped once before.
func EscapeContent(s string) string {
	return escape(s, false)
}

// EscapeAttribute escapes s for use inside a double-quoted attribute value.
func EscapeAttribute(s string) string {
	return escape(s, true)
}

func escape(s string, attr bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '&':
			if strings.HasPrefix(s[i:], "&amp;") {
				b.WriteString("&amp;")
				i += len("&amp;")
				continue
			}
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"' && attr:
			b.WriteString("&quot;")
		case r == utf8.RuneError && width == 1, !isXMLChar(r):
			b.WriteRune(utf8.RuneError)
		default:
			b.WriteString(s[i : i+width])
		}
		i += width
	}
	return b.String()
}

// isXMLChar reports whether r is allowed by the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// xmlWriter accumulates indented XML. Callers pass content that is already
// escaped (or deliberately raw).
type xmlWriter struct {
	buf bytes.Buffer
}

func (w *xmlWriter) String() string {
	return w.buf.String()
}

func (w *xmlWriter) indent(level int) {
	for i := 0; i < level*indentWidth; i++ {
		w.buf.WriteByte(' ')
	}
}

// element writes <name attrs>content</name>, or <name attrs/> when content is
// empty.
func (w *xmlWriter) element(name string, level int, content string, attrs string) {
	w.indent(level)
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.buf.WriteString(attrs)
	if content == "" {
		w.buf.WriteString("/>\n")
		return
	}
	w.buf.WriteByte('>')
	w.buf.WriteString(content)
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// escapedElement writes name with escaped text content, skipping empty values.
func (w *xmlWriter) escapedElement(name string, level int, value string) {
	if value == "" {
		return
	}
	w.element(name, level, EscapeContent(value), "")
}

func (w *xmlWriter) open(name string, level int, attrs string) {
	w.indent(level)
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.buf.WriteString(attrs)
	w.buf.WriteString(">\n")
}

func (w *xmlWriter) close(name string, level int) {
	w.indent(level)
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// raw writes caller-supplied markup on its own indented line.
func (w *xmlWriter) raw(level int, markup string) {
	if markup == "" {
		return
	}
	w.indent(level)
	w.buf.WriteString(markup)
	w.buf.WriteByte('\n')
}

// attribute renders name="value" without escaping; empty values are dropped.
func attribute(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + `="` + value + `"`
}

func escapedAttribute(name, value string) string {
	if value == "" {
		return ""
	}
	return attribute(name, EscapeAttribute(value))
}

// attributes renders name/value pairs in order.
func attributes(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(escapedAttribute(pairs[i], pairs[i+1]))
	}
	return b.String()
}
