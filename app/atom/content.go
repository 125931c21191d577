package atom

import "strings"

type contentKind int

const (
	contentText contentKind = iota
	contentXHTML
	contentXML
	// contentOpaque covers every other MIME type. The value is written as
	// given; base64 encoding of binary content is not done here.
	contentOpaque
)

// classifyContent maps an Atom content type attribute to how its value is
// written.
func classifyContent(contentType string) contentKind {
	t, _, _ := strings.Cut(contentType, ";")
	t = strings.ToLower(strings.TrimSpace(t))

	switch {
	case t == "", t == "text", t == "html", strings.HasPrefix(t, "text/"):
		return contentText
	case t == "xhtml":
		return contentXHTML
	case strings.HasSuffix(t, "+xml"), strings.HasSuffix(t, "/xml"):
		return contentXML
	default:
		return contentOpaque
	}
}

// writeContent writes the <content> element of e, if it has any.
func (w *xmlWriter) writeContent(e *Entry, level int) {
	var contentType, inner string
	if e.Content != nil {
		contentType = e.Content.Type
		inner = e.Content.Content
	}

	if src := entrySource(e); src != "" {
		w.element("content", level, "", attributes("type", contentType, "src", src))
		return
	}
	if inner == "" {
		return
	}

	switch classifyContent(contentType) {
	case contentXHTML:
		w.open("content", level, attributes("type", contentType))
		w.element("div", level+1, inner, attribute("xmlns", XHTMLNamespace))
		w.close("content", level)
	case contentText:
		w.element("content", level, EscapeContent(inner), attributes("type", contentType))
	default:
		w.element("content", level, inner, attributes("type", contentType))
	}
}

// writeText writes a text construct. Only text, html and xhtml are valid
// here; anything else is written as plain text.
func (w *xmlWriter) writeText(name string, level int, t Text) {
	if t.IsZero() {
		return
	}

	switch strings.ToLower(t.Type) {
	case "xhtml":
		div := `<div xmlns="` + XHTMLNamespace + `">` + t.Content + `</div>`
		w.element(name, level, div, attribute("type", "xhtml"))
	case "text", "html":
		w.element(name, level, EscapeContent(t.Content), escapedAttribute("type", strings.ToLower(t.Type)))
	default:
		w.element(name, level, EscapeContent(t.Content), "")
	}
}
