package library

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
)

type fileType struct {
	mediaType string
	atomType  string
}

// Extensions served and published with fixed types
var knownTypes = map[string]fileType{
	"txt":   {mediaType: "text/plain; charset=utf-8", atomType: "text"},
	"html":  {mediaType: "text/html; charset=utf-8", atomType: "html"},
	"htm":   {mediaType: "text/html; charset=utf-8", atomType: "html"},
	"xhtml": {mediaType: "application/xhtml+xml", atomType: "xhtml"},
	"xml":   {mediaType: "application/xml", atomType: "application/xml"},
}

// splitName returns the lowercase extension and the name without it.
func splitName(name string) (string, string) {
	ext := filepath.Ext(name)
	title := strings.TrimSuffix(name, ext)
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if title == "" {
		return ext, name
	}
	return ext, title
}

// MediaTypeForName returns the HTTP content type of a known extension.
func MediaTypeForName(name string) (string, bool) {
	ext, _ := splitName(name)
	t, ok := knownTypes[ext]
	return t.mediaType, ok
}

// detectType resolves the media and Atom content types of a file, sniffing
// the body when the extension is unknown.
func detectType(ext string, data []byte) fileType {
	if t, ok := knownTypes[ext]; ok {
		return t
	}

	mtype := mimetype.Detect(data)
	base, _, _ := strings.Cut(mtype.String(), ";")
	return fileType{mediaType: mtype.String(), atomType: strings.TrimSpace(base)}
}

// inlineBody returns the Atom content type and the body as it is embedded
// in an entry: markup without its prolog, text as is, anything else base64
// encoded. Markup that is not well-formed is embedded as text.
func inlineBody(t fileType, data []byte) (string, string) {
	switch {
	case t.atomType == "xhtml" || isXMLType(t.atomType):
		body := stripProlog(string(data))
		if err := checkWellFormed(body); err != nil {
			slog.Debug("Publishing malformed markup as text", "type", t.atomType, "error", err)
			return "text", string(data)
		}
		return t.atomType, body
	case t.atomType == "text" || t.atomType == "html" || strings.HasPrefix(t.atomType, "text/"):
		return t.atomType, string(data)
	default:
		return t.atomType, base64.StdEncoding.EncodeToString(data)
	}
}

// checkWellFormed reports the first syntax error in s, or an error when s
// holds no element.
func checkWellFormed(s string) error {
	dec := xml.NewDecoder(strings.NewReader(s))
	elements := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			elements++
		}
	}
	if elements == 0 {
		return errors.New("no root element")
	}
	return nil
}

func isXMLType(mediaType string) bool {
	return strings.HasSuffix(mediaType, "+xml") || strings.HasSuffix(mediaType, "/xml")
}

// stripProlog drops the XML declaration, processing instructions, comments
// and doctype in front of the root element, which may not appear inside
// another document.
func stripProlog(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		switch {
		case strings.HasPrefix(s, "<?"):
			end := strings.Index(s, "?>")
			if end < 0 {
				return s
			}
			s = s[end+2:]
		case strings.HasPrefix(s, "<!--"):
			end := strings.Index(s, "-->")
			if end < 0 {
				return s
			}
			s = s[end+3:]
		case len(s) >= 9 && strings.EqualFold(s[:9], "<!DOCTYPE"):
			end := doctypeEnd(s)
			if end < 0 {
				return s
			}
			s = s[end:]
		default:
			return s
		}
	}
}

// doctypeEnd returns the index just past the doctype declaration, skipping
// over an internal subset.
func doctypeEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth <= 0 {
				return i + 1
			}
		}
	}
	return -1
}
