// Package atom serializes feed descriptions into RFC 4287 Atom documents.
package atom

import (
	"time"
)

const (
	Namespace      = "http://www.w3.org/2005/Atom"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
	DefaultLang    = "en"
)

// Feed describes an Atom <feed>. The same shape is used for the <source>
// element of an entry copied from another feed.
//
// Singular and plural fields (Author/Authors, Link/Links, ...) are two ways of
// supplying the same sequence; when both are set the plural one wins.
type Feed struct {
	ID      string `yaml:"id" json:"id"`
	Title   Text   `yaml:"title" json:"title"`
	Updated Date   `yaml:"updated" json:"updated"`

	Base      string     `yaml:"base" json:"base"`
	Lang      Lang       `yaml:"lang" json:"lang"`
	Generator *Generator `yaml:"generator" json:"generator"`

	Author       *Person  `yaml:"author" json:"author"`
	Authors      []Person `yaml:"authors" json:"authors"`
	Contributor  *Person  `yaml:"contributor" json:"contributor"`
	Contributors []Person `yaml:"contributors" json:"contributors"`

	Subtitle Text   `yaml:"subtitle" json:"subtitle"`
	Icon     string `yaml:"icon" json:"icon"`
	Logo     string `yaml:"logo" json:"logo"`
	Rights   Text   `yaml:"rights" json:"rights"`

	Category   *Category  `yaml:"category" json:"category"`
	Categories []Category `yaml:"categories" json:"categories"`
	Link       *Link      `yaml:"link" json:"link"`
	Links      []Link     `yaml:"links" json:"links"`

	ExtensionElements string `yaml:"extensionElements" json:"extensionElements"`

	Entry   *Entry  `yaml:"entry" json:"entry"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

type Entry struct {
	ID        string `yaml:"id" json:"id"`
	Title     Text   `yaml:"title" json:"title"`
	Updated   Date   `yaml:"updated" json:"updated"`
	Published Date   `yaml:"published" json:"published"`

	// Src points at out-of-line content; Content.Src is equivalent.
	Src     string   `yaml:"src" json:"src"`
	Content *Content `yaml:"content" json:"content"`

	Author       *Person  `yaml:"author" json:"author"`
	Authors      []Person `yaml:"authors" json:"authors"`
	Contributor  *Person  `yaml:"contributor" json:"contributor"`
	Contributors []Person `yaml:"contributors" json:"contributors"`

	Summary Text `yaml:"summary" json:"summary"`
	Rights  Text `yaml:"rights" json:"rights"`

	Category   *Category  `yaml:"category" json:"category"`
	Categories []Category `yaml:"categories" json:"categories"`
	Link       *Link      `yaml:"link" json:"link"`
	Links      []Link     `yaml:"links" json:"links"`

	ExtensionElements string `yaml:"extensionElements" json:"extensionElements"`

	Source *Feed `yaml:"source" json:"source"`
}

// Person is an author or contributor. Name is required.
type Person struct {
	Name              string `yaml:"name" json:"name"`
	Email             string `yaml:"email" json:"email"`
	URI               string `yaml:"uri" json:"uri"`
	ExtensionElements string `yaml:"extensionElements" json:"extensionElements"`
}

type Link struct {
	Href     string `yaml:"href" json:"href"`
	Rel      string `yaml:"rel" json:"rel"`
	Type     string `yaml:"type" json:"type"`
	Hreflang string `yaml:"hreflang" json:"hreflang"`
	Title    string `yaml:"title" json:"title"`
	Length   string `yaml:"length" json:"length"`
	// Content is undefined content and is written verbatim.
	Content string `yaml:"content" json:"content"`
}

type Category struct {
	Term    string `yaml:"term" json:"term"`
	Scheme  string `yaml:"scheme" json:"scheme"`
	Label   string `yaml:"label" json:"label"`
	Content string `yaml:"content" json:"content"`
}

// Generator identifies the software that produced the feed. A nil
// *Generator on a Feed selects the serializer default; NoGenerator omits the
// element.
type Generator struct {
	URI      string `yaml:"uri" json:"uri"`
	Content  string `yaml:"content" json:"content"`
	Version  string `yaml:"version" json:"version"`
	Disabled bool   `yaml:"-" json:"-"`
}

var NoGenerator = &Generator{Disabled: true}

// Lang is the xml:lang of the document root. The zero value selects the
// serializer default; NoLang omits the attribute.
type Lang struct {
	Tag      string
	Disabled bool
}

var NoLang = Lang{Disabled: true}

func LangTag(tag string) Lang {
	return Lang{Tag: tag}
}

// Text is an Atom text construct (title, subtitle, summary, rights).
// Type is empty, "text", "html" or "xhtml".
type Text struct {
	Type    string `yaml:"type" json:"type"`
	Content string `yaml:"content" json:"content"`
}

func PlainText(s string) Text {
	return Text{Content: s}
}

func (t Text) IsZero() bool {
	return t.Type == "" && t.Content == ""
}

// Content is the content of an entry. Type may be "text", "html", "xhtml" or
// a MIME type. A non-empty Src makes the content out-of-line.
type Content struct {
	Type    string `yaml:"type" json:"type"`
	Src     string `yaml:"src" json:"src"`
	Content string `yaml:"content" json:"content"`
}

// Date is either a timestamp or a string that is written unchanged.
type Date struct {
	Time time.Time
	Raw  string
}

func At(t time.Time) Date {
	return Date{Time: t}
}

func RawDate(s string) Date {
	return Date{Raw: s}
}

func (d Date) IsZero() bool {
	return d.Raw == "" && d.Time.IsZero()
}
