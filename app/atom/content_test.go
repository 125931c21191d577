package atom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderEntry(t *testing.T, entry Entry) string {
	t.Helper()
	if entry.ID == "" {
		entry.ID = "urn:e"
		entry.Title = PlainText("E")
		entry.Updated = RawDate("2020-01-01T00:00:00Z")
	}
	f := minimalFeed()
	f.Entries = []Entry{entry}
	out, err := Render(f)
	require.NoError(t, err)
	return out
}

func TestContentRendering(t *testing.T) {
	tests := []struct {
		name        string
		entry       Entry
		contains    string
		notContains string
	}{
		{
			name:     "bare string is escaped text without type",
			entry:    Entry{Content: &Content{Content: "a & b < c"}},
			contains: "        <content>a &amp; b &lt; c</content>\n",
		},
		{
			name:     "text type",
			entry:    Entry{Content: &Content{Type: "text", Content: "x < y"}},
			contains: `        <content type="text">x &lt; y</content>`,
		},
		{
			name:     "html is escaped",
			entry:    Entry{Content: &Content{Type: "html", Content: "<p>Hi &amp; bye</p>"}},
			contains: `        <content type="html">&lt;p&gt;Hi &amp; bye&lt;/p&gt;</content>`,
		},
		{
			name:     "text MIME type is escaped",
			entry:    Entry{Content: &Content{Type: "text/html", Content: "<b>"}},
			contains: `        <content type="text/html">&lt;b&gt;</content>`,
		},
		{
			name:  "xhtml is wrapped in a namespaced div",
			entry: Entry{Content: &Content{Type: "xhtml", Content: "<p>Hi <b>there</b></p>"}},
			contains: "        <content type=\"xhtml\">\n" +
				"            <div xmlns=\"http://www.w3.org/1999/xhtml\"><p>Hi <b>there</b></p></div>\n" +
				"        </content>\n",
		},
		{
			name:     "xml suffix is verbatim",
			entry:    Entry{Content: &Content{Type: "application/atom+xml", Content: "<x>1</x>"}},
			contains: `        <content type="application/atom+xml"><x>1</x></content>`,
		},
		{
			name:     "xml subtype is verbatim",
			entry:    Entry{Content: &Content{Type: "application/xml", Content: "<doc/>"}},
			contains: `        <content type="application/xml"><doc/></content>`,
		},
		{
			name:     "other types pass through unchanged",
			entry:    Entry{Content: &Content{Type: "application/octet-stream", Content: "AAEC"}},
			contains: `        <content type="application/octet-stream">AAEC</content>`,
		},
		{
			name:        "src on entry makes content out-of-line",
			entry:       Entry{Src: "https://example.com/a.png", Content: &Content{Type: "image/png", Content: "ignored"}},
			contains:    `        <content type="image/png" src="https://example.com/a.png"/>`,
			notContains: "ignored",
		},
		{
			name:     "src on content",
			entry:    Entry{Content: &Content{Type: "text/html", Src: "page.html?a=1&b=2"}},
			contains: `        <content type="text/html" src="page.html?a=1&amp;b=2"/>`,
		},
		{
			name:     "src without content object",
			entry:    Entry{Src: "https://example.com/a"},
			contains: `        <content src="https://example.com/a"/>`,
		},
		{
			name:        "no content",
			entry:       Entry{},
			notContains: "<content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderEntry(t, tt.entry)
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
			}
			if tt.notContains != "" {
				assert.NotContains(t, out, tt.notContains)
			}
		})
	}
}

func TestClassifyContent(t *testing.T) {
	tests := map[string]contentKind{
		"":                         contentText,
		"text":                     contentText,
		"html":                     contentText,
		"text/plain":               contentText,
		"Text/HTML; charset=utf-8": contentText,
		"xhtml":                    contentXHTML,
		"application/xhtml+xml":    contentXML,
		"image/svg+xml":            contentXML,
		"application/xml":          contentXML,
		"application/pdf":          contentOpaque,
		"application/octet-stream": contentOpaque,
		"application/xml; q=0.5":   contentXML,
		"application/json":         contentOpaque,
		"application/vnd.foo+json": contentOpaque,
	}

	for contentType, expected := range tests {
		assert.Equal(t, expected, classifyContent(contentType), contentType)
	}
}

func TestTextConstructs(t *testing.T) {
	f := minimalFeed()
	f.Title = Text{Type: "html", Content: "<em>Hi</em>"}
	f.Subtitle = Text{Type: "xhtml", Content: "<em>raw</em>"}
	f.Rights = Text{Type: "text", Content: "(c) A & B"}

	entry := validEntry("urn:e")
	entry.Summary = Text{Type: "image/png", Content: "<not markup>"}
	f.Entries = []Entry{entry}

	out, err := Render(f)
	require.NoError(t, err)

	assert.Contains(t, out, `    <title type="html">&lt;em&gt;Hi&lt;/em&gt;</title>`)
	assert.Contains(t, out, `    <subtitle type="xhtml"><div xmlns="http://www.w3.org/1999/xhtml"><em>raw</em></div></subtitle>`)
	assert.Contains(t, out, `    <rights type="text">(c) A &amp; B</rights>`)
	assert.Contains(t, out, `        <summary>&lt;not markup&gt;</summary>`)
}
